package search

import (
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/index"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	RoleResolved(role core.RoleCategory, detected bool)
	TitleFilterApplied(role core.RoleCategory, passing int)
	AfterRetrieval(hits []index.Hit)
	CandidateAccepted(result *core.SearchResult)
	CandidateRejected(row int, score float32)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                 {}
func (n *noopMonitor) RoleResolved(_ core.RoleCategory, _ bool)       {}
func (n *noopMonitor) TitleFilterApplied(_ core.RoleCategory, _ int)  {}
func (n *noopMonitor) AfterRetrieval(_ []index.Hit)                   {}
func (n *noopMonitor) CandidateAccepted(_ *core.SearchResult)         {}
func (n *noopMonitor) CandidateRejected(_ int, _ float32)             {}
func (n *noopMonitor) Finish(_ []core.SearchResult)                   {}
