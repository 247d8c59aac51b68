package match

import (
	"strings"

	"github.com/talentgrid/jobmatch/core"
)

// Classifier maps free text to a coarse role category.
// It is safe for concurrent use after construction.
type Classifier struct {
	fullstack []string
	devops    []string
}

// NewClassifier builds a classifier over the default keyword tables.
func NewClassifier() *Classifier {
	return &Classifier{
		fullstack: fullstackKeywords,
		devops:    devopsKeywords,
	}
}

// Detect returns the role category for the given text.
//
// Each keyword present in the lower-cased text counts as one hit. A role
// wins only when its hits exceed twice the other role's hits; anything
// less one-sided falls back to RoleGeneral, which applies no retrieval
// filtering. The asymmetric 2x threshold trades precision for recall.
func (c *Classifier) Detect(text string) core.RoleCategory {
	t := strings.ToLower(text)

	fsHits := countHits(t, c.fullstack)
	dvHits := countHits(t, c.devops)

	switch {
	case fsHits == 0 && dvHits == 0:
		return core.RoleGeneral
	case fsHits > dvHits*2:
		return core.RoleFullstack
	case dvHits > fsHits*2:
		return core.RoleDevOps
	default:
		return core.RoleGeneral
	}
}

// countHits counts how many keywords appear in the lower-cased text.
// Membership, not occurrences: a keyword repeated ten times still counts once.
func countHits(text string, keywords []string) int {
	hits := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			hits++
		}
	}
	return hits
}
