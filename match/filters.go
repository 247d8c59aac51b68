package match

import (
	"regexp"

	"github.com/talentgrid/jobmatch/core"
)

// Title filter patterns compiled once at startup. A non-general role acts
// as a hard gate during retrieval: candidates whose titles don't match are
// never scored, even with perfect skill overlap.
var titleFilters = map[core.RoleCategory]*regexp.Regexp{
	core.RoleFullstack: regexp.MustCompile(`(?i)full[- ]?stack|frontend|backend|software engineer|java developer|web developer|developer`),
	core.RoleDevOps:    regexp.MustCompile(`(?i)devops|sre|site reliability|platform|infra|cloud engineer`),
}

// TitleFilter returns the compiled title pattern for a role, or nil for
// RoleGeneral (and any unknown role), which applies no filtering.
func TitleFilter(role core.RoleCategory) *regexp.Regexp {
	return titleFilters[role]
}
