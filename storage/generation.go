package storage

import (
	"fmt"
	"time"

	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/index"
)

// Generation is one complete build of the serving state: a populated
// vector index, job metadata aligned row-for-row with it, and the
// fingerprint of the model that produced the vectors.
//
// Generations are immutable once built. Rebuilds produce a new Generation
// that replaces the old one atomically; readers see either the old or the
// new, never a mix.
type Generation struct {
	Index       *index.Flat
	Jobs        []core.JobRecord
	Fingerprint core.Fingerprint
	BuiltAt     time.Time
}

// Validate checks the row alignment invariant: every index row must
// dereference into job metadata of matching length.
func (g *Generation) Validate() error {
	if g.Index == nil {
		return fmt.Errorf("%w: index is nil", ErrGenerationMismatch)
	}
	if g.Index.Len() != len(g.Jobs) {
		return fmt.Errorf("%w: %d vectors, %d jobs", ErrGenerationMismatch, g.Index.Len(), len(g.Jobs))
	}
	return nil
}

// JobCount returns the number of indexed jobs.
func (g *Generation) JobCount() int {
	return len(g.Jobs)
}
