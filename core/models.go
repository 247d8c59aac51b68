package core

// RoleCategory is a coarse role bucket used for retrieval filtering.
// It is derived from free text and never persisted.
type RoleCategory string

const (
	// RoleFullstack covers web/application engineering roles.
	RoleFullstack RoleCategory = "fullstack"
	// RoleDevOps covers infrastructure and reliability roles.
	RoleDevOps RoleCategory = "devops"
	// RoleGeneral applies no retrieval filtering.
	RoleGeneral RoleCategory = "general"
)

// IsValid reports whether r is one of the known role categories.
func (r RoleCategory) IsValid() bool {
	switch r {
	case RoleFullstack, RoleDevOps, RoleGeneral:
		return true
	}
	return false
}

// JobRecord is a single job posting from the source corpus.
// Description is used at build time for embedding and as a skill-extraction
// fallback at search time. Skills is an optional comma-separated list.
type JobRecord struct {
	Id          int64
	Title       string
	Company     string
	Location    string
	Description string
	Skills      string
	URL         string
}

// Fingerprint records which model and source produced a persisted index.
// It is checked at load time to detect stale or mismatched artifacts;
// a mismatch is reported as a warning, never a rejection.
type Fingerprint struct {
	ModelName    string
	EmbeddingDim int
	SourceFile   string
}

// SearchResult is a single ranked match returned by the search engine.
//
// Score is the composite ranking value in [0,1]. Similarity is the raw
// cosine similarity from the index. SkillOverlap is the Jaccard similarity
// between query skills and job skills. Row is the index row the match came
// from and breaks score ties deterministically.
type SearchResult struct {
	Job          JobRecord
	Score        float32
	Similarity   float32
	SkillOverlap float32
	Row          int
}
