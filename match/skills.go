package match

import "strings"

// SkillExtractor maps free text to a set of normalized skill tokens.
// It is safe for concurrent use after construction.
type SkillExtractor struct {
	vocabulary []string
}

// NewSkillExtractor builds an extractor over the default skill vocabulary.
func NewSkillExtractor() *SkillExtractor {
	return &SkillExtractor{vocabulary: skillVocabulary}
}

// Extract returns the subset of the vocabulary present in the text.
func (e *SkillExtractor) Extract(text string) map[string]bool {
	t := strings.ToLower(text)
	skills := make(map[string]bool)
	for _, skill := range e.vocabulary {
		if strings.Contains(t, skill) {
			skills[skill] = true
		}
	}
	return skills
}

// ParseSkillList splits a stored comma-separated skills field into a
// normalized set. Fields are trimmed and lower-cased; empty fragments
// are dropped.
func ParseSkillList(s string) map[string]bool {
	skills := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		skill := strings.ToLower(strings.TrimSpace(part))
		if skill != "" {
			skills[skill] = true
		}
	}
	return skills
}

// Jaccard returns the Jaccard similarity of two skill sets:
// |intersection| / |union|, defined as 0 when both sets are empty.
func Jaccard(a, b map[string]bool) float32 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for skill := range a {
		if b[skill] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return float32(intersection) / float32(union)
}
