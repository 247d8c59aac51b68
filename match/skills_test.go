package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillExtractor_Extract(t *testing.T) {
	e := NewSkillExtractor()

	t.Run("finds vocabulary tokens", func(t *testing.T) {
		skills := e.Extract("Experienced Java engineer, Spring Boot microservices on Kubernetes and AWS")
		assert.True(t, skills["java"])
		assert.True(t, skills["spring boot"])
		assert.True(t, skills["kubernetes"])
		assert.True(t, skills["aws"])
		assert.False(t, skills["python"])
	})

	t.Run("empty text yields empty set", func(t *testing.T) {
		assert.Empty(t, e.Extract(""))
	})

	t.Run("substring matching can over-match", func(t *testing.T) {
		// "javascript" contains "java"; both tokens match. Accepted
		// approximation of the matcher, asserted here so a change to
		// word-boundary matching shows up as a deliberate decision.
		skills := e.Extract("javascript specialist")
		assert.True(t, skills["javascript"])
		assert.True(t, skills["java"])
	})
}

func TestParseSkillList(t *testing.T) {
	t.Run("splits and normalizes", func(t *testing.T) {
		skills := ParseSkillList("Java, Spring ,docker")
		assert.Equal(t, map[string]bool{"java": true, "spring": true, "docker": true}, skills)
	})

	t.Run("drops empty fragments", func(t *testing.T) {
		skills := ParseSkillList("java,,  ,spring")
		assert.Len(t, skills, 2)
	})

	t.Run("empty string yields empty set", func(t *testing.T) {
		assert.Empty(t, ParseSkillList(""))
	})
}

func TestJaccard(t *testing.T) {
	set := func(items ...string) map[string]bool {
		s := make(map[string]bool, len(items))
		for _, item := range items {
			s[item] = true
		}
		return s
	}

	t.Run("both empty is zero", func(t *testing.T) {
		assert.Equal(t, float32(0), Jaccard(nil, nil))
		assert.Equal(t, float32(0), Jaccard(set(), set()))
	})

	t.Run("identical non-empty sets are one", func(t *testing.T) {
		a := set("java", "spring")
		assert.Equal(t, float32(1), Jaccard(a, a))
	})

	t.Run("symmetric", func(t *testing.T) {
		a := set("java", "spring", "docker")
		b := set("java", "kubernetes")
		assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := set("java", "spring")
		b := set("java", "docker")
		// intersection 1, union 3
		assert.InDelta(t, 1.0/3.0, Jaccard(a, b), 1e-6)
	})

	t.Run("disjoint sets are zero", func(t *testing.T) {
		assert.Equal(t, float32(0), Jaccard(set("java"), set("docker")))
	})

	t.Run("one empty set is zero", func(t *testing.T) {
		assert.Equal(t, float32(0), Jaccard(set("java"), set()))
	})
}
