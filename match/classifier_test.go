package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talentgrid/jobmatch/core"
)

func TestClassifier_Detect(t *testing.T) {
	c := NewClassifier()

	t.Run("empty text is general", func(t *testing.T) {
		assert.Equal(t, core.RoleGeneral, c.Detect(""))
	})

	t.Run("no signal is general", func(t *testing.T) {
		assert.Equal(t, core.RoleGeneral, c.Detect("marketing manager with ten years of experience"))
	})

	t.Run("strong fullstack signal", func(t *testing.T) {
		text := "full stack developer, react and typescript frontend, spring boot backend, javascript"
		assert.Equal(t, core.RoleFullstack, c.Detect(text))
	})

	t.Run("strong devops signal", func(t *testing.T) {
		text := "devops engineer, terraform, ansible, kubernetes clusters, jenkins ci/cd pipelines"
		assert.Equal(t, core.RoleDevOps, c.Detect(text))
	})

	t.Run("mixed signal defaults to general", func(t *testing.T) {
		// Two fullstack hits vs one devops hit: 2 > 1*2 is false, so the
		// 2x rule keeps this ambiguous.
		text := "react developer deploying with docker"
		assert.Equal(t, core.RoleGeneral, c.Detect(text))
	})

	t.Run("case insensitive", func(t *testing.T) {
		text := "FULL STACK developer with REACT, TypeScript, JavaScript and Spring Boot"
		assert.Equal(t, core.RoleFullstack, c.Detect(text))
	})

	t.Run("always returns a valid category", func(t *testing.T) {
		texts := []string{
			"", "java", "devops", "java devops", "!@#$%",
			"senior platform engineer on aws and gcp with terraform",
			"web developer who dabbles in kubernetes",
		}
		for _, text := range texts {
			assert.True(t, c.Detect(text).IsValid(), "text %q", text)
		}
	})

	t.Run("repeated keyword counts once", func(t *testing.T) {
		// "java java java" is one fullstack hit, not three; with one
		// devops hit alongside it the result stays general.
		assert.Equal(t, core.RoleGeneral, c.Detect("java java java docker"))
	})
}
