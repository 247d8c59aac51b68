package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJobRecord(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		record := &JobRecord{
			Id:          1,
			Title:       "Backend Developer",
			Company:     "Acme",
			Location:    "Remote",
			Description: "Builds backend services in Go",
		}
		assert.NoError(t, ValidateJobRecord(record))
	})

	t.Run("nil record", func(t *testing.T) {
		err := ValidateJobRecord(nil)
		assert.ErrorIs(t, err, ErrInvalidJobRecord)
	})

	t.Run("empty description", func(t *testing.T) {
		record := &JobRecord{Id: 2, Title: "Backend Developer"}
		err := ValidateJobRecord(record)
		assert.ErrorIs(t, err, ErrInvalidJobRecord)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	})

	t.Run("empty title", func(t *testing.T) {
		record := &JobRecord{Id: 3, Description: "some work"}
		err := ValidateJobRecord(record)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("skills and url are optional", func(t *testing.T) {
		record := &JobRecord{Id: 4, Title: "Analyst", Description: "analysis"}
		assert.NoError(t, ValidateJobRecord(record))
	})
}

func TestValidateCorpus(t *testing.T) {
	valid := func(id int64) JobRecord {
		return JobRecord{Id: id, Title: "Engineer", Description: "builds things"}
	}

	t.Run("valid corpus", func(t *testing.T) {
		assert.NoError(t, ValidateCorpus([]JobRecord{valid(1), valid(2), valid(3)}))
	})

	t.Run("empty corpus", func(t *testing.T) {
		assert.ErrorIs(t, ValidateCorpus(nil), ErrEmptyCorpus)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		err := ValidateCorpus([]JobRecord{valid(1), valid(1)})
		assert.ErrorIs(t, err, ErrDuplicateJobID)
	})

	t.Run("one bad record aborts everything", func(t *testing.T) {
		corpus := []JobRecord{valid(1), {Id: 2, Title: "Engineer"}}
		assert.ErrorIs(t, ValidateCorpus(corpus), ErrEmptyDescription)
	})
}

func TestParseRole(t *testing.T) {
	t.Run("known roles", func(t *testing.T) {
		for _, s := range []string{"fullstack", "devops", "general"} {
			role, err := ParseRole(s)
			require.NoError(t, err)
			assert.Equal(t, RoleCategory(s), role)
			assert.True(t, role.IsValid())
		}
	})

	t.Run("empty means auto-detect", func(t *testing.T) {
		role, err := ParseRole("")
		require.NoError(t, err)
		assert.Equal(t, RoleCategory(""), role)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := ParseRole("wizard")
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}
