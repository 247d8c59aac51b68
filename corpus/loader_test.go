package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentgrid/jobmatch/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolve(t *testing.T) {
	t.Run("file path returned as-is", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "custom.csv", "id,title\n")

		resolved, err := Resolve(path)
		require.NoError(t, err)
		assert.Equal(t, path, resolved)
	})

	t.Run("directory prefers enhanced corpus", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "jobs.csv", "")
		enhanced := writeFile(t, dir, "jobs_enhanced.csv", "")

		resolved, err := Resolve(dir)
		require.NoError(t, err)
		assert.Equal(t, enhanced, resolved)
	})

	t.Run("directory falls back to plain corpus", func(t *testing.T) {
		dir := t.TempDir()
		plain := writeFile(t, dir, "jobs.csv", "")

		resolved, err := Resolve(dir)
		require.NoError(t, err)
		assert.Equal(t, plain, resolved)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := Resolve(t.TempDir())
		assert.ErrorIs(t, err, ErrCorpusNotFound)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "nope.csv"))
		assert.ErrorIs(t, err, ErrCorpusNotFound)
	})
}

func TestLoad(t *testing.T) {
	t.Run("full corpus", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location,description,skills,url\n"+
				"1,Backend Developer,Acme,Berlin,Builds services,\"java,spring\",https://a.example/1\n"+
				"2,DevOps Engineer,Initech,Remote,Runs clusters,,\n")

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, core.JobRecord{
			Id:          1,
			Title:       "Backend Developer",
			Company:     "Acme",
			Location:    "Berlin",
			Description: "Builds services",
			Skills:      "java,spring",
			URL:         "https://a.example/1",
		}, records[0])
		assert.Empty(t, records[1].Skills)
		assert.Empty(t, records[1].URL)
	})

	t.Run("jd_text as description column", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location,jd_text\n"+
				"1,Engineer,Acme,Remote,some work\n")

		records, err := Load(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "some work", records[0].Description)
	})

	t.Run("header is case insensitive", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"ID,Title,Company,Location,Description\n"+
				"1,Engineer,Acme,Remote,some work\n")

		records, err := Load(path)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,location,description\n1,Engineer,Remote,work\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("missing description column", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location\n1,Engineer,Acme,Remote\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("non-numeric id aborts the load", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location,description\n"+
				"1,Engineer,Acme,Remote,work\n"+
				"abc,Engineer,Acme,Remote,work\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrMalformedRow)
	})

	t.Run("empty description aborts the load", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location,description\n"+
				"1,Engineer,Acme,Remote,\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, core.ErrEmptyDescription)
	})

	t.Run("duplicate ids abort the load", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location,description\n"+
				"1,Engineer,Acme,Remote,work\n"+
				"1,Engineer,Initech,Remote,other work\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, core.ErrDuplicateJobID)
	})

	t.Run("header only", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "jobs.csv",
			"id,title,company,location,description\n")

		_, err := Load(path)
		assert.ErrorIs(t, err, core.ErrEmptyCorpus)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
		assert.ErrorIs(t, err, ErrCorpusNotFound)
	})
}
