package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/talentgrid/jobmatch/core"
)

var (
	// ErrCorpusNotFound indicates no corpus file exists at the given location.
	ErrCorpusNotFound = errors.New("corpus file not found")

	// ErrMissingColumn indicates the corpus header lacks a required column.
	ErrMissingColumn = errors.New("corpus missing required column")

	// ErrMalformedRow indicates a corpus row that cannot be parsed.
	ErrMalformedRow = errors.New("malformed corpus row")
)

// Candidate file names when a directory is given, in preference order.
// The enhanced file carries curated skill columns.
var corpusFileNames = []string{"jobs_enhanced.csv", "jobs.csv"}

// Resolve turns a corpus location into a concrete file path.
// A file path is returned as-is if it exists. For a directory,
// jobs_enhanced.csv is preferred over jobs.csv.
func Resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return "", err
	}

	if !info.IsDir() {
		return path, nil
	}

	for _, name := range corpusFileNames {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no %s in %s", ErrCorpusNotFound, strings.Join(corpusFileNames, " or "), path)
}

// Load reads job records from a CSV file.
//
// Required columns: id, title, company, location, and a description column
// named either "description" or "jd_text". Optional columns: skills, url.
// Any unparsable row aborts the load; partial corpora are never returned.
func Load(path string) ([]core.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrMalformedRow, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"id", "title", "company", "location"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	descCol, ok := cols["description"]
	if !ok {
		descCol, ok = cols["jd_text"]
		if !ok {
			return nil, fmt.Errorf("%w: description", ErrMissingColumn)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []core.JobRecord
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}

		id, err := strconv.ParseInt(strings.TrimSpace(field(row, "id")), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad id: %w", ErrMalformedRow, line, err)
		}

		var description string
		if descCol < len(row) {
			description = row[descCol]
		}

		records = append(records, core.JobRecord{
			Id:          id,
			Title:       field(row, "title"),
			Company:     field(row, "company"),
			Location:    field(row, "location"),
			Description: description,
			Skills:      field(row, "skills"),
			URL:         field(row, "url"),
		})
	}

	if err := core.ValidateCorpus(records); err != nil {
		return nil, err
	}

	return records, nil
}
