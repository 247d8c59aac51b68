// Copyright 2025 TalentGrid Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateJobRecord validates a JobRecord according to domain rules.
//
// Validation rules:
//   - Description must not be empty (it is the embedding input)
//   - Title must not be empty (it drives role filtering)
//
// NOT validated:
//   - Skills (optional, derived from Description when absent)
//   - URL (optional, only used by the liveness probe)
func ValidateJobRecord(record *JobRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidJobRecord)
	}

	if record.Description == "" {
		return fmt.Errorf("%w: job %d: %w", ErrInvalidJobRecord, record.Id, ErrEmptyDescription)
	}

	if record.Title == "" {
		return fmt.Errorf("%w: job %d: %w", ErrInvalidJobRecord, record.Id, ErrEmptyTitle)
	}

	return nil
}

// ValidateCorpus validates a full set of job records before indexing.
// Ids must be unique across the corpus; a partial index is never built,
// so the first failing record aborts validation.
func ValidateCorpus(records []JobRecord) error {
	if len(records) == 0 {
		return ErrEmptyCorpus
	}

	seen := make(map[int64]bool, len(records))
	for i := range records {
		if err := ValidateJobRecord(&records[i]); err != nil {
			return err
		}
		if seen[records[i].Id] {
			return fmt.Errorf("%w: %d", ErrDuplicateJobID, records[i].Id)
		}
		seen[records[i].Id] = true
	}

	return nil
}

// ParseRole parses a role string supplied by a caller.
// The empty string is valid and means "auto-detect from the query".
func ParseRole(s string) (RoleCategory, error) {
	if s == "" {
		return "", nil
	}
	role := RoleCategory(s)
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return role, nil
}
