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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/talentgrid/jobmatch/core"
)

// Manifest describes the current persisted generation. It is written last
// during a save, so its presence guarantees the rows it points at are
// complete.
type Manifest struct {
	Generation uint64
	Rows       int
	Dim        int
	BuiltAt    time.Time
}

var vectorSer = ord.NewSliceSer[float32](raw.Float32)

// MarshalVector serializes an embedding vector to bytes.
func MarshalVector(v []float32) []byte {
	buf := make([]byte, vectorSer.Size(v))
	vectorSer.Marshal(v, buf)
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	v, _, err := vectorSer.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}
	return v, nil
}

// MarshalJobRecord serializes a JobRecord to bytes.
func MarshalJobRecord(record *core.JobRecord) []byte {
	size := varint.Int64.Size(record.Id) +
		ord.String.Size(record.Title) +
		ord.String.Size(record.Company) +
		ord.String.Size(record.Location) +
		ord.String.Size(record.Description) +
		ord.String.Size(record.Skills) +
		ord.String.Size(record.URL)

	buf := make([]byte, size)
	n := varint.Int64.Marshal(record.Id, buf)
	n += ord.String.Marshal(record.Title, buf[n:])
	n += ord.String.Marshal(record.Company, buf[n:])
	n += ord.String.Marshal(record.Location, buf[n:])
	n += ord.String.Marshal(record.Description, buf[n:])
	n += ord.String.Marshal(record.Skills, buf[n:])
	ord.String.Marshal(record.URL, buf[n:])
	return buf
}

// UnmarshalJobRecord deserializes a JobRecord from bytes.
func UnmarshalJobRecord(data []byte) (*core.JobRecord, error) {
	var (
		record core.JobRecord
		n, m   int
		err    error
	)

	record.Id, n, err = varint.Int64.Unmarshal(data)
	if err == nil {
		record.Title, m, err = ord.String.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		record.Company, m, err = ord.String.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		record.Location, m, err = ord.String.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		record.Description, m, err = ord.String.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		record.Skills, m, err = ord.String.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		record.URL, _, err = ord.String.Unmarshal(data[n:])
	}
	if err != nil {
		return nil, fmt.Errorf("%w: job record: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalFingerprint serializes a Fingerprint to bytes.
func MarshalFingerprint(fp *core.Fingerprint) []byte {
	size := ord.String.Size(fp.ModelName) +
		varint.Int.Size(fp.EmbeddingDim) +
		ord.String.Size(fp.SourceFile)

	buf := make([]byte, size)
	n := ord.String.Marshal(fp.ModelName, buf)
	n += varint.Int.Marshal(fp.EmbeddingDim, buf[n:])
	ord.String.Marshal(fp.SourceFile, buf[n:])
	return buf
}

// UnmarshalFingerprint deserializes a Fingerprint from bytes.
func UnmarshalFingerprint(data []byte) (*core.Fingerprint, error) {
	var (
		fp   core.Fingerprint
		n, m int
		err  error
	)

	fp.ModelName, n, err = ord.String.Unmarshal(data)
	if err == nil {
		fp.EmbeddingDim, m, err = varint.Int.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		fp.SourceFile, _, err = ord.String.Unmarshal(data[n:])
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fingerprint: %w", ErrSerializationFailed, err)
	}
	return &fp, nil
}

// MarshalManifest serializes a Manifest to bytes.
func MarshalManifest(man *Manifest) []byte {
	builtAt := man.BuiltAt.UnixMicro()
	size := varint.Uint64.Size(man.Generation) +
		varint.Int.Size(man.Rows) +
		varint.Int.Size(man.Dim) +
		varint.Int64.Size(builtAt)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(man.Generation, buf)
	n += varint.Int.Marshal(man.Rows, buf[n:])
	n += varint.Int.Marshal(man.Dim, buf[n:])
	varint.Int64.Marshal(builtAt, buf[n:])
	return buf
}

// UnmarshalManifest deserializes a Manifest from bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	var (
		man     Manifest
		builtAt int64
		n, m    int
		err     error
	)

	man.Generation, n, err = varint.Uint64.Unmarshal(data)
	if err == nil {
		man.Rows, m, err = varint.Int.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		man.Dim, m, err = varint.Int.Unmarshal(data[n:])
		n += m
	}
	if err == nil {
		builtAt, _, err = varint.Int64.Unmarshal(data[n:])
	}
	if err != nil {
		return nil, fmt.Errorf("%w: manifest: %w", ErrSerializationFailed, err)
	}
	man.BuiltAt = time.UnixMicro(builtAt).UTC()
	return &man, nil
}
