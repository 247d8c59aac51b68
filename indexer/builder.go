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


// Package indexer builds index generations from a job corpus.
//
// A build is all-or-nothing: the corpus is validated up front, every
// description is embedded, and only a fully populated generation is
// returned. Any validation or embedding failure aborts the whole build.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/talentgrid/jobmatch/ai"
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/index"
	"github.com/talentgrid/jobmatch/storage"
)

const defaultBatchSize = 32

// Builder turns a validated job corpus into a complete generation:
// normalized embeddings in a flat inner-product index, row-aligned
// metadata, and a model fingerprint.
type Builder struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	modelName string
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets how many descriptions are embedded per provider call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a new index builder. The model name is recorded in
// the fingerprint of every generation the builder produces.
func NewBuilder(provider ai.AIProvider, modelName string, opts ...Option) (*Builder, error) {
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if modelName == "" {
		return nil, ErrModelNameRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder:  provider.Embedder(),
		pool:      pool,
		batchSize: defaultBatchSize,
		modelName: modelName,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Build embeds every job description and assembles a new generation.
// sourceFile is the resolved corpus path; only its base name is recorded.
func (b *Builder) Build(ctx context.Context, jobs []core.JobRecord, sourceFile string) (*storage.Generation, error) {
	if err := core.ValidateCorpus(jobs); err != nil {
		return nil, err
	}

	b.logger.Info("building index", "jobs", len(jobs), "model", b.modelName)

	vectors, err := b.embedAll(ctx, jobs)
	if err != nil {
		return nil, err
	}

	dim := len(vectors[0])
	flat, err := index.NewFlat(dim)
	if err != nil {
		return nil, err
	}
	for i, v := range vectors {
		if err := flat.Add(index.Normalize(v)); err != nil {
			return nil, fmt.Errorf("job %d: %w", jobs[i].Id, err)
		}
	}

	gen := &storage.Generation{
		Index: flat,
		Jobs:  jobs,
		Fingerprint: core.Fingerprint{
			ModelName:    b.modelName,
			EmbeddingDim: dim,
			SourceFile:   filepath.Base(sourceFile),
		},
		BuiltAt: time.Now().UTC(),
	}
	if err := gen.Validate(); err != nil {
		return nil, err
	}

	b.logger.Info("index built", "jobs", gen.JobCount(), "dim", dim)
	return gen, nil
}

// embedAll embeds all descriptions in batches across the worker pool.
// The first batch error aborts the build; vectors keep corpus order.
func (b *Builder) embedAll(ctx context.Context, jobs []core.JobRecord) ([][]float32, error) {
	vectors := make([][]float32, len(jobs))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for start := 0; start < len(jobs); start += b.batchSize {
		end := start + b.batchSize
		if end > len(jobs) {
			end = len(jobs)
		}
		start, end := start, end

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, end-start)
			for i := start; i < end; i++ {
				texts[i-start] = jobs[i].Description
			}

			embeddings, err := b.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				setErr(err)
				return
			}
			if len(embeddings) != len(texts) {
				setErr(fmt.Errorf("%w: expected %d, received %d", ErrEmbeddingMismatch, len(texts), len(embeddings)))
				return
			}
			copy(vectors[start:end], embeddings)
		})
		if err != nil {
			wg.Done()
			setErr(err)
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: job %d", ErrEmptyEmbedding, jobs[i].Id)
		}
		if len(v) != len(vectors[0]) {
			return nil, fmt.Errorf("%w: job %d: dim %d vs %d", ErrEmbeddingMismatch, jobs[i].Id, len(v), len(vectors[0]))
		}
	}

	return vectors, nil
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
