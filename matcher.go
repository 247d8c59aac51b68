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


// Package jobmatch matches resume text against an embedded job corpus.
//
// Matcher is the owning handle over all components: the artifact store,
// the embedding provider, the index builder, and the search engine.
// Rebuilds produce a complete new generation and swap it in atomically,
// so concurrent searches always see either the old or the new generation,
// never a mix.
package jobmatch

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/talentgrid/jobmatch/ai"
	"github.com/talentgrid/jobmatch/ai/openai"
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/corpus"
	"github.com/talentgrid/jobmatch/indexer"
	"github.com/talentgrid/jobmatch/search"
	"github.com/talentgrid/jobmatch/storage"
	"github.com/talentgrid/jobmatch/storage/badger"
)

// Matcher is the process-wide handle over the serving state.
type Matcher struct {
	backend  *badger.Backend
	store    storage.GenerationStore
	provider ai.AIProvider
	builder  *indexer.Builder
	engine   *search.Engine
	config   *ai.Config

	current atomic.Pointer[storage.Generation]
	buildMu sync.Mutex

	logger *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*matcherOptions)

type matcherOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	store         storage.GenerationStore
	engineOptions []search.Option
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(cfg *ai.Config) MatcherOption {
	return func(o *matcherOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects an embedding provider, bypassing the default
// OpenAI-compatible one. Used by tests and embedders with custom wiring.
func WithProvider(provider ai.AIProvider) MatcherOption {
	return func(o *matcherOptions) {
		o.provider = provider
	}
}

// WithStore injects a generation store, bypassing the default
// badger-backed one.
func WithStore(store storage.GenerationStore) MatcherOption {
	return func(o *matcherOptions) {
		o.store = store
	}
}

// WithEngineOptions passes options through to the search engine.
func WithEngineOptions(opts ...search.Option) MatcherOption {
	return func(o *matcherOptions) {
		o.engineOptions = append(o.engineOptions, opts...)
	}
}

// NewMatcher creates a matcher with its artifact store at dbPath.
func NewMatcher(dbPath string, opts ...MatcherOption) (*Matcher, error) {
	options := &matcherOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	m := &Matcher{
		config: options.aiConfig,
		logger: slog.Default(),
	}

	m.store = options.store
	if m.store == nil {
		backend, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return nil, err
		}
		store, err := badger.NewStore(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		m.backend = backend
		m.store = store
	}

	m.provider = options.provider
	if m.provider == nil {
		provider, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			m.closePartial()
			return nil, err
		}
		m.provider = provider
	}

	builder, err := indexer.NewBuilder(m.provider, options.aiConfig.EmbeddingModel)
	if err != nil {
		m.closePartial()
		return nil, err
	}
	m.builder = builder

	engine, err := search.NewEngine(m, m.provider, options.engineOptions...)
	if err != nil {
		m.closePartial()
		return nil, err
	}
	m.engine = engine

	return m, nil
}

// Current returns the serving generation.
// Implements search.GenerationSource.
func (m *Matcher) Current() (*storage.Generation, error) {
	gen := m.current.Load()
	if gen == nil {
		return nil, search.ErrNoIndex
	}
	return gen, nil
}

// JobCount returns the number of jobs in the serving generation,
// or 0 when no index is loaded.
func (m *Matcher) JobCount() int {
	gen := m.current.Load()
	if gen == nil {
		return 0
	}
	return gen.JobCount()
}

// BuildIndex loads the corpus at source, builds a new generation,
// persists it, and swaps it into the serving position. Returns the number
// of indexed jobs.
//
// Builds are serialized; searches keep reading the prior generation until
// the swap.
func (m *Matcher) BuildIndex(ctx context.Context, source string) (int, error) {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()

	resolved, err := corpus.Resolve(source)
	if err != nil {
		return 0, err
	}

	jobs, err := corpus.Load(resolved)
	if err != nil {
		return 0, err
	}
	m.logger.Info("corpus loaded", "file", resolved, "jobs", len(jobs))

	gen, err := m.builder.Build(ctx, jobs, resolved)
	if err != nil {
		return 0, err
	}

	if err := m.store.SaveGeneration(ctx, gen); err != nil {
		return 0, err
	}

	m.current.Store(gen)
	return gen.JobCount(), nil
}

// LoadIndex restores the last persisted generation into the serving
// position. Returns search.ErrNoIndex if nothing has been persisted.
//
// A fingerprint that disagrees with the configured model is logged as a
// warning and the generation is served anyway; the caller accepts the
// risk of an embedding-space mismatch.
func (m *Matcher) LoadIndex(ctx context.Context) error {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()

	gen, err := m.store.LoadGeneration(ctx)
	if err != nil {
		if err == storage.ErrNotFound {
			return search.ErrNoIndex
		}
		return err
	}

	fp := gen.Fingerprint
	if fp.ModelName != m.config.EmbeddingModel {
		m.logger.Warn("model/index mismatch",
			"configured", m.config.EmbeddingModel, "index", fp.ModelName)
	}
	if fp.EmbeddingDim != gen.Index.Dim() {
		m.logger.Warn("embedding dimension mismatch",
			"index", gen.Index.Dim(), "fingerprint", fp.EmbeddingDim)
	}

	m.current.Store(gen)
	return nil
}

// Search ranks jobs against the query text. An empty role means
// auto-detect. topK <= 0 falls back to the engine default.
func (m *Matcher) Search(ctx context.Context, query string, topK int, role core.RoleCategory) (*search.Response, error) {
	return m.engine.Search(ctx, query, topK, role)
}

// Close releases all components.
func (m *Matcher) Close() error {
	if m.builder != nil {
		m.builder.Release()
	}
	return m.closePartial()
}

// closePartial closes the provider, store, and backend in order,
// tolerating components that were never created.
func (m *Matcher) closePartial() error {
	var firstErr error

	if m.provider != nil {
		if err := m.provider.Close(); err != nil {
			m.logger.Error("error closing AI provider", "err", err)
			firstErr = err
		}
	}
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			m.logger.Error("error closing store", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if m.backend != nil {
		if err := m.backend.Close(); err != nil {
			m.logger.Error("error closing backend storage", "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
