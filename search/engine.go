package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/talentgrid/jobmatch/ai"
	"github.com/talentgrid/jobmatch/core"
	"github.com/talentgrid/jobmatch/index"
	"github.com/talentgrid/jobmatch/match"
	"github.com/talentgrid/jobmatch/probe"
	"github.com/talentgrid/jobmatch/storage"
)

const (
	// DefaultTopK is used when a caller passes topK <= 0.
	DefaultTopK = 5

	// oversampleFactor widens the raw retrieval pool. Role filtering and
	// thresholding downstream discard most raw hits; retrieving too few
	// candidates would starve the final result set.
	oversampleFactor = 20

	// Composite score blend and boost. The 1.1 boost is a UX adjustment,
	// not a probability; scores are clamped to 1.0 after boosting.
	similarityWeight = 0.70
	overlapWeight    = 0.30
	scoreBoost       = 1.1

	// Role-adaptive minimum composite scores.
	thresholdFullstack = 0.25
	thresholdDevOps    = 0.22
	thresholdGeneral   = 0.20

	// floorScore is the absolute minimum. Thresholds are relaxed down to
	// it while the result set is still short of topK, never below.
	floorScore = 0.15
)

// GenerationSource yields the current immutable generation to search
// against. It returns ErrNoIndex when nothing has been built or loaded.
type GenerationSource interface {
	Current() (*storage.Generation, error)
}

// Response is the outcome of one search: the role that was actually used
// for filtering and the ranked results.
type Response struct {
	Role    core.RoleCategory
	Results []core.SearchResult
}

// Engine ranks jobs from the current generation against resume text.
type Engine struct {
	source     GenerationSource
	embedder   ai.Embedder
	classifier *match.Classifier
	extractor  *match.SkillExtractor
	checker    *probe.Checker
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithLivenessChecker enables post-ranking URL liveness filtering.
// Disabled by default: probing every result adds a network round trip
// per job and the default path favors latency.
func WithLivenessChecker(checker *probe.Checker) Option {
	return func(e *Engine) error {
		e.checker = checker
		return nil
	}
}

// NewEngine creates a new search engine.
func NewEngine(source GenerationSource, provider ai.AIProvider, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	e := &Engine{
		source:     source,
		embedder:   provider.Embedder(),
		classifier: match.NewClassifier(),
		extractor:  match.NewSkillExtractor(),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Search ranks jobs against the query text and returns up to topK results.
// An empty role means auto-detect from the query.
func (e *Engine) Search(ctx context.Context, query string, topK int, role core.RoleCategory) (*Response, error) {
	return e.SearchWithMonitor(ctx, query, topK, role, nil)
}

// SearchWithMonitor ranks jobs with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (e *Engine) SearchWithMonitor(ctx context.Context, query string, topK int, role core.RoleCategory, monitor SearchMonitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	monitor.Start(query)

	gen, err := e.source.Current()
	if err != nil {
		return nil, err
	}

	// 1. Role resolution
	detected := false
	if role == "" {
		role = e.classifier.Detect(query)
		detected = true
	}
	monitor.RoleResolved(role, detected)

	// 2. Query embedding, normalized exactly like build-time embeddings.
	// Any deviation here breaks cosine-similarity validity.
	embedding, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}
	queryVector := index.Normalize(embedding)

	// 3. Role pre-filter: rows whose titles match the role pattern.
	// A non-empty set is a hard gate for fullstack/devops candidates.
	allowed := e.titleFilter(gen, role)
	if allowed != nil {
		monitor.TitleFilterApplied(role, len(allowed))
		e.logger.Debug("title filter applied", "role", role, "passing", len(allowed))
	}

	// 4. Oversampled candidate retrieval
	searchK := topK * oversampleFactor
	if searchK > gen.Index.Len() {
		searchK = gen.Index.Len()
	}
	hits, err := gen.Index.Search(queryVector, searchK)
	if err != nil {
		e.logger.Error("error querying index", "err", err)
		return nil, err
	}
	monitor.AfterRetrieval(hits)

	// 5. Per-candidate scoring in descending raw-similarity order
	querySkills := e.extractor.Extract(query)
	threshold := roleThreshold(role)

	results := make([]core.SearchResult, 0, topK)
	seen := make(map[int64]bool, len(hits))

	for _, hit := range hits {
		// Defensive: a malformed index could hand back rows the metadata
		// doesn't cover.
		if hit.Row < 0 || hit.Row >= len(gen.Jobs) {
			continue
		}
		job := gen.Jobs[hit.Row]

		// Deduplicate by job id, not row: two rows sharing an id in a
		// malformed corpus must not both surface.
		if seen[job.Id] {
			continue
		}
		seen[job.Id] = true

		if allowed != nil && !allowed[hit.Row] {
			continue
		}

		jobSkills := e.jobSkills(&job)
		overlap := match.Jaccard(querySkills, jobSkills)
		score := compositeScore(hit.Score, overlap)

		if !acceptScore(score, threshold, len(results), topK) {
			monitor.CandidateRejected(hit.Row, score)
			continue
		}

		result := core.SearchResult{
			Job:          job,
			Score:        score,
			Similarity:   hit.Score,
			SkillOverlap: overlap,
			Row:          hit.Row,
		}
		monitor.CandidateAccepted(&result)
		results = append(results, result)

		if len(results) >= topK {
			break
		}
	}

	// 6. Final ordering: composite score descending, ties by ascending row.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Row < results[j].Row
	})

	if e.checker != nil {
		results = e.filterLive(ctx, results)
	}
	if len(results) > topK {
		results = results[:topK]
	}

	monitor.Finish(results)
	e.logger.Info("search complete", "role", role, "results", len(results))

	return &Response{Role: role, Results: results}, nil
}

// titleFilter returns the set of rows passing the role's title pattern,
// or nil when the role applies no filtering. An empty (non-nil) pattern
// result degrades to nil: with nothing passing the filter, the gate is
// not applied, matching the original ranking behavior.
func (e *Engine) titleFilter(gen *storage.Generation, role core.RoleCategory) map[int]bool {
	pattern := match.TitleFilter(role)
	if pattern == nil {
		return nil
	}

	allowed := make(map[int]bool)
	for row := range gen.Jobs {
		if pattern.MatchString(gen.Jobs[row].Title) {
			allowed[row] = true
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	return allowed
}

// jobSkills resolves a job's skill set: the stored skills field when
// present and non-empty, otherwise extracted from the description.
func (e *Engine) jobSkills(job *core.JobRecord) map[string]bool {
	if strings.TrimSpace(job.Skills) != "" {
		return match.ParseSkillList(job.Skills)
	}
	return e.extractor.Extract(job.Description)
}

// filterLive drops results whose URLs fail the liveness probe.
// Results without a URL are kept.
func (e *Engine) filterLive(ctx context.Context, results []core.SearchResult) []core.SearchResult {
	live := results[:0]
	for _, r := range results {
		if r.Job.URL == "" || e.checker.IsLive(ctx, r.Job.URL) {
			live = append(live, r)
		}
	}
	return live
}

// compositeScore blends raw similarity and skill overlap, boosts the
// blend by 1.1 and clamps to 1.0.
func compositeScore(similarity, overlap float32) float32 {
	score := (similarityWeight*similarity + overlapWeight*overlap) * scoreBoost
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// roleThreshold returns the minimum composite score for a role.
func roleThreshold(role core.RoleCategory) float32 {
	switch role {
	case core.RoleFullstack:
		return thresholdFullstack
	case core.RoleDevOps:
		return thresholdDevOps
	default:
		return thresholdGeneral
	}
}

// acceptScore decides whether a candidate's composite score clears the
// role threshold. While the result set is still short of topK the
// threshold relaxes down to floorScore, never below: scoring exactly the
// floor is accepted when there is room, anything under it never is.
func acceptScore(score, threshold float32, accepted, topK int) bool {
	if score >= threshold {
		return true
	}
	return accepted < topK && score >= floorScore
}
