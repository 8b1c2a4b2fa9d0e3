// Package ranking runs the full matching pipeline for one project: score
// every candidate in the pool, drop the ones below the inclusion threshold,
// and return the survivors in a stable, fully-ordered ranking.
//
// Per-candidate results come out of the match cache, so a run over a warm
// pool touches the scorer only for candidates whose profile or project
// version changed. One bad profile never fails a run; input problems fail
// the run before any scoring starts.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gradmatch/gradmatch/internal/domain/matchcache"
	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/scoring"
	"github.com/gradmatch/gradmatch/internal/domain/taxonomy"
	"github.com/gradmatch/gradmatch/pkg/logger"
	"github.com/gradmatch/gradmatch/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	// DefaultMinOverallScore is the inclusion threshold: candidates scoring
	// below it are excluded from rankings.
	DefaultMinOverallScore = 30

	// DefaultMaxParallel bounds how many candidates are scored concurrently
	// in one run.
	DefaultMaxParallel = 8
)

// Stage marks how far a ranking run has progressed.
type Stage string

// Ranking run stages, in order. A run ends at StageRanked or StageFailed.
const (
	StagePending     Stage = "pending"
	StageNormalizing Stage = "normalizing"
	StageScoring     Stage = "scoring"
	StageFiltering   Stage = "filtering"
	StageEvidencing  Stage = "evidencing"
	StageCached      Stage = "cached"
	StageRanked      Stage = "ranked"
	StageFailed      Stage = "failed"
)

// Scorer computes one match result plus the contributions that anchor its
// evidence.
type Scorer interface {
	Score(ctx context.Context, project model.ProjectRequirement, candidate model.CandidateProfile) (model.MatchResult, []model.Contribution, error)
	Weights() scoring.Weights
}

// EvidenceCollector resolves scoring contributions into validated evidence.
// The int is how many entries were dropped for failing validation.
type EvidenceCollector interface {
	Collect(ctx context.Context, contribs []model.Contribution) ([]model.Evidence, int, error)
}

// ResultCache stores complete match results keyed by input versions and
// collapses concurrent computations of the same key.
type ResultCache interface {
	GetOrCompute(ctx context.Context, key matchcache.Key, compute func(context.Context) (model.MatchResult, error)) (model.MatchResult, bool, error)
}

// Resolver reports how requirement text resolves against the skill
// vocabulary. Used only to surface requirements no candidate can ever match.
type Resolver interface {
	Normalize(text string) []taxonomy.Match
}

// Match pairs a ranked candidate with their complete match result.
type Match struct {
	Candidate model.CandidateProfile `json:"candidate"`
	Result    model.MatchResult      `json:"result"`
}

// Report is the accounting of one ranking run.
type Report struct {
	RunID     string `json:"run_id"`
	ProjectID string `json:"project_id"`
	Stage     Stage  `json:"stage"`
	PoolSize  int    `json:"pool_size"`

	// Scoring accounting.
	CacheHits int `json:"cache_hits"`
	Computed  int `json:"computed"`
	Failed    int `json:"failed"`

	// Filtering and output accounting.
	Excluded int `json:"excluded"`
	Returned int `json:"returned"`

	// Evidence accounting over the returned-eligible set.
	EvidenceEntries int `json:"evidence_entries"`
	EvidenceDropped int `json:"evidence_dropped"`

	// Required skills that resolve to nothing in the vocabulary. No
	// candidate can cover these, so they cap every skills score in the run.
	UnresolvedRequirements []string `json:"unresolved_requirements,omitempty"`

	Elapsed time.Duration `json:"-"`
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithMinOverallScore replaces the inclusion threshold.
func WithMinOverallScore(score int) Option {
	return func(p *Pipeline) {
		p.minOverall = score
	}
}

// WithMaxParallel bounds concurrent scoring within one run.
func WithMaxParallel(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxParallel = n
		}
	}
}

// WithResolver attaches a vocabulary resolver for requirement diagnostics.
func WithResolver(r Resolver) Option {
	return func(p *Pipeline) {
		p.resolver = r
	}
}

// WithLogger sets the logger used by the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline orchestrates scoring, evidence collection, caching, filtering,
// and ordering for whole candidate pools.
type Pipeline struct {
	scorer    Scorer
	collector EvidenceCollector
	cache     ResultCache
	resolver  Resolver

	minOverall  int
	maxParallel int

	logger logger.Logger
}

// NewPipeline creates a ranking pipeline with configuration options.
func NewPipeline(scorer Scorer, collector EvidenceCollector, cache ResultCache, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		scorer:      scorer,
		collector:   collector,
		cache:       cache,
		minOverall:  DefaultMinOverallScore,
		maxParallel: DefaultMaxParallel,
		logger:      logger.Get().Named("ranking"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(p)
	}

	if p.scorer == nil {
		return nil, fmt.Errorf("%w: scorer", ErrNotConfigured)
	}
	if p.collector == nil {
		return nil, fmt.Errorf("%w: evidence collector", ErrNotConfigured)
	}
	if p.cache == nil {
		return nil, fmt.Errorf("%w: result cache", ErrNotConfigured)
	}
	if p.minOverall < 0 || p.minOverall > 100 {
		return nil, fmt.Errorf("%w: min overall score %d outside [0, 100]", ErrNotConfigured, p.minOverall)
	}

	return p, nil
}

// MinOverallScore returns the inclusion threshold.
func (p *Pipeline) MinOverallScore() int { return p.minOverall }

// FindMatches ranks the candidate pool against the project and returns the
// top matches, at most limit of them, ordered by overall score with stable
// tie-breaking. Candidates whose computation fails are skipped and counted
// in the report; an invalid project or limit fails the whole run before any
// scoring happens.
func (p *Pipeline) FindMatches(ctx context.Context, project model.ProjectRequirement, pool []model.CandidateProfile, limit int) ([]Match, Report, error) {
	start := time.Now()
	report := Report{
		RunID:     uuid.NewString(),
		ProjectID: project.ID,
		Stage:     StagePending,
		PoolSize:  len(pool),
	}

	fail := func(err error) ([]Match, Report, error) {
		report.Stage = StageFailed
		report.Elapsed = time.Since(start)
		metrics.RecordRankingFailure()
		p.logger.Warn(ctx, "ranking run failed",
			logger.String("run_id", report.RunID),
			logger.String("project_id", project.ID),
			logger.Error(err),
		)
		return nil, report, err
	}

	p.advance(ctx, &report, StageNormalizing)
	if err := validateInput(project, limit); err != nil {
		return fail(err)
	}
	report.UnresolvedRequirements = p.unresolvedRequirements(project)

	p.advance(ctx, &report, StageScoring)
	type outcome struct {
		match Match
		hit   bool
		err   error
	}
	outcomes := make([]outcome, len(pool))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxParallel)
	for i := range pool {
		g.Go(func() error {
			res, hit, err := p.Compute(gctx, project, pool[i])
			if err != nil {
				// The run aborts only when the run itself was cancelled;
				// a single candidate failing stays that candidate's problem.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				outcomes[i].err = err
				return nil
			}
			outcomes[i] = outcome{match: Match{Candidate: pool[i], Result: res}, hit: hit}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fail(fmt.Errorf("scoring pool: %w", err))
	}

	scored := make([]Match, 0, len(pool))
	for i := range outcomes {
		if err := outcomes[i].err; err != nil {
			report.Failed++
			p.logger.Warn(ctx, "candidate skipped",
				logger.String("run_id", report.RunID),
				logger.String("candidate_id", pool[i].ID),
				logger.Error(err),
			)
			continue
		}
		scored = append(scored, outcomes[i].match)
	}

	p.advance(ctx, &report, StageFiltering)
	kept := scored[:0]
	for _, m := range scored {
		if m.Result.Overall < p.minOverall {
			report.Excluded++
			continue
		}
		kept = append(kept, m)
	}
	metrics.RecordCandidatesExcluded(report.Excluded)

	p.advance(ctx, &report, StageEvidencing)
	for _, m := range kept {
		report.EvidenceEntries += len(m.Result.Evidence)
		report.EvidenceDropped += m.Result.EvidenceDropped
	}

	p.advance(ctx, &report, StageCached)
	for i := range outcomes {
		if outcomes[i].err != nil {
			continue
		}
		if outcomes[i].hit {
			report.CacheHits++
		} else {
			report.Computed++
		}
	}

	p.advance(ctx, &report, StageRanked)
	sortMatches(kept)
	if len(kept) > limit {
		kept = kept[:limit]
	}
	report.Returned = len(kept)
	report.Elapsed = time.Since(start)

	metrics.RecordRankingRun()
	metrics.RecordRankingLatency(float64(report.Elapsed.Milliseconds()))
	p.logger.Info(ctx, "ranking run complete",
		logger.String("run_id", report.RunID),
		logger.String("project_id", project.ID),
		logger.Int("pool_size", report.PoolSize),
		logger.Int("returned", report.Returned),
		logger.Int("cache_hits", report.CacheHits),
		logger.Int("computed", report.Computed),
		logger.Int("failed", report.Failed),
		logger.Int("excluded", report.Excluded),
		logger.Duration("elapsed", report.Elapsed),
	)

	return kept, report, nil
}

// Compute returns the complete match result for one (project, candidate)
// pair, from the cache when the exact versions were already scored. The bool
// reports a cache hit. Results enter the cache only after evidence is
// attached, so a cached result never needs a second pass.
func (p *Pipeline) Compute(ctx context.Context, project model.ProjectRequirement, candidate model.CandidateProfile) (model.MatchResult, bool, error) {
	key := matchcache.KeyFor(project, candidate)
	start := time.Now()

	res, hit, err := p.cache.GetOrCompute(ctx, key, func(ctx context.Context) (model.MatchResult, error) {
		res, contribs, err := p.scorer.Score(ctx, project, candidate)
		if err != nil {
			return model.MatchResult{}, fmt.Errorf("score candidate %s: %w", candidate.ID, err)
		}

		ev, dropped, err := p.collector.Collect(ctx, contribs)
		if err != nil {
			return model.MatchResult{}, fmt.Errorf("collect evidence for candidate %s: %w", candidate.ID, err)
		}
		res.Evidence = ev
		res.EvidenceDropped = dropped

		if dropped > 0 {
			metrics.RecordEvidenceDropped(dropped)
			p.logger.Debug(ctx, "evidence entries dropped",
				logger.String("candidate_id", candidate.ID),
				logger.String("project_id", project.ID),
				logger.Int("dropped", dropped),
			)
		}
		if n := len(res.UnmatchedMentions); n > 0 {
			metrics.RecordUnmatchedMentions(n)
		}
		return res, nil
	})
	if err != nil {
		metrics.RecordMatchError()
		return model.MatchResult{}, false, err
	}

	if hit {
		metrics.RecordCacheHit()
	} else {
		metrics.RecordCacheMiss()
		metrics.RecordMatchComputed()
		metrics.RecordMatchLatency(float64(time.Since(start).Milliseconds()))
	}
	return res, hit, nil
}

// Explain expands a computed result into its weighted per-dimension
// breakdown using the scorer's weights.
func (p *Pipeline) Explain(res model.MatchResult) model.Explanation {
	return scoring.Explain(res, p.scorer.Weights())
}

// advance moves the run to the next stage.
func (p *Pipeline) advance(ctx context.Context, report *Report, next Stage) {
	report.Stage = next
	p.logger.Debug(ctx, "ranking stage",
		logger.String("run_id", report.RunID),
		logger.String("stage", string(next)),
	)
}

// unresolvedRequirements lists required skills the vocabulary cannot resolve.
func (p *Pipeline) unresolvedRequirements(project model.ProjectRequirement) []string {
	if p.resolver == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool, len(project.RequiredSkills))
	for _, req := range project.RequiredSkills {
		norm := strings.ToLower(strings.TrimSpace(req))
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		if len(p.resolver.Normalize(req)) == 0 {
			out = append(out, req)
		}
	}
	return out
}

// validateInput rejects requests that cannot produce a meaningful ranking.
func validateInput(project model.ProjectRequirement, limit int) error {
	if limit < 1 {
		return ErrInvalidLimit
	}
	required := 0
	for _, req := range project.RequiredSkills {
		if strings.TrimSpace(req) != "" {
			required++
		}
	}
	if required == 0 {
		return ErrNoRequiredSkills
	}
	if project.Duration == "" {
		return ErrMissingDuration
	}
	if project.Type == "" {
		return ErrMissingType
	}
	return nil
}

// sortMatches orders matches for presentation: overall score descending,
// then skills dimension descending, then profile recency, then candidate ID
// ascending so equal candidates always rank in the same order.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Result.Overall != b.Result.Overall {
			return a.Result.Overall > b.Result.Overall
		}
		if a.Result.Dimensions.Skills != b.Result.Dimensions.Skills {
			return a.Result.Dimensions.Skills > b.Result.Dimensions.Skills
		}
		if !a.Candidate.UpdatedAt.Equal(b.Candidate.UpdatedAt) {
			return a.Candidate.UpdatedAt.After(b.Candidate.UpdatedAt)
		}
		return a.Candidate.ID < b.Candidate.ID
	})
}
