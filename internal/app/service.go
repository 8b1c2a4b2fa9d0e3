// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/gradmatch/gradmatch/internal/adapters/mq/queue"
	"github.com/gradmatch/gradmatch/internal/adapters/mq/worker"
	"github.com/gradmatch/gradmatch/internal/adapters/repository"
	"github.com/gradmatch/gradmatch/internal/domain/evidence"
	"github.com/gradmatch/gradmatch/internal/domain/matchcache"
	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/ranking"
	"github.com/gradmatch/gradmatch/internal/domain/scoring"
	"github.com/gradmatch/gradmatch/internal/domain/scoring/gemini"
	"github.com/gradmatch/gradmatch/internal/domain/taxonomy"
	"github.com/gradmatch/gradmatch/pkg/logger"
	"github.com/gradmatch/gradmatch/pkg/metrics"
)

// Strategy names the service can assemble.
const (
	strategyRules  = "rules"
	strategyGemini = "gemini"
)

// Default sizing applied when options leave a knob unset.
const (
	defaultQueueSize     = 8192
	defaultCacheCapacity = 4096
	defaultMaxParallel   = 8
)

// Service assembles the matching engine: stores, taxonomy, scoring engine,
// evidence collector, match cache, ranking pipeline, and the cache warming
// subsystem. It implements the dependencies of the HTTP API and the warm
// workers.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *repository.MemoryStore
	taxonomy  *taxonomy.Taxonomy
	engine    *scoring.Engine
	cache     *matchcache.Cache
	collector *evidence.Collector
	pipeline  *ranking.Pipeline
	warmQueue *queue.InMemoryQueue
	warmPool  *worker.Pool

	// Configuration
	workerCount      int
	queueSize        int
	cacheCapacity    int
	maxParallel      int
	minOverall       int
	weights          scoring.Weights
	zeroCoverageGate float64
	preferredBonus   float64
	horizonDays      int
	strategyName     string
	geminiAPIKey     string
	geminiModel      string
	taxonomyPath     string
	now              func() time.Time

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of cache warming workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the warm job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheCapacity sets the match cache capacity.
func WithCacheCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.cacheCapacity = capacity
		}
	}
}

// WithMaxParallel bounds concurrent scoring inside a ranking run.
func WithMaxParallel(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxParallel = n
		}
	}
}

// WithMinOverallScore sets the ranking eligibility threshold.
func WithMinOverallScore(score int) Option {
	return func(s *Service) {
		s.minOverall = score
	}
}

// WithWeights sets the scoring dimension weights.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithZeroCoverageGate sets the skills share that gates the overall score
// when no required skill is covered.
func WithZeroCoverageGate(gate float64) Option {
	return func(s *Service) {
		s.zeroCoverageGate = gate
	}
}

// WithPreferredBonus sets the skills bonus for covered preferred skills.
func WithPreferredBonus(points float64) Option {
	return func(s *Service) {
		s.preferredBonus = points
	}
}

// WithAvailabilityHorizon sets how many days out a start date still counts
// as available.
func WithAvailabilityHorizon(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.horizonDays = days
		}
	}
}

// WithStrategyName selects the scoring strategy to assemble.
func WithStrategyName(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.strategyName = name
		}
	}
}

// WithGeminiCredentials sets the API key and model for the gemini strategy.
func WithGeminiCredentials(apiKey, model string) Option {
	return func(s *Service) {
		s.geminiAPIKey = apiKey
		s.geminiModel = model
	}
}

// WithTaxonomyPath points at a YAML file of additional skills layered on
// top of the builtin vocabulary.
func WithTaxonomyPath(path string) Option {
	return func(s *Service) {
		s.taxonomyPath = path
	}
}

// WithClock overrides the time source used by scoring and the stores.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2, // Default to 2x CPU cores
		queueSize:        defaultQueueSize,
		cacheCapacity:    defaultCacheCapacity,
		maxParallel:      defaultMaxParallel,
		minOverall:       ranking.DefaultMinOverallScore,
		weights:          scoring.DefaultWeights(),
		zeroCoverageGate: -1, // Engine default applies when unset
		preferredBonus:   -1, // Strategy default applies when unset
		strategyName:     strategyRules,
		stopCh:           make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start assembles and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting matching service...")

	if err := s.buildTaxonomy(ctx); err != nil {
		return err
	}

	strategy, err := s.buildStrategy(ctx)
	if err != nil {
		return err
	}

	engineOpts := []scoring.Option{
		scoring.WithStrategy(strategy),
		scoring.WithWeights(s.weights),
	}
	if s.zeroCoverageGate >= 0 {
		engineOpts = append(engineOpts, scoring.WithZeroCoverageGate(s.zeroCoverageGate))
	}
	if s.now != nil {
		engineOpts = append(engineOpts, scoring.WithClock(s.now))
	}
	engine, err := scoring.NewEngine(engineOpts...)
	if err != nil {
		return fmt.Errorf("build scoring engine: %w", err)
	}
	s.engine = engine

	storeOpts := []repository.Option{}
	if s.now != nil {
		storeOpts = append(storeOpts, repository.WithNow(s.now))
	}
	s.store = repository.NewMemoryStore(storeOpts...)
	s.cache = matchcache.New(matchcache.WithCapacity(s.cacheCapacity))
	s.collector = evidence.NewCollector(s.store)

	pipeline, err := ranking.NewPipeline(engine, s.collector, s.cache,
		ranking.WithMinOverallScore(s.minOverall),
		ranking.WithMaxParallel(s.maxParallel),
		ranking.WithResolver(s.taxonomy),
		ranking.WithLogger(s.logger),
	)
	if err != nil {
		return fmt.Errorf("build ranking pipeline: %w", err)
	}
	s.pipeline = pipeline

	s.warmQueue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.warmPool = worker.NewPool(s.workerCount, s.warmQueue, s)
	s.warmPool.Start(ctx)

	// A restart needs a fresh stop signal; the previous one closed on Stop.
	s.stopCh = make(chan struct{})
	go s.syncMetrics(ctx, s.stopCh)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queue_size", s.queueSize),
		logger.Int("cache_capacity", s.cacheCapacity),
		logger.Int("min_overall_score", s.minOverall),
		logger.String("strategy", strategy.Name()),
	)

	return nil
}

// buildTaxonomy resolves the skill vocabulary: the builtin set, extended
// from the configured file when one is set.
func (s *Service) buildTaxonomy(ctx context.Context) error {
	if s.taxonomy != nil {
		return nil
	}
	if s.taxonomyPath == "" {
		s.taxonomy = taxonomy.Default()
		return nil
	}
	extra, err := taxonomy.Load(ctx, s.taxonomyPath)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}
	t, err := taxonomy.New(taxonomy.WithAdditionalSkills(extra...))
	if err != nil {
		return fmt.Errorf("build taxonomy: %w", err)
	}
	s.taxonomy = t
	s.logger.Info(ctx, "taxonomy extended from file",
		logger.String("path", s.taxonomyPath),
		logger.Int("added", len(extra)),
		logger.Int("total", t.Len()),
	)
	return nil
}

// buildStrategy picks the scoring strategy from configuration. The rule
// strategy needs no credentials and is the default.
func (s *Service) buildStrategy(ctx context.Context) (scoring.Strategy, error) {
	if s.strategyName != strategyGemini {
		ruleOpts := []scoring.RuleOption{
			scoring.WithTaxonomy(s.taxonomy),
		}
		if s.horizonDays > 0 {
			ruleOpts = append(ruleOpts, scoring.WithAvailabilityHorizon(s.horizonDays))
		}
		if s.preferredBonus >= 0 {
			ruleOpts = append(ruleOpts, scoring.WithPreferredBonus(s.preferredBonus))
		}
		if s.now != nil {
			ruleOpts = append(ruleOpts, scoring.WithNow(s.now))
		}
		return scoring.NewRuleStrategy(ruleOpts...), nil
	}

	client, err := gemini.NewClient(ctx, s.geminiAPIKey, s.geminiModel)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	strategy, err := gemini.NewStrategy(client)
	if err != nil {
		return nil, fmt.Errorf("gemini strategy: %w", err)
	}
	return strategy, nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service...")

	// Shutdown closes the warm queue and drains the workers.
	if s.warmPool != nil {
		if err := s.warmPool.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "warm pool shutdown incomplete", logger.Error(err))
		}
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// FindMatches runs the ranking pipeline for a project against the full
// candidate pool.
func (s *Service) FindMatches(ctx context.Context, projectID string, limit int) ([]ranking.Match, ranking.Report, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, ranking.Report{}, fmt.Errorf("find matches: %w", err)
	}
	pool, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, ranking.Report{}, fmt.Errorf("find matches: %w", err)
	}
	return s.pipeline.FindMatches(ctx, project, pool, limit)
}

// ExplainMatch computes or re-reads one pair and breaks its score down by
// dimension. The bool reports whether the result was already cached.
func (s *Service) ExplainMatch(ctx context.Context, projectID, candidateID string) (model.MatchResult, model.Explanation, bool, error) {
	result, hit, err := s.ComputeMatch(ctx, projectID, candidateID)
	if err != nil {
		return model.MatchResult{}, model.Explanation{}, false, err
	}
	return result, s.pipeline.Explain(result), hit, nil
}

// ComputeMatch loads one pair and computes its result through the match
// cache. Warm workers call this for every dequeued job.
func (s *Service) ComputeMatch(ctx context.Context, projectID, candidateID string) (model.MatchResult, bool, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return model.MatchResult{}, false, fmt.Errorf("compute match: %w", err)
	}
	candidate, err := s.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return model.MatchResult{}, false, fmt.Errorf("compute match: %w", err)
	}
	return s.pipeline.Compute(ctx, project, candidate)
}

// WarmProject enqueues a precompute job for every stored candidate against
// the project and returns how many were queued. A rejected job surfaces as
// backpressure; jobs accepted before the rejection stay queued and still
// warm the cache.
func (s *Service) WarmProject(ctx context.Context, projectID string) (int, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("warm project: %w", err)
	}
	pool, err := s.store.ListCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("warm project: %w", err)
	}

	queued := 0
	for _, candidate := range pool {
		job := queue.Job{ProjectID: project.ID, CandidateID: candidate.ID}
		if !s.warmQueue.Enqueue(ctx, job) {
			if s.warmQueue.IsClosed() {
				return queued, fmt.Errorf("warm project %s: %w", project.ID, queue.ErrQueueClosed)
			}
			return queued, fmt.Errorf("warm project %s: %w", project.ID, queue.ErrQueueFull)
		}
		queued++
	}

	s.logger.Debug(ctx, "project warm queued",
		logger.String("project_id", project.ID),
		logger.Int("queued", queued),
	)
	return queued, nil
}

// PutCandidate stores a candidate profile. The returned copy carries the
// assigned version.
func (s *Service) PutCandidate(ctx context.Context, profile model.CandidateProfile) (model.CandidateProfile, error) {
	return s.store.PutCandidate(ctx, profile)
}

// PutProject stores a project requirement. The returned copy carries the
// assigned version.
func (s *Service) PutProject(ctx context.Context, project model.ProjectRequirement) (model.ProjectRequirement, error) {
	return s.store.PutProject(ctx, project)
}

// PutDocument stores a source document for evidence extraction.
func (s *Service) PutDocument(ctx context.Context, doc model.SourceDocument) (model.SourceDocument, error) {
	return s.store.PutDocument(ctx, doc)
}

// ListProjects returns every stored project ordered by id.
func (s *Service) ListProjects(ctx context.Context) ([]model.ProjectRequirement, error) {
	return s.store.ListProjects(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"workers":           s.workerCount,
		"warm_queue_size":   s.queueSize,
		"cache_capacity":    s.cacheCapacity,
		"min_overall_score": s.minOverall,
		"strategy":          s.strategyName,
	}

	if s.started {
		stats["candidates"] = s.store.CountCandidates(ctx)
		stats["projects"] = s.store.CountProjects(ctx)
		stats["documents"] = s.store.CountDocuments(ctx)
		stats["taxonomy_skills"] = s.taxonomy.Len()
		stats["warm_queue_length"] = s.warmQueue.Len(ctx)
		stats["cache"] = s.cache.Stats()

		s.publishGauges(ctx)
	}

	return stats
}

// syncMetrics keeps snapshot-fed gauges current while the service runs. The
// stop channel is bound at spawn so a restarted service signals only its own
// loop.
func (s *Service) syncMetrics(ctx context.Context, stop <-chan struct{}) {
	ticker := time.NewTicker(metrics.Refresh())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			s.mu.RLock()
			if s.started {
				s.publishGauges(ctx)
			}
			s.mu.RUnlock()
		}
	}
}

// publishGauges pushes store, taxonomy, cache, and warm queue snapshots to
// their gauges. Callers hold at least a read lock on s.mu.
func (s *Service) publishGauges(ctx context.Context) {
	cs := s.cache.Stats()
	metrics.UpdateCacheSize(cs.Size)
	metrics.UpdateCacheCapacity(cs.Capacity)
	metrics.UpdateCacheEvictions(cs.Evictions)
	metrics.UpdateCacheCoalesced(cs.Coalesced)
	metrics.UpdateCandidateCount(s.store.CountCandidates(ctx))
	metrics.UpdateProjectCount(s.store.CountProjects(ctx))
	metrics.UpdateDocumentCount(s.store.CountDocuments(ctx))
	metrics.UpdateTaxonomySkills(s.taxonomy.Len())
	s.warmQueue.Len(ctx) // refreshes the warm queue gauges as a side effect
}
