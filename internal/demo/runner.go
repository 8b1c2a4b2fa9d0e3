package demo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	service "github.com/gradmatch/gradmatch/internal/app"
	"github.com/gradmatch/gradmatch/internal/domain/matchcache"
	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/ranking"
	"github.com/gradmatch/gradmatch/pkg/logger"
)

// defaultTopN bounds a ranked table when the config leaves it unset.
const defaultTopN = 10

// Config controls one demo run.
type Config struct {
	PoolSize     int
	ProjectCount int
	Seed         int64
	TopN         int
	Verbose      bool
}

// Stats accumulates counters across the whole run.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	Candidates int
	Projects   int
	Documents  int

	RankingRuns     int
	MatchesReturned int
	Excluded        int
	EvidenceEntries int
}

// Run seeds an in-process service with a generated pool, ranks every project,
// and verifies the engine's invariants on the results: ordering and threshold,
// weighted identity via the explain path, evidence offsets, and cache
// idempotence on a second pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	topN := config.TopN
	if topN < 1 {
		topN = defaultTopN
	}

	logger.Get().Info(ctx, "starting matching demo",
		logger.Int("pool_size", config.PoolSize),
		logger.Int("project_count", config.ProjectCount),
		logger.Int64("seed", config.Seed),
		logger.Int("top_n", topN),
	)

	svc := service.New(service.WithLogger(logger.Get().Named("demo")))
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	dataset := New(
		WithSeed(config.Seed),
		WithPoolSize(config.PoolSize),
		WithProjectCount(config.ProjectCount),
	).Generate()
	if err := dataset.Seed(ctx, svc); err != nil {
		return fmt.Errorf("seed dataset: %w", err)
	}
	stats.Candidates = len(dataset.Candidates)
	stats.Projects = len(dataset.Projects)
	stats.Documents = len(dataset.Documents)

	log.Printf("🌱 Seeded %d candidates, %d projects, %d documents (seed %d)",
		stats.Candidates, stats.Projects, stats.Documents, config.Seed)

	for _, project := range dataset.Projects {
		if err := runProject(ctx, svc, dataset, project, topN, config.Verbose, stats); err != nil {
			return err
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(svc, stats)

	logger.Get().Info(ctx, "demo completed successfully")
	return nil
}

// runProject ranks one project twice and runs every verification on the
// results.
func runProject(ctx context.Context, svc *service.Service, dataset Dataset, project model.ProjectRequirement, topN int, verbose bool, stats *Stats) error {
	first, report, err := svc.FindMatches(ctx, project.ID, topN)
	if err != nil {
		return fmt.Errorf("find matches for %s: %w", project.ID, err)
	}
	stats.RankingRuns++
	stats.MatchesReturned += report.Returned
	stats.Excluded += report.Excluded
	stats.EvidenceEntries += report.EvidenceEntries

	displayMatches(project, first, report, verbose)

	log.Printf("🔍 Verifying %q...", project.Title)
	if err := verifyRanking(first, report, ranking.DefaultMinOverallScore); err != nil {
		return fmt.Errorf("ranking invariants for %s: %w", project.ID, err)
	}
	if err := verifyExplanations(ctx, svc, project.ID, first); err != nil {
		return fmt.Errorf("explanation invariants for %s: %w", project.ID, err)
	}
	if err := verifyEvidence(dataset, first); err != nil {
		return fmt.Errorf("evidence invariants for %s: %w", project.ID, err)
	}

	second, secondReport, err := svc.FindMatches(ctx, project.ID, topN)
	if err != nil {
		return fmt.Errorf("second pass for %s: %w", project.ID, err)
	}
	stats.RankingRuns++
	if err := verifySecondPass(first, second, secondReport); err != nil {
		return fmt.Errorf("cache idempotence for %s: %w", project.ID, err)
	}
	log.Printf("✅ %q verified: ordering, threshold, identity, evidence, idempotence", project.Title)
	return nil
}

// displayMatches prints the ranked table for one project.
func displayMatches(project model.ProjectRequirement, matches []ranking.Match, report ranking.Report, verbose bool) {
	log.Printf("🏆 Top %d matches for %q (%s, needs %s):",
		len(matches), project.Title, project.Type, strings.Join(project.RequiredSkills, ", "))
	for i, m := range matches {
		log.Printf("   %2d. %-22s overall %3d  [skills %5.1f | avail %5.1f | academic %5.1f | exp %5.1f]",
			i+1, m.Candidate.Name, m.Result.Overall,
			m.Result.Dimensions.Skills, m.Result.Dimensions.Availability,
			m.Result.Dimensions.Academic, m.Result.Dimensions.Experience)
		if len(m.Result.MissingSkills) > 0 {
			log.Printf("       missing: %s", strings.Join(m.Result.MissingSkills, ", "))
		}
		if verbose {
			for _, ev := range m.Result.Evidence {
				log.Printf("       %s: %q (%.2f)", ev.Type, ev.Text, ev.Confidence)
			}
		}
	}
	log.Printf("   pool %d | hits %d | computed %d | excluded %d | evidence %d (dropped %d) | %s",
		report.PoolSize, report.CacheHits, report.Computed, report.Excluded,
		report.EvidenceEntries, report.EvidenceDropped, report.Elapsed.Round(time.Microsecond))
	if len(report.UnresolvedRequirements) > 0 {
		log.Printf("⚠️  unresolved requirements: %s", strings.Join(report.UnresolvedRequirements, ", "))
	}
}

// displayFinalStats prints the run totals and the service's own counters.
func displayFinalStats(svc *service.Service, stats *Stats) {
	serviceStats := svc.GetStats()
	cache, _ := serviceStats["cache"].(matchcache.Stats)

	log.Printf(`📊 Demo statistics:
   Candidates: %d   Projects: %d   Documents: %d
   Ranking runs: %d   Matches returned: %d   Excluded: %d
   Evidence entries: %d
   Cache: %d/%d entries, %d hits, %d misses, %d coalesced
   Duration: %s`,
		stats.Candidates, stats.Projects, stats.Documents,
		stats.RankingRuns, stats.MatchesReturned, stats.Excluded,
		stats.EvidenceEntries,
		cache.Size, cache.Capacity, cache.Hits, cache.Misses, cache.Coalesced,
		stats.Duration.Round(time.Millisecond))
}
