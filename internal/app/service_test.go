package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gradmatch/gradmatch/internal/adapters/mq/queue"
	"github.com/gradmatch/gradmatch/internal/adapters/repository"
	service "github.com/gradmatch/gradmatch/internal/app"
	"github.com/gradmatch/gradmatch/internal/domain/matchcache"
	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/ranking"
	"github.com/gradmatch/gradmatch/internal/domain/scoring/gemini"
	"github.com/gradmatch/gradmatch/pkg/logger"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// fixedClock keeps scoring and store stamps deterministic across runs.
func fixedClock() time.Time {
	return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
}

func spanIn(docID, text, quote string) model.Span {
	start := strings.Index(text, quote)
	if start < 0 {
		panic("quote not in document: " + quote)
	}
	return model.Span{DocumentID: docID, Start: start, End: start + len(quote)}
}

func forumProject() model.ProjectRequirement {
	return model.ProjectRequirement{
		ID:             "p-forum",
		Title:          "Community forum",
		Description:    "Build a community web forum with Django and PostgreSQL",
		Type:           model.ProjectWebDev,
		Duration:       model.DurationTwoThreeMonths,
		WorkMode:       model.RemoteModeRemote,
		RequiredSkills: []string{"Python", "Django", "PostgreSQL"},
	}
}

// strongCandidate covers every requirement at advanced level with one
// relevant engagement; the rule strategy scores the pair 90 overall.
func strongCandidate() (model.CandidateProfile, model.SourceDocument) {
	text := "Skills: Python (advanced), Django (advanced), PostgreSQL (advanced). " +
		"Built a Django web forum for the campus community. " +
		"Available immediately, fully remote."
	doc := model.SourceDocument{ID: "doc-nora", CandidateID: "c-nora", Text: text}
	c := model.CandidateProfile{
		ID:           "c-nora",
		Name:         "Nora",
		AcademicYear: model.YearJunior,
		Skills: []model.SkillMention{
			{RawText: "Python", Proficiency: model.ProficiencyAdvanced, Source: spanIn(doc.ID, text, "Python")},
			{RawText: "Django", Proficiency: model.ProficiencyAdvanced, Source: spanIn(doc.ID, text, "Django")},
			{RawText: "PostgreSQL", Proficiency: model.ProficiencyAdvanced, Source: spanIn(doc.ID, text, "PostgreSQL")},
		},
		Experience: []model.ExperienceEntry{{
			Title:       "Campus forum",
			Description: "Built a Django web forum for the campus community",
			Source:      spanIn(doc.ID, text, "Built a Django web forum for the campus community"),
		}},
		Availability: model.Availability{
			Status:           model.AvailabilityYes,
			RemotePreference: model.RemoteModeRemote,
			Source:           spanIn(doc.ID, text, "Available immediately, fully remote"),
		},
		DocumentID: doc.ID,
	}
	return c, doc
}

// partialCandidate covers two of three requirements, one without a stated
// proficiency; the rule strategy scores the pair 68 overall.
func partialCandidate() (model.CandidateProfile, model.SourceDocument) {
	text := "Skills: Python (advanced), Django. Available to start right away."
	doc := model.SourceDocument{ID: "doc-omar", CandidateID: "c-omar", Text: text}
	c := model.CandidateProfile{
		ID:           "c-omar",
		Name:         "Omar",
		AcademicYear: model.YearSophomore,
		Skills: []model.SkillMention{
			{RawText: "Python", Proficiency: model.ProficiencyAdvanced, Source: spanIn(doc.ID, text, "Python")},
			{RawText: "Django", Source: spanIn(doc.ID, text, "Django")},
		},
		Availability: model.Availability{
			Status:           model.AvailabilityYes,
			RemotePreference: model.RemoteModeFlexible,
			Source:           spanIn(doc.ID, text, "Available to start right away"),
		},
		DocumentID: doc.ID,
	}
	return c, doc
}

// designCandidate covers no requirement at all; the zero-coverage gate pulls
// the pair below the eligibility threshold.
func designCandidate() (model.CandidateProfile, model.SourceDocument) {
	text := "Skills: Figma. Available right away."
	doc := model.SourceDocument{ID: "doc-dana", CandidateID: "c-dana", Text: text}
	c := model.CandidateProfile{
		ID:           "c-dana",
		Name:         "Dana",
		AcademicYear: model.YearSenior,
		Skills: []model.SkillMention{
			{RawText: "Figma", Source: spanIn(doc.ID, text, "Figma")},
		},
		Availability: model.Availability{
			Status: model.AvailabilityYes,
			Source: spanIn(doc.ID, text, "Available right away"),
		},
		DocumentID: doc.ID,
	}
	return c, doc
}

// seedForumPool stores the forum project plus all three candidates and their
// documents through the service write surface.
func seedForumPool(ctx context.Context, svc *service.Service) error {
	if _, err := svc.PutProject(ctx, forumProject()); err != nil {
		return err
	}
	builders := []func() (model.CandidateProfile, model.SourceDocument){
		strongCandidate, partialCandidate, designCandidate,
	}
	for _, build := range builders {
		candidate, doc := build()
		if _, err := svc.PutDocument(ctx, doc); err != nil {
			return err
		}
		if _, err := svc.PutCandidate(ctx, candidate); err != nil {
			return err
		}
	}
	return nil
}

// cacheStats pulls the match cache snapshot out of GetStats.
func cacheStats(svc *service.Service) matchcache.Stats {
	stats, _ := svc.GetStats()["cache"].(matchcache.Stats)
	return stats
}

// waitForCacheSize polls until the match cache holds at least want entries
// or the timeout passes.
func waitForCacheSize(svc *service.Service, want int, timeout time.Duration) matchcache.Stats {
	deadline := time.Now().Add(timeout)
	for {
		stats := cacheStats(svc)
		if stats.Size >= want || time.Now().After(deadline) {
			return stats
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["strategy"], ShouldEqual, "rules")
			So(stats["min_overall_score"], ShouldEqual, ranking.DefaultMinOverallScore)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithWorkerCount(4),
			service.WithQueueSize(512),
			service.WithCacheCapacity(128),
			service.WithMaxParallel(2),
			service.WithMinOverallScore(50),
			service.WithPreferredBonus(10),
			service.WithAvailabilityHorizon(30),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["workers"], ShouldEqual, 4)
			So(stats["warm_queue_size"], ShouldEqual, 512)
			So(stats["cache_capacity"], ShouldEqual, 128)
			So(stats["min_overall_score"], ShouldEqual, 50)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithClock(fixedClock))
		// Ensure service is stopped after test
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		Convey("When starting the service", func() {
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["taxonomy_skills"], ShouldBeGreaterThan, 0)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping should mark it stopped", func() {
				svc.Stop()
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)

				// Stopping twice is safe.
				svc.Stop()
			})
		})
	})

	Convey("Given a service configured for gemini without credentials", t, func() {
		svc := service.New(service.WithStrategyName("gemini"))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should refuse to start", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, gemini.ErrMissingAPIKey)
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_FindMatches(t *testing.T) {
	Convey("Given a started service with a seeded pool", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithClock(fixedClock))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		So(seedForumPool(ctx, svc), ShouldBeNil)

		Convey("When finding matches for the project", func() {
			matches, report, err := svc.FindMatches(ctx, "p-forum", 10)

			Convey("Then candidates should come back ranked above the threshold", func() {
				So(err, ShouldBeNil)
				So(len(matches), ShouldEqual, 2)
				So(matches[0].Candidate.ID, ShouldEqual, "c-nora")
				So(matches[0].Result.Overall, ShouldEqual, 90)
				So(matches[1].Candidate.ID, ShouldEqual, "c-omar")
				So(matches[1].Result.Overall, ShouldEqual, 68)
				So(matches[1].Result.MissingSkills, ShouldResemble, []string{"PostgreSQL"})
			})

			Convey("And the report should account for the whole pool", func() {
				So(err, ShouldBeNil)
				So(report.Stage, ShouldEqual, ranking.StageRanked)
				So(report.PoolSize, ShouldEqual, 3)
				So(report.Computed, ShouldEqual, 3)
				So(report.Excluded, ShouldEqual, 1)
				So(report.Returned, ShouldEqual, 2)
				So(report.CacheHits, ShouldEqual, 0)
			})

			Convey("And a second run should be served from the cache", func() {
				So(err, ShouldBeNil)
				again, secondReport, secondErr := svc.FindMatches(ctx, "p-forum", 10)
				So(secondErr, ShouldBeNil)
				So(again, ShouldResemble, matches)
				So(secondReport.CacheHits, ShouldEqual, 3)
				So(secondReport.Computed, ShouldEqual, 0)
			})

			Convey("And updating a candidate should invalidate only their entry", func() {
				So(err, ShouldBeNil)
				nora, _ := strongCandidate()
				_, putErr := svc.PutCandidate(ctx, nora)
				So(putErr, ShouldBeNil)

				_, thirdReport, thirdErr := svc.FindMatches(ctx, "p-forum", 10)
				So(thirdErr, ShouldBeNil)
				So(thirdReport.CacheHits, ShouldEqual, 2)
				So(thirdReport.Computed, ShouldEqual, 1)
			})
		})

		Convey("When the project does not exist", func() {
			matches, _, err := svc.FindMatches(ctx, "p-ghost", 10)

			Convey("Then it should report the missing project", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, repository.ErrProjectNotFound)
				So(matches, ShouldBeNil)
			})
		})

		Convey("When the limit is invalid", func() {
			_, _, err := svc.FindMatches(ctx, "p-forum", 0)

			Convey("Then the pipeline should reject the run", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, ranking.ErrInvalidInput)
			})
		})
	})
}

func TestService_ExplainMatch(t *testing.T) {
	Convey("Given a started service with a seeded pool", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithClock(fixedClock))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		So(seedForumPool(ctx, svc), ShouldBeNil)

		Convey("When explaining a fresh pair", func() {
			result, explanation, hit, err := svc.ExplainMatch(ctx, "p-forum", "c-nora")

			Convey("Then the result should be computed and broken down", func() {
				So(err, ShouldBeNil)
				So(hit, ShouldBeFalse)
				So(result.Overall, ShouldEqual, 90)
				So(explanation.Overall, ShouldEqual, 90)
				So(explanation.CandidateID, ShouldEqual, "c-nora")
				So(len(explanation.Dimensions), ShouldEqual, 4)

				// The weighted dimension points reassemble the overall.
				var points float64
				for _, dim := range explanation.Dimensions {
					points += dim.Points
				}
				So(points, ShouldAlmostEqual, float64(result.Overall), 0.5)
			})

			Convey("And a second explain should hit the cache", func() {
				So(err, ShouldBeNil)
				_, _, secondHit, secondErr := svc.ExplainMatch(ctx, "p-forum", "c-nora")
				So(secondErr, ShouldBeNil)
				So(secondHit, ShouldBeTrue)
			})
		})

		Convey("When the candidate does not exist", func() {
			_, _, _, err := svc.ExplainMatch(ctx, "p-forum", "c-ghost")

			Convey("Then it should report the missing candidate", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, repository.ErrCandidateNotFound)
			})
		})
	})
}

func TestService_WarmProject(t *testing.T) {
	Convey("Given a started service with a seeded pool", t, func() {
		svc := service.New(service.WithWorkerCount(2), service.WithClock(fixedClock))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		So(seedForumPool(ctx, svc), ShouldBeNil)

		Convey("When warming the project", func() {
			queued, err := svc.WarmProject(ctx, "p-forum")

			Convey("Then every candidate should be queued", func() {
				So(err, ShouldBeNil)
				So(queued, ShouldEqual, 3)
			})

			Convey("And the workers should precompute every pair", func() {
				So(err, ShouldBeNil)
				stats := waitForCacheSize(svc, 3, 5*time.Second)
				So(stats.Size, ShouldEqual, 3)

				// Interactive reads now hit the warm cache.
				_, hit, computeErr := svc.ComputeMatch(ctx, "p-forum", "c-nora")
				So(computeErr, ShouldBeNil)
				So(hit, ShouldBeTrue)
			})
		})

		Convey("When the project does not exist", func() {
			queued, err := svc.WarmProject(ctx, "p-ghost")

			Convey("Then it should report the missing project", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, repository.ErrProjectNotFound)
				So(queued, ShouldEqual, 0)
			})
		})

		Convey("When the service has been stopped", func() {
			svc.Stop()
			queued, err := svc.WarmProject(ctx, "p-forum")

			Convey("Then enqueuing should report the closed queue", func() {
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, queue.ErrQueueClosed)
				So(queued, ShouldEqual, 0)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a started service with a seeded pool", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithClock(fixedClock),
			service.WithCacheCapacity(64),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)
		So(seedForumPool(ctx, svc), ShouldBeNil)

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then corpus counters should reflect the seeded pool", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["candidates"], ShouldEqual, 3)
				So(stats["projects"], ShouldEqual, 1)
				So(stats["documents"], ShouldEqual, 3)
				So(stats["taxonomy_skills"], ShouldBeGreaterThan, 0)
				So(stats["warm_queue_length"], ShouldEqual, 0)
			})

			Convey("And the cache snapshot should carry its capacity", func() {
				snapshot, ok := stats["cache"].(matchcache.Stats)
				So(ok, ShouldBeTrue)
				So(snapshot.Capacity, ShouldEqual, 64)
				So(snapshot.Size, ShouldEqual, 0)
			})
		})
	})
}
