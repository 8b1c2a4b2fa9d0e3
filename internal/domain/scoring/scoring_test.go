package scoring_test

import (
	"context"
	"testing"
	"time"

	scoring "github.com/gradmatch/gradmatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

func storeProject() model.ProjectRequirement {
	return model.ProjectRequirement{
		ID:             "p-store",
		Title:          "Online store builder",
		Description:    "Build a web store with Django and PostgreSQL",
		Type:           model.ProjectWebDev,
		Duration:       model.DurationTwoThreeMonths,
		WorkMode:       model.RemoteModeRemote,
		RequiredSkills: []string{"Python", "Django", "PostgreSQL"},
		Version:        7,
	}
}

func webCandidate() model.CandidateProfile {
	return model.CandidateProfile{
		ID:           "c-amira",
		Name:         "Amira",
		AcademicYear: model.YearJunior,
		Program:      "Computer Science",
		Skills: []model.SkillMention{
			{RawText: "Advanced Python", Source: model.Span{DocumentID: "doc-amira", Start: 10, End: 25}},
			{RawText: "Django", Proficiency: model.ProficiencyIntermediate, Source: model.Span{DocumentID: "doc-amira", Start: 27, End: 33}},
		},
		Experience: []model.ExperienceEntry{
			{
				Title:       "E-commerce side project",
				Description: "Built an online store with Django and Stripe",
				Source:      model.Span{DocumentID: "doc-amira", Start: 60, End: 104},
			},
		},
		Availability: model.Availability{
			Status:           model.AvailabilityYes,
			RemotePreference: model.RemoteModeFlexible,
			Source:           model.Span{DocumentID: "doc-amira", Start: 120, End: 140},
		},
		DocumentID: "doc-amira",
		Version:    3,
	}
}

func TestWeights(t *testing.T) {
	Convey("Given dimension weights", t, func() {
		Convey("When using the defaults", func() {
			w := scoring.DefaultWeights()

			Convey("Then they should sum to exactly 1.0", func() {
				So(w.Skills, ShouldEqual, 0.40)
				So(w.Availability, ShouldEqual, 0.25)
				So(w.Academic, ShouldEqual, 0.20)
				So(w.Experience, ShouldEqual, 0.15)
				So(w.Validate(), ShouldBeNil)
			})
		})

		Convey("When a weight is negative", func() {
			w := scoring.Weights{Skills: 1.2, Availability: -0.2}

			Convey("Then validation should fail", func() {
				So(w.Validate(), ShouldWrap, scoring.ErrInvalidWeights)
			})
		})

		Convey("When the weights do not sum to 1.0", func() {
			w := scoring.Weights{Skills: 0.5, Availability: 0.5, Academic: 0.5}

			Convey("Then validation should fail", func() {
				So(w.Validate(), ShouldWrap, scoring.ErrInvalidWeights)
			})
		})
	})
}

func TestNewEngine(t *testing.T) {
	Convey("Given engine options", t, func() {
		Convey("When creating an engine with default options", func() {
			e, err := scoring.NewEngine()

			Convey("Then it should use the default weights", func() {
				So(err, ShouldBeNil)
				So(e, ShouldNotBeNil)
				So(e.Weights(), ShouldResemble, scoring.DefaultWeights())
			})
		})

		Convey("When creating an engine with invalid weights", func() {
			_, err := scoring.NewEngine(scoring.WithWeights(scoring.Weights{Skills: 1, Availability: 1}))

			Convey("Then it should fail", func() {
				So(err, ShouldWrap, scoring.ErrInvalidWeights)
			})
		})

		Convey("When creating an engine with a gate outside [0, 1]", func() {
			_, err := scoring.NewEngine(scoring.WithZeroCoverageGate(1.5))

			Convey("Then it should fail", func() {
				So(err, ShouldWrap, scoring.ErrInvalidGate)
			})
		})
	})
}

func TestEngineScore(t *testing.T) {
	Convey("Given an engine with a pinned clock", t, func() {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		clock := func() time.Time { return now }
		engine, err := scoring.NewEngine(
			scoring.WithStrategy(scoring.NewRuleStrategy(scoring.WithNow(clock))),
			scoring.WithClock(clock),
		)
		So(err, ShouldBeNil)

		Convey("When scoring a partial skills match", func() {
			res, contribs, err := engine.Score(context.Background(), storeProject(), webCandidate())

			Convey("Then the dimensions should follow the rules exactly", func() {
				So(err, ShouldBeNil)
				// (1.0 + 0.75 + 0) / 3 * 100 = 58.33
				So(res.Dimensions.Skills, ShouldAlmostEqual, 58.33, 0.01)
				So(res.Dimensions.Availability, ShouldEqual, 100)
				So(res.Dimensions.Academic, ShouldEqual, 100)
				// one relevant engagement out of three = 33.33
				So(res.Dimensions.Experience, ShouldAlmostEqual, 33.33, 0.01)
				// 58.33*0.40 + 100*0.25 + 100*0.20 + 33.33*0.15 = 73.33
				So(res.Overall, ShouldEqual, 73)
				So(res.Gated, ShouldBeFalse)
			})

			Convey("Then the unmet requirement should be echoed verbatim", func() {
				So(res.MissingSkills, ShouldResemble, []string{"PostgreSQL"})
				So(res.UnmatchedMentions, ShouldBeEmpty)
			})

			Convey("Then the result should carry full provenance", func() {
				So(res.CandidateID, ShouldEqual, "c-amira")
				So(res.CandidateVersion, ShouldEqual, 3)
				So(res.ProjectID, ShouldEqual, "p-store")
				So(res.ProjectVersion, ShouldEqual, 7)
				So(res.Strategy, ShouldEqual, "rules")
				So(res.ComputedAt.Equal(now), ShouldBeTrue)
			})

			Convey("Then contributions should anchor to the profile spans", func() {
				So(len(contribs), ShouldBeGreaterThanOrEqualTo, 3)
				So(contribs[0].Kind, ShouldEqual, model.EvidenceSkillMention)
				So(contribs[0].Source.DocumentID, ShouldEqual, "doc-amira")
			})
		})

		Convey("When scoring the same pair twice", func() {
			first, _, errFirst := engine.Score(context.Background(), storeProject(), webCandidate())
			second, _, errSecond := engine.Score(context.Background(), storeProject(), webCandidate())

			Convey("Then both results should be identical", func() {
				So(errFirst, ShouldBeNil)
				So(errSecond, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the candidate gains a missing skill", func() {
			base, _, _ := engine.Score(context.Background(), storeProject(), webCandidate())
			richer := webCandidate()
			richer.Skills = append(richer.Skills, model.SkillMention{
				RawText: "PostgreSQL",
				Source:  model.Span{DocumentID: "doc-amira", Start: 35, End: 45},
			})
			improved, _, err := engine.Score(context.Background(), storeProject(), richer)

			Convey("Then the overall score should increase", func() {
				So(err, ShouldBeNil)
				So(improved.Overall, ShouldBeGreaterThan, base.Overall)
				So(improved.MissingSkills, ShouldBeEmpty)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, _, err := engine.Score(ctx, storeProject(), webCandidate())

			Convey("Then scoring should fail with the context error", func() {
				So(err, ShouldWrap, context.Canceled)
			})
		})
	})

	Convey("Given a candidate with zero required-skill coverage", t, func() {
		project := model.ProjectRequirement{
			ID:             "p-dash",
			Title:          "Data dashboard",
			Description:    "Visualize metrics",
			Type:           model.ProjectDataAnalysis,
			WorkMode:       model.RemoteModeRemote,
			RequiredSkills: []string{"Python"},
		}
		candidate := model.CandidateProfile{
			ID:           "c-kai",
			AcademicYear: model.YearSenior,
			Skills:       []model.SkillMention{{RawText: "Figma"}},
			Availability: model.Availability{Status: model.AvailabilityYes},
		}

		Convey("When scoring with the default gate", func() {
			engine, _ := scoring.NewEngine()
			res, _, err := engine.Score(context.Background(), project, candidate)

			Convey("Then the gate should pull the score below the threshold", func() {
				So(err, ShouldBeNil)
				// (0*0.40 + 100*0.25 + 100*0.20 + 0*0.15) * 0.4 = 18
				So(res.Overall, ShouldEqual, 18)
				So(res.Gated, ShouldBeTrue)
				So(res.MissingSkills, ShouldResemble, []string{"Python"})
			})
		})

		Convey("When the gate is disabled", func() {
			engine, _ := scoring.NewEngine(scoring.WithZeroCoverageGate(1.0))
			res, _, err := engine.Score(context.Background(), project, candidate)

			Convey("Then the weighted sum should pass through unchanged", func() {
				So(err, ShouldBeNil)
				So(res.Overall, ShouldEqual, 45)
				So(res.Gated, ShouldBeTrue)
			})
		})
	})
}

func TestRuleStrategySkills(t *testing.T) {
	Convey("Given the rule strategy", t, func() {
		strat := scoring.NewRuleStrategy()
		ctx := context.Background()

		Convey("When a requirement resolves through a synonym", func() {
			project := model.ProjectRequirement{
				ID:             "p1",
				Title:          "Database tuning",
				RequiredSkills: []string{"Postgres"},
			}
			candidate := model.CandidateProfile{
				ID:     "c1",
				Skills: []model.SkillMention{{RawText: "PostgreSQL", Proficiency: model.ProficiencyAdvanced}},
			}
			b, err := strat.Assess(ctx, project, candidate)

			Convey("Then the synonym confidence should scale the score", func() {
				So(err, ShouldBeNil)
				// 0.8 * 1.0 * 1.0 * 100 = 80
				So(b.Dimensions.Skills, ShouldEqual, 80)
				So(b.MatchedSkills, ShouldEqual, 1)
			})
		})

		Convey("When preferred skills are partially covered", func() {
			project := model.ProjectRequirement{
				ID:              "p2",
				Title:           "API service",
				RequiredSkills:  []string{"Python"},
				PreferredSkills: []string{"Django", "Redis"},
			}
			candidate := model.CandidateProfile{
				ID: "c2",
				Skills: []model.SkillMention{
					{RawText: "Python", Proficiency: model.ProficiencyBeginner},
					{RawText: "Django"},
				},
			}
			b, err := strat.Assess(ctx, project, candidate)

			Convey("Then the bonus should scale with preferred coverage", func() {
				So(err, ShouldBeNil)
				// base 0.5*100 = 50, bonus 20 * 1/2 = 10
				So(b.Dimensions.Skills, ShouldEqual, 60)
			})

			Convey("Then both the required and preferred matches should contribute", func() {
				skillContribs := 0
				for _, c := range b.Contributions {
					if c.Kind == model.EvidenceSkillMention {
						skillContribs++
					}
				}
				So(skillContribs, ShouldEqual, 2)
			})
		})

		Convey("When a mention resolves nowhere", func() {
			project := model.ProjectRequirement{ID: "p3", Title: "Anything", RequiredSkills: []string{"Python"}}
			candidate := model.CandidateProfile{
				ID: "c3",
				Skills: []model.SkillMention{
					{RawText: "Python"},
					{RawText: "Underwater Basket Weaving"},
					{RawText: "Underwater Basket Weaving"},
				},
			}
			b, err := strat.Assess(ctx, project, candidate)

			Convey("Then the claim should be echoed once, verbatim", func() {
				So(err, ShouldBeNil)
				So(b.UnmatchedMentions, ShouldResemble, []string{"Underwater Basket Weaving"})
			})
		})

		Convey("When the candidate repeats a skill at different levels", func() {
			project := model.ProjectRequirement{ID: "p4", Title: "Scripting", RequiredSkills: []string{"Python"}}
			candidate := model.CandidateProfile{
				ID: "c4",
				Skills: []model.SkillMention{
					{RawText: "Python", Proficiency: model.ProficiencyBeginner},
					{RawText: "Expert Python"},
				},
			}
			b, err := strat.Assess(ctx, project, candidate)

			Convey("Then the strongest mention should win", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Skills, ShouldEqual, 100)
			})
		})
	})
}

func TestRuleStrategyAvailability(t *testing.T) {
	Convey("Given a rule strategy with a pinned clock", t, func() {
		now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		strat := scoring.NewRuleStrategy(scoring.WithNow(func() time.Time { return now }))
		ctx := context.Background()
		project := model.ProjectRequirement{
			ID:             "p-avail",
			Title:          "Remote research assistant",
			WorkMode:       model.RemoteModeRemote,
			RequiredSkills: []string{"Python"},
		}
		base := model.CandidateProfile{
			ID:     "c-avail",
			Skills: []model.SkillMention{{RawText: "Python"}},
		}

		assess := func(a model.Availability) model.DimensionScores {
			c := base
			c.Availability = a
			b, err := strat.Assess(ctx, project, c)
			So(err, ShouldBeNil)
			return b.Dimensions
		}

		Convey("When the candidate is available now", func() {
			d := assess(model.Availability{Status: model.AvailabilityYes})

			Convey("Then availability should be 100", func() {
				So(d.Availability, ShouldEqual, 100)
			})
		})

		Convey("When the start date is 45 days out", func() {
			d := assess(model.Availability{
				Status:        model.AvailabilityYes,
				AvailableFrom: now.AddDate(0, 0, 45),
			})

			Convey("Then the score should prorate over the 90-day horizon", func() {
				So(d.Availability, ShouldAlmostEqual, 50, 0.01)
			})
		})

		Convey("When the start date is beyond the horizon", func() {
			d := assess(model.Availability{
				Status:        model.AvailabilityYes,
				AvailableFrom: now.AddDate(0, 0, 120),
			})

			Convey("Then availability should be zero", func() {
				So(d.Availability, ShouldEqual, 0)
			})
		})

		Convey("When availability is limited", func() {
			d := assess(model.Availability{Status: model.AvailabilityLimited})

			Convey("Then the score should be halved", func() {
				So(d.Availability, ShouldEqual, 50)
			})
		})

		Convey("When availability is limited and the start is delayed", func() {
			d := assess(model.Availability{
				Status:        model.AvailabilityLimited,
				AvailableFrom: now.AddDate(0, 0, 45),
			})

			Convey("Then both factors should apply", func() {
				So(d.Availability, ShouldAlmostEqual, 25, 0.01)
			})
		})

		Convey("When the candidate is not available", func() {
			d := assess(model.Availability{Status: model.AvailabilityNo})

			Convey("Then availability should be zero", func() {
				So(d.Availability, ShouldEqual, 0)
			})
		})

		Convey("When the work modes conflict outright", func() {
			d := assess(model.Availability{
				Status:           model.AvailabilityYes,
				RemotePreference: model.RemoteModeOnsite,
			})

			Convey("Then availability should be zero", func() {
				So(d.Availability, ShouldEqual, 0)
			})
		})

		Convey("When a hybrid project meets a remote preference", func() {
			hybrid := project
			hybrid.WorkMode = model.RemoteModeHybrid
			c := base
			c.Availability = model.Availability{
				Status:           model.AvailabilityYes,
				RemotePreference: model.RemoteModeRemote,
			}
			b, err := strat.Assess(ctx, hybrid, c)

			Convey("Then the modes should be compatible", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Availability, ShouldEqual, 100)
			})
		})

		Convey("When the horizon is shortened", func() {
			short := scoring.NewRuleStrategy(
				scoring.WithNow(func() time.Time { return now }),
				scoring.WithAvailabilityHorizon(30),
			)
			c := base
			c.Availability = model.Availability{
				Status:        model.AvailabilityYes,
				AvailableFrom: now.AddDate(0, 0, 15),
			}
			b, err := short.Assess(ctx, project, c)

			Convey("Then proration should use the configured horizon", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Availability, ShouldAlmostEqual, 50, 0.01)
			})
		})
	})
}

func TestRuleStrategyAcademic(t *testing.T) {
	Convey("Given a project accepting sophomores through juniors", t, func() {
		strat := scoring.NewRuleStrategy()
		ctx := context.Background()
		project := model.ProjectRequirement{
			ID:             "p-band",
			Title:          "Lab assistant",
			RequiredSkills: []string{"Python"},
			MinYear:        model.YearSophomore,
			MaxYear:        model.YearJunior,
		}

		academicFor := func(year model.AcademicYear) float64 {
			b, err := strat.Assess(ctx, project, model.CandidateProfile{
				ID:           "c-year",
				AcademicYear: year,
				Skills:       []model.SkillMention{{RawText: "Python"}},
			})
			So(err, ShouldBeNil)
			return b.Dimensions.Academic
		}

		Convey("Then years inside the band should score 100", func() {
			So(academicFor(model.YearSophomore), ShouldEqual, 100)
			So(academicFor(model.YearJunior), ShouldEqual, 100)
		})

		Convey("Then one year off should score 60", func() {
			So(academicFor(model.YearFreshman), ShouldEqual, 60)
			So(academicFor(model.YearSenior), ShouldEqual, 60)
		})

		Convey("Then two or more years off should score 20", func() {
			So(academicFor(model.YearGraduate), ShouldEqual, 20)
		})

		Convey("Then an unknown year should count as one off", func() {
			So(academicFor(model.YearUnknown), ShouldEqual, 60)
		})

		Convey("Then a project with no band should accept everyone", func() {
			open := project
			open.MinYear = model.YearUnknown
			open.MaxYear = model.YearUnknown
			b, err := strat.Assess(ctx, open, model.CandidateProfile{
				ID:           "c-open",
				AcademicYear: model.YearGraduate,
				Skills:       []model.SkillMention{{RawText: "Python"}},
			})
			So(err, ShouldBeNil)
			So(b.Dimensions.Academic, ShouldEqual, 100)
		})
	})

	Convey("Given a project with preferred programs", t, func() {
		strat := scoring.NewRuleStrategy()
		project := model.ProjectRequirement{
			ID:                "p-prog",
			Title:             "Research project",
			RequiredSkills:    []string{"Python"},
			PreferredPrograms: []string{"Computer Science"},
			MinYear:           model.YearSophomore,
			MaxYear:           model.YearJunior,
		}
		candidate := model.CandidateProfile{
			ID:             "c-prog",
			AcademicYear:   model.YearSenior,
			Program:        "Computer Science and Engineering",
			Skills:         []model.SkillMention{{RawText: "Python"}},
			AcademicSource: model.Span{DocumentID: "doc-prog", Start: 5, End: 40},
		}

		Convey("When the candidate's program is preferred", func() {
			b, err := strat.Assess(context.Background(), project, candidate)

			Convey("Then the evidence confidence rises but the score does not", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Academic, ShouldEqual, 60)

				var education []model.Contribution
				for _, c := range b.Contributions {
					if c.Kind == model.EvidenceEducation {
						education = append(education, c)
					}
				}
				So(education, ShouldHaveLength, 1)
				// 60/100 + 0.2 program preference boost
				So(education[0].Weight, ShouldAlmostEqual, 0.8, 0.001)
				So(education[0].Source.DocumentID, ShouldEqual, "doc-prog")
			})
		})
	})
}

func TestRuleStrategyExperience(t *testing.T) {
	Convey("Given a project and a candidate with relevant engagements", t, func() {
		strat := scoring.NewRuleStrategy()
		ctx := context.Background()
		project := model.ProjectRequirement{
			ID:             "p-forum",
			Title:          "Community site",
			Description:    "Build a community web forum in Django",
			Type:           model.ProjectWebDev,
			RequiredSkills: []string{"Django"},
		}
		entries := []model.ExperienceEntry{
			{Title: "Forum moderator tools", Description: "Django admin plugin for forum cleanup"},
			{Title: "Community blog", Description: "Web blog built with Django"},
			{Title: "Club website", Description: "Django site for the chess community"},
		}
		achievement := model.AchievementEntry{Title: "Best web project award", Description: "Won for a Django forum"}

		Convey("When relevant engagements reach the soft cap", func() {
			b, err := strat.Assess(ctx, project, model.CandidateProfile{
				ID:           "c-exp",
				Skills:       []model.SkillMention{{RawText: "Django"}},
				Experience:   entries,
				Achievements: []model.AchievementEntry{achievement},
			})

			Convey("Then experience should score 100", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Experience, ShouldEqual, 100)
			})
		})

		Convey("When achievements fill in at half weight", func() {
			b, err := strat.Assess(ctx, project, model.CandidateProfile{
				ID:           "c-exp2",
				Skills:       []model.SkillMention{{RawText: "Django"}},
				Experience:   entries[:2],
				Achievements: []model.AchievementEntry{achievement},
			})

			Convey("Then the score should reflect 2.5 of 3 engagements", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Experience, ShouldAlmostEqual, 83.33, 0.01)
			})
		})

		Convey("When an engagement barely overlaps the project", func() {
			b, err := strat.Assess(ctx, project, model.CandidateProfile{
				ID:         "c-exp3",
				Skills:     []model.SkillMention{{RawText: "Django"}},
				Experience: []model.ExperienceEntry{{Title: "Dog walking", Description: "Walked dogs around campus"}},
			})

			Convey("Then it should not count as relevant", func() {
				So(err, ShouldBeNil)
				So(b.Dimensions.Experience, ShouldEqual, 0)
			})
		})

		Convey("When engagements are relevant", func() {
			b, err := strat.Assess(ctx, project, model.CandidateProfile{
				ID:           "c-exp4",
				Skills:       []model.SkillMention{{RawText: "Django"}},
				Experience:   entries[:1],
				Achievements: []model.AchievementEntry{achievement},
			})

			Convey("Then contributions should carry per-engagement weights", func() {
				So(err, ShouldBeNil)
				var exp, ach []model.Contribution
				for _, c := range b.Contributions {
					switch c.Kind {
					case model.EvidenceProjectExperience:
						exp = append(exp, c)
					case model.EvidenceAchievement:
						ach = append(ach, c)
					}
				}
				So(exp, ShouldHaveLength, 1)
				So(ach, ShouldHaveLength, 1)
				So(exp[0].Weight, ShouldAlmostEqual, 0.333, 0.001)
				So(ach[0].Weight, ShouldAlmostEqual, 0.167, 0.001)
			})
		})
	})
}

func TestExplain(t *testing.T) {
	Convey("Given a computed match result", t, func() {
		res := model.MatchResult{
			CandidateID: "c-x",
			ProjectID:   "p-x",
			Overall:     73,
			Dimensions:  model.DimensionScores{Skills: 58.33, Availability: 100, Academic: 100, Experience: 33.33},
			Evidence: []model.Evidence{
				{Type: model.EvidenceSkillMention, Text: "Advanced Python", Confidence: 1},
				{Type: model.EvidenceProjectExperience, Text: "Built an online store", Confidence: 0.33},
				{Type: model.EvidenceAvailability, Text: "Available immediately", Confidence: 1},
			},
			MissingSkills: []string{"PostgreSQL"},
		}

		Convey("When explaining with the default weights", func() {
			ex := scoring.Explain(res, scoring.DefaultWeights())

			Convey("Then each dimension should carry its weighted points", func() {
				So(ex.Dimensions, ShouldHaveLength, 4)
				So(ex.Dimensions[0].Name, ShouldEqual, model.DimensionSkills)
				So(ex.Dimensions[0].Points, ShouldAlmostEqual, 23.33, 0.01)
				So(ex.Dimensions[1].Name, ShouldEqual, model.DimensionAvailability)
				So(ex.Dimensions[1].Points, ShouldAlmostEqual, 25, 0.01)
				So(ex.Dimensions[3].Points, ShouldAlmostEqual, 5.0, 0.01)
			})

			Convey("Then evidence should group under its dimension", func() {
				So(ex.Dimensions[0].Evidence, ShouldHaveLength, 1)
				So(ex.Dimensions[0].Evidence[0].Text, ShouldEqual, "Advanced Python")
				So(ex.Dimensions[1].Evidence, ShouldHaveLength, 1)
				So(ex.Dimensions[3].Evidence, ShouldHaveLength, 1)
				So(ex.Dimensions[2].Evidence, ShouldBeEmpty)
			})

			Convey("Then the summary fields should pass through", func() {
				So(ex.CandidateID, ShouldEqual, "c-x")
				So(ex.Overall, ShouldEqual, 73)
				So(ex.MissingSkills, ShouldResemble, []string{"PostgreSQL"})
			})
		})
	})
}
