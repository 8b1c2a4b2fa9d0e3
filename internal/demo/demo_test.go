package demo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gradmatch/gradmatch/internal/adapters/repository"
	"github.com/gradmatch/gradmatch/internal/demo"
	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/taxonomy"
)

// demoClock pins the generator's time source so datasets are comparable.
func demoClock() time.Time {
	return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
}

// quote slices the claimed range out of the document after checking bounds.
func quote(doc model.SourceDocument, span model.Span) string {
	So(span.DocumentID, ShouldEqual, doc.ID)
	So(span.Start, ShouldBeGreaterThanOrEqualTo, 0)
	So(span.End, ShouldBeGreaterThan, span.Start)
	So(span.End, ShouldBeLessThanOrEqualTo, len(doc.Text))
	return doc.Text[span.Start:span.End]
}

func TestGenerator_Determinism(t *testing.T) {
	Convey("Given a generator with a fixed clock", t, func() {
		now := demo.WithNow(demoClock)

		Convey("When generating twice with the same seed", func() {
			first := demo.New(demo.WithSeed(7), now).Generate()
			second := demo.New(demo.WithSeed(7), now).Generate()

			Convey("Then the datasets should be identical", func() {
				So(second, ShouldResemble, first)
			})
		})

		Convey("When generating with different seeds", func() {
			first := demo.New(demo.WithSeed(1), now).Generate()
			second := demo.New(demo.WithSeed(2), now).Generate()

			Convey("Then the datasets should differ", func() {
				So(second, ShouldNotResemble, first)
				So(second.Candidates[0].ID, ShouldNotEqual, first.Candidates[0].ID)
			})

			Convey("Then the project titles should still follow the template cycle", func() {
				for i := range first.Projects {
					So(second.Projects[i].Title, ShouldEqual, first.Projects[i].Title)
				}
			})
		})

		Convey("When using the default sizing", func() {
			ds := demo.New(now).Generate()

			Convey("Then the pool should have the default shape", func() {
				So(ds.Candidates, ShouldHaveLength, 24)
				So(ds.Documents, ShouldHaveLength, 24)
				So(ds.Projects, ShouldHaveLength, 6)
			})
		})

		Convey("When options carry non-positive values", func() {
			ds := demo.New(now, demo.WithPoolSize(0), demo.WithProjectCount(-3), demo.WithNow(nil)).Generate()

			Convey("Then the defaults should stay in effect", func() {
				So(ds.Candidates, ShouldHaveLength, 24)
				So(ds.Projects, ShouldHaveLength, 6)
			})
		})
	})
}

func TestGenerator_SpanFidelity(t *testing.T) {
	Convey("Given a generated pool", t, func() {
		ds := demo.New(demo.WithSeed(42), demo.WithPoolSize(16), demo.WithNow(demoClock)).Generate()

		Convey("When walking every candidate's claims", func() {
			for _, c := range ds.Candidates {
				doc, ok := ds.Document(c.DocumentID)
				So(ok, ShouldBeTrue)
				So(doc.CandidateID, ShouldEqual, c.ID)
				So(doc.Text, ShouldNotBeEmpty)

				So(c.AcademicSource.IsZero(), ShouldBeFalse)
				So(quote(doc, c.AcademicSource), ShouldEqual, c.AcademicYear.String()+" in "+c.Program)

				So(len(c.Skills), ShouldBeGreaterThanOrEqualTo, 2)
				for _, m := range c.Skills {
					So(quote(doc, m.Source), ShouldEqual, m.RawText)
				}

				So(c.Experience, ShouldNotBeEmpty)
				for _, e := range c.Experience {
					So(e.Title, ShouldNotBeEmpty)
					So(quote(doc, e.Source), ShouldEqual, e.Description)
				}

				So(c.Education, ShouldHaveLength, 1)
				So(quote(doc, c.Education[0].Source), ShouldContainSubstring, c.Education[0].Program)
				So(quote(doc, c.Education[0].Source), ShouldContainSubstring, c.Education[0].Institution)

				for _, a := range c.Achievements {
					So(quote(doc, a.Source), ShouldEqual, a.Title)
				}

				So(c.Availability.Status, ShouldNotBeEmpty)
				So(quote(doc, c.Availability.Source), ShouldNotBeEmpty)
			}
		})

		Convey("When looking up a document that was never generated", func() {
			_, ok := ds.Document("no-such-document")

			Convey("Then the lookup should miss", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestGenerator_ClaimsResolve(t *testing.T) {
	Convey("Given the built-in skill taxonomy", t, func() {
		tax := taxonomy.Default()
		ds := demo.New(demo.WithSeed(42), demo.WithNow(demoClock)).Generate()

		Convey("When resolving every generated skill claim", func() {
			for _, c := range ds.Candidates {
				for _, m := range c.Skills {
					id, ok := tax.Canonical(m.RawText)
					So(ok, ShouldBeTrue)
					So(id, ShouldNotBeEmpty)
				}
			}
		})

		Convey("When resolving every project requirement", func() {
			for _, p := range ds.Projects {
				for _, skill := range p.RequiredSkills {
					_, ok := tax.Canonical(skill)
					So(ok, ShouldBeTrue)
				}
				for _, skill := range p.PreferredSkills {
					_, ok := tax.Canonical(skill)
					So(ok, ShouldBeTrue)
				}
			}
		})
	})
}

func TestGenerator_Projects(t *testing.T) {
	Convey("Given more projects than templates", t, func() {
		ds := demo.New(demo.WithSeed(42), demo.WithProjectCount(8), demo.WithNow(demoClock)).Generate()

		Convey("When inspecting the generated projects", func() {
			So(ds.Projects, ShouldHaveLength, 8)

			Convey("Then every project should be fully specified", func() {
				seen := make(map[string]bool)
				for _, p := range ds.Projects {
					So(seen[p.ID], ShouldBeFalse)
					seen[p.ID] = true
					So(p.Title, ShouldNotBeEmpty)
					So(p.RequiredSkills, ShouldNotBeEmpty)
					So(p.Type, ShouldNotBeEmpty)
					So(p.Duration, ShouldNotBeEmpty)
					So(p.WorkMode, ShouldNotBeEmpty)
					if p.MaxYear > 0 {
						So(p.MinYear, ShouldBeLessThanOrEqualTo, p.MaxYear)
					}
				}
			})

			Convey("Then the second template round should carry a numbered title", func() {
				So(ds.Projects[6].Title, ShouldEqual, ds.Projects[0].Title+" #2")
				So(ds.Projects[7].Title, ShouldEqual, ds.Projects[1].Title+" #2")
			})
		})
	})
}

func TestDataset_Seed(t *testing.T) {
	Convey("Given a generated dataset and a memory store", t, func() {
		ctx := context.Background()
		ds := demo.New(demo.WithSeed(7), demo.WithPoolSize(6), demo.WithProjectCount(3), demo.WithNow(demoClock)).Generate()

		Convey("When seeding the store", func() {
			store := repository.NewMemoryStore()
			err := ds.Seed(ctx, store)

			Convey("Then everything should land with bumped versions", func() {
				So(err, ShouldBeNil)
				So(store.CountProjects(ctx), ShouldEqual, 3)
				So(store.CountCandidates(ctx), ShouldEqual, 6)
				So(store.CountDocuments(ctx), ShouldEqual, 6)

				stored, getErr := store.GetCandidate(ctx, ds.Candidates[0].ID)
				So(getErr, ShouldBeNil)
				So(stored.Version, ShouldEqual, 1)
				So(stored.Name, ShouldEqual, ds.Candidates[0].Name)
			})
		})

		Convey("When the sink rejects documents", func() {
			errBoom := errors.New("boom")
			sink := failingDocSink{MemoryStore: repository.NewMemoryStore(), err: errBoom}
			err := ds.Seed(ctx, sink)

			Convey("Then seeding should surface the sink error", func() {
				So(err, ShouldWrap, errBoom)
				So(err.Error(), ShouldContainSubstring, "seed document")
			})
		})

		Convey("When the sink rejects projects", func() {
			errBoom := errors.New("boom")
			sink := failingProjectSink{MemoryStore: repository.NewMemoryStore(), err: errBoom}
			err := ds.Seed(ctx, sink)

			Convey("Then seeding should stop at the first project", func() {
				So(err, ShouldWrap, errBoom)
				So(err.Error(), ShouldContainSubstring, "seed project "+ds.Projects[0].ID)
			})
		})
	})
}

// failingDocSink stores normally except for documents.
type failingDocSink struct {
	*repository.MemoryStore
	err error
}

func (s failingDocSink) PutDocument(context.Context, model.SourceDocument) (model.SourceDocument, error) {
	return model.SourceDocument{}, s.err
}

// failingProjectSink rejects every project write.
type failingProjectSink struct {
	*repository.MemoryStore
	err error
}

func (s failingProjectSink) PutProject(context.Context, model.ProjectRequirement) (model.ProjectRequirement, error) {
	return model.ProjectRequirement{}, s.err
}
