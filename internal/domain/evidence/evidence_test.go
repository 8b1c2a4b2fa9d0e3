package evidence

import (
	"context"
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// stubDocs serves documents from a map and records lookups.
type stubDocs struct {
	mu   sync.Mutex
	docs map[string]model.SourceDocument
	gets map[string]int
}

func newStubDocs(docs ...model.SourceDocument) *stubDocs {
	s := &stubDocs{docs: make(map[string]model.SourceDocument), gets: make(map[string]int)}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *stubDocs) GetDocument(_ context.Context, id string) (model.SourceDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets[id]++
	d, ok := s.docs[id]
	if !ok {
		return model.SourceDocument{}, errors.New("document not found")
	}
	return d, nil
}

func (s *stubDocs) lookups(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[id]
}

func TestCollect(t *testing.T) {
	Convey("Given a collector over a two-page document", t, func() {
		//          0         1         2         3         4
		//          0123456789012345678901234567890123456789012345
		text := "Skills: Advanced Python\nBuilt a Django store."
		doc := model.SourceDocument{
			ID:          "doc-1",
			CandidateID: "c1",
			Text:        text,
			PageOffsets: []int{0, 24},
		}
		docs := newStubDocs(doc)
		collector := NewCollector(docs)
		ctx := context.Background()

		Convey("When collecting anchored contributions", func() {
			contribs := []model.Contribution{
				{
					Kind:   model.EvidenceProjectExperience,
					Weight: 0.33,
					Source: model.Span{DocumentID: "doc-1", Start: 24, End: 45},
				},
				{
					Kind:   model.EvidenceSkillMention,
					Weight: 1.0,
					Source: model.Span{DocumentID: "doc-1", Start: 8, End: 23},
				},
			}
			out, dropped, err := collector.Collect(ctx, contribs)

			Convey("Then each entry should quote the document verbatim", func() {
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 0)
				So(out, ShouldHaveLength, 2)
				So(out[0].Text, ShouldEqual, "Advanced Python")
				So(out[1].Text, ShouldEqual, "Built a Django store.")
			})

			Convey("Then entries should sort by type order", func() {
				So(out[0].Type, ShouldEqual, model.EvidenceSkillMention)
				So(out[1].Type, ShouldEqual, model.EvidenceProjectExperience)
			})

			Convey("Then pages should resolve from the offset table", func() {
				So(out[0].Page, ShouldEqual, 1)
				So(out[1].Page, ShouldEqual, 2)
			})

			Convey("Then the document should be fetched once", func() {
				So(docs.lookups("doc-1"), ShouldEqual, 1)
			})
		})

		Convey("When a contribution's span is out of bounds", func() {
			contribs := []model.Contribution{
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-1", Start: 8, End: 23}},
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-1", Start: 40, End: 200}},
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-1", Start: -2, End: 5}},
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-1", Start: 10, End: 10}},
			}
			out, dropped, err := collector.Collect(ctx, contribs)

			Convey("Then only the bad entries should drop", func() {
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 3)
				So(out, ShouldHaveLength, 1)
				So(out[0].Text, ShouldEqual, "Advanced Python")
			})
		})

		Convey("When a contribution references an unknown document", func() {
			contribs := []model.Contribution{
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-gone", Start: 0, End: 5}},
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-1", Start: 8, End: 23}},
			}
			out, dropped, err := collector.Collect(ctx, contribs)

			Convey("Then that entry should drop and the rest survive", func() {
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 1)
				So(out, ShouldHaveLength, 1)
			})
		})

		Convey("When a contribution carries no span", func() {
			contribs := []model.Contribution{
				{Kind: model.EvidenceAvailability, Weight: 1},
			}
			out, dropped, err := collector.Collect(ctx, contribs)

			Convey("Then it should be skipped without counting as dropped", func() {
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 0)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When confidence would exceed 1", func() {
			contribs := []model.Contribution{
				{Kind: model.EvidenceSkillMention, Weight: 1.7, Source: model.Span{DocumentID: "doc-1", Start: 8, End: 23}},
			}
			out, _, err := collector.Collect(ctx, contribs)

			Convey("Then it should clamp to 1", func() {
				So(err, ShouldBeNil)
				So(out[0].Confidence, ShouldEqual, 1.0)
			})
		})

		Convey("When two contributions quote the same span for the same reason", func() {
			span := model.Span{DocumentID: "doc-1", Start: 8, End: 23}
			contribs := []model.Contribution{
				{Kind: model.EvidenceSkillMention, Weight: 0.5, Source: span},
				{Kind: model.EvidenceSkillMention, Weight: 0.9, Source: span},
			}
			out, dropped, err := collector.Collect(ctx, contribs)

			Convey("Then one entry should remain with the higher confidence", func() {
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 0)
				So(out, ShouldHaveLength, 1)
				So(out[0].Confidence, ShouldEqual, 0.9)
			})
		})

		Convey("When entries tie on type", func() {
			contribs := []model.Contribution{
				{Kind: model.EvidenceSkillMention, Weight: 0.5, Source: model.Span{DocumentID: "doc-1", Start: 24, End: 29}},
				{Kind: model.EvidenceSkillMention, Weight: 0.9, Source: model.Span{DocumentID: "doc-1", Start: 8, End: 23}},
				{Kind: model.EvidenceSkillMention, Weight: 0.5, Source: model.Span{DocumentID: "doc-1", Start: 0, End: 6}},
			}
			out, _, err := collector.Collect(ctx, contribs)

			Convey("Then confidence descending then start ascending should order them", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 3)
				So(out[0].Start, ShouldEqual, 8)
				So(out[1].Start, ShouldEqual, 0)
				So(out[2].Start, ShouldEqual, 24)
			})
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, _, err := collector.Collect(cancelled, []model.Contribution{
				{Kind: model.EvidenceSkillMention, Weight: 1, Source: model.Span{DocumentID: "doc-1", Start: 8, End: 23}},
			})

			Convey("Then collection should fail with the context error", func() {
				So(err, ShouldWrap, context.Canceled)
			})
		})

		Convey("When there are no contributions", func() {
			out, dropped, err := collector.Collect(ctx, nil)

			Convey("Then the result should be empty, not nil", func() {
				So(err, ShouldBeNil)
				So(dropped, ShouldEqual, 0)
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})
	})
}
