// Package evidence anchors scoring contributions to verbatim source spans.
//
// A contribution names a document span; the collector re-reads the document,
// validates the span, and quotes the exact text at [Start, End). Entries that
// cannot be anchored are dropped individually and counted, never invented.
package evidence

import (
	"context"
	"sort"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// DocumentSource resolves document ids to their stored content.
type DocumentSource interface {
	GetDocument(ctx context.Context, id string) (model.SourceDocument, error)
}

// Collector turns scoring contributions into anchored evidence entries.
type Collector struct {
	docs DocumentSource
}

// NewCollector creates a collector reading documents from docs.
func NewCollector(docs DocumentSource) *Collector {
	return &Collector{docs: docs}
}

// Collect anchors every contribution with a span to its document text and
// returns the entries sorted by type order, then confidence descending, then
// start offset. The second return value counts contributions that claimed a
// span but could not be anchored: unknown document or out-of-bounds offsets.
// Contributions without a span are neither anchored nor counted.
func (c *Collector) Collect(ctx context.Context, contribs []model.Contribution) ([]model.Evidence, int, error) {
	out := make([]model.Evidence, 0, len(contribs))
	dropped := 0

	// Each referenced document is fetched once; a failed fetch drops every
	// contribution pointing at it.
	docs := make(map[string]*model.SourceDocument)

	for _, contrib := range contribs {
		span := contrib.Source
		if span.IsZero() {
			continue
		}

		doc, ok := docs[span.DocumentID]
		if !ok {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
			d, err := c.docs.GetDocument(ctx, span.DocumentID)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, 0, ctxErr
				}
				docs[span.DocumentID] = nil
				dropped++
				continue
			}
			doc = &d
			docs[span.DocumentID] = doc
		}
		if doc == nil {
			dropped++
			continue
		}

		if span.Start < 0 || span.End <= span.Start || span.End > len(doc.Text) {
			dropped++
			continue
		}

		out = append(out, model.Evidence{
			Type:       contrib.Kind,
			Text:       doc.Text[span.Start:span.End],
			Confidence: clamp01(contrib.Weight),
			DocumentID: doc.ID,
			Start:      span.Start,
			End:        span.End,
			Page:       doc.PageFor(span.Start),
		})
	}

	out = dedupe(out)
	sort.SliceStable(out, func(i, j int) bool {
		if a, b := out[i].Type.Order(), out[j].Type.Order(); a != b {
			return a < b
		}
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Start < out[j].Start
	})
	return out, dropped, nil
}

// dedupe collapses entries quoting the same span for the same reason, keeping
// the highest confidence. Order of first appearance is preserved.
func dedupe(entries []model.Evidence) []model.Evidence {
	type key struct {
		t          model.EvidenceType
		doc        string
		start, end int
	}
	seen := make(map[key]int, len(entries))
	out := entries[:0]
	for _, e := range entries {
		k := key{t: e.Type, doc: e.DocumentID, start: e.Start, end: e.End}
		if i, ok := seen[k]; ok {
			if e.Confidence > out[i].Confidence {
				out[i].Confidence = e.Confidence
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, e)
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
