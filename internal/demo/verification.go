package demo

import (
	"context"
	"fmt"
	"math"

	service "github.com/gradmatch/gradmatch/internal/app"
	"github.com/gradmatch/gradmatch/internal/domain/ranking"
)

// identityTolerance absorbs rounding when reassembling an overall score from
// its weighted dimension points.
const identityTolerance = 0.5 + 1e-6

// verifyRanking checks the ordering and accounting invariants of one run:
// results sorted by overall descending, nothing below the threshold, and the
// report's counts covering the whole pool.
func verifyRanking(matches []ranking.Match, report ranking.Report, minOverall int) error {
	if report.Returned != len(matches) {
		return fmt.Errorf("report claims %d returned, got %d matches", report.Returned, len(matches))
	}
	for i, m := range matches {
		if m.Result.Overall < minOverall {
			return fmt.Errorf("match %s scored %d, below threshold %d", m.Candidate.ID, m.Result.Overall, minOverall)
		}
		if i > 0 && matches[i-1].Result.Overall < m.Result.Overall {
			return fmt.Errorf("matches out of order at %d: %d before %d", i, matches[i-1].Result.Overall, m.Result.Overall)
		}
	}
	if scored := report.CacheHits + report.Computed + report.Failed; scored != report.PoolSize {
		return fmt.Errorf("scoring accounts for %d of %d candidates", scored, report.PoolSize)
	}
	if eligible := report.PoolSize - report.Failed - report.Excluded; report.Returned > eligible {
		return fmt.Errorf("returned %d exceeds eligible %d", report.Returned, eligible)
	}
	return nil
}

// verifyExplanations recomputes every returned match through the explain
// path and checks that the weighted dimension points reassemble the overall.
// Gated results are reported differently and are skipped.
func verifyExplanations(ctx context.Context, svc *service.Service, projectID string, matches []ranking.Match) error {
	for _, m := range matches {
		result, explanation, _, err := svc.ExplainMatch(ctx, projectID, m.Candidate.ID)
		if err != nil {
			return fmt.Errorf("explain %s: %w", m.Candidate.ID, err)
		}
		if result.Overall != m.Result.Overall {
			return fmt.Errorf("explain %s: overall %d disagrees with ranked %d", m.Candidate.ID, result.Overall, m.Result.Overall)
		}
		if result.Gated {
			continue
		}

		var points float64
		for _, dim := range explanation.Dimensions {
			points += dim.Points
		}
		if math.Abs(points-float64(result.Overall)) > identityTolerance {
			return fmt.Errorf("explain %s: weighted points %.3f do not reassemble overall %d", m.Candidate.ID, points, result.Overall)
		}
	}
	return nil
}

// verifyEvidence checks that every evidence entry quotes its source document
// exactly at the recorded offsets.
func verifyEvidence(ds Dataset, matches []ranking.Match) error {
	for _, m := range matches {
		for _, ev := range m.Result.Evidence {
			doc, ok := ds.Document(ev.DocumentID)
			if !ok {
				return fmt.Errorf("evidence for %s cites unknown document %s", m.Candidate.ID, ev.DocumentID)
			}
			if ev.Start < 0 || ev.End > len(doc.Text) || ev.Start >= ev.End {
				return fmt.Errorf("evidence for %s has bad offsets [%d, %d) in %s", m.Candidate.ID, ev.Start, ev.End, ev.DocumentID)
			}
			if quoted := doc.Text[ev.Start:ev.End]; ev.Text != quoted {
				return fmt.Errorf("evidence for %s drifted: %q is not %q", m.Candidate.ID, ev.Text, quoted)
			}
			if ev.Confidence <= 0 || ev.Confidence > 1 {
				return fmt.Errorf("evidence for %s has confidence %.3f outside (0, 1]", m.Candidate.ID, ev.Confidence)
			}
		}
	}
	return nil
}

// verifySecondPass checks cache idempotence: an unchanged pool re-ranks to
// the identical result without recomputing anything.
func verifySecondPass(first, second []ranking.Match, report ranking.Report) error {
	if report.Computed != 0 {
		return fmt.Errorf("second pass recomputed %d pairs", report.Computed)
	}
	if report.CacheHits != report.PoolSize {
		return fmt.Errorf("second pass hit %d of %d cached pairs", report.CacheHits, report.PoolSize)
	}
	if len(first) != len(second) {
		return fmt.Errorf("second pass returned %d matches, first returned %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Candidate.ID != second[i].Candidate.ID {
			return fmt.Errorf("second pass reordered rank %d: %s became %s", i+1, first[i].Candidate.ID, second[i].Candidate.ID)
		}
		if first[i].Result.Overall != second[i].Result.Overall {
			return fmt.Errorf("second pass rescored %s: %d became %d", first[i].Candidate.ID, first[i].Result.Overall, second[i].Result.Overall)
		}
	}
	return nil
}
