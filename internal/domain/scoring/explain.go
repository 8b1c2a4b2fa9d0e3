package scoring

import (
	"math"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// Explain expands a computed match into its per-dimension weighted points,
// with each evidence entry grouped under the dimension it substantiates.
// It derives everything from the result; no rescoring happens.
func Explain(res model.MatchResult, w Weights) model.Explanation {
	byDimension := make(map[string][]model.Evidence, 4)
	for _, ev := range res.Evidence {
		d := model.EvidenceDimension(ev.Type)
		byDimension[d] = append(byDimension[d], ev)
	}

	dims := []model.DimensionExplanation{
		{Name: model.DimensionSkills, Score: res.Dimensions.Skills, Weight: w.Skills},
		{Name: model.DimensionAvailability, Score: res.Dimensions.Availability, Weight: w.Availability},
		{Name: model.DimensionAcademic, Score: res.Dimensions.Academic, Weight: w.Academic},
		{Name: model.DimensionExperience, Score: res.Dimensions.Experience, Weight: w.Experience},
	}
	for i := range dims {
		dims[i].Points = math.Round(dims[i].Score*dims[i].Weight*100) / 100
		dims[i].Evidence = byDimension[dims[i].Name]
	}

	return model.Explanation{
		CandidateID:       res.CandidateID,
		ProjectID:         res.ProjectID,
		Overall:           res.Overall,
		Gated:             res.Gated,
		Dimensions:        dims,
		MissingSkills:     res.MissingSkills,
		UnmatchedMentions: res.UnmatchedMentions,
		ComputedAt:        res.ComputedAt,
	}
}
