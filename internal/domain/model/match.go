package model

import "time"

// EvidenceType tags what kind of profile material an evidence entry quotes.
type EvidenceType string

// Evidence types in their presentation order.
const (
	EvidenceSkillMention      EvidenceType = "skill_mention"
	EvidenceProjectExperience EvidenceType = "project_experience"
	EvidenceEducation         EvidenceType = "education"
	EvidenceAchievement       EvidenceType = "achievement"
	EvidenceAvailability      EvidenceType = "availability"
)

// Order returns the sort position of the evidence type in a collected list.
// Unknown types sort last.
func (t EvidenceType) Order() int {
	switch t {
	case EvidenceSkillMention:
		return 0
	case EvidenceProjectExperience:
		return 1
	case EvidenceEducation:
		return 2
	case EvidenceAchievement:
		return 3
	case EvidenceAvailability:
		return 4
	default:
		return 5
	}
}

// Evidence is one verbatim, position-anchored quote from a source document
// justifying part of a match score. Text is always an exact substring of the
// source document at [Start, End).
type Evidence struct {
	Type       EvidenceType `json:"type"`
	Text       string       `json:"text"`
	Confidence float64      `json:"confidence"`
	DocumentID string       `json:"document_id"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Page       int          `json:"page"`
}

// Contribution is one positive scoring contributor, produced by a scoring
// strategy and consumed by the evidence collector. Weight is the contributor's
// share in its dimension, clamped to [0, 1] when it becomes a confidence.
type Contribution struct {
	Kind      EvidenceType
	Dimension string
	Label     string
	Weight    float64
	Source    Span
}

// Dimension names used in breakdowns and explanations.
const (
	DimensionSkills       = "skills"
	DimensionAvailability = "availability"
	DimensionAcademic     = "academic"
	DimensionExperience   = "experience"
)

// DimensionScores holds the four factor scores, each in [0, 100].
type DimensionScores struct {
	Skills       float64 `json:"skills"`
	Availability float64 `json:"availability"`
	Academic     float64 `json:"academic"`
	Experience   float64 `json:"experience"`
}

// MatchResult is the complete, immutable outcome of scoring one candidate
// against one project. The four version/id fields identify exactly which
// inputs produced it; the same inputs always reproduce the same result.
type MatchResult struct {
	CandidateID       string          `json:"candidate_id"`
	CandidateVersion  int64           `json:"candidate_version"`
	ProjectID         string          `json:"project_id"`
	ProjectVersion    int64           `json:"project_version"`
	Overall           int             `json:"overall"`
	Dimensions        DimensionScores `json:"dimensions"`
	Gated             bool            `json:"gated,omitempty"`
	MissingSkills     []string        `json:"missing_skills"`
	UnmatchedMentions []string        `json:"unmatched_mentions,omitempty"`
	Evidence          []Evidence      `json:"evidence"`
	EvidenceDropped   int             `json:"evidence_dropped,omitempty"`
	Strategy          string          `json:"strategy"`
	ComputedAt        time.Time       `json:"computed_at"`
}

// DimensionExplanation spells out one factor of an explained match.
// Points is the factor's weighted contribution to the overall score.
type DimensionExplanation struct {
	Name     string     `json:"name"`
	Score    float64    `json:"score"`
	Weight   float64    `json:"weight"`
	Points   float64    `json:"points"`
	Evidence []Evidence `json:"evidence,omitempty"`
}

// Explanation is the human-consumable breakdown of one match result.
type Explanation struct {
	CandidateID       string                 `json:"candidate_id"`
	ProjectID         string                 `json:"project_id"`
	Overall           int                    `json:"overall"`
	Gated             bool                   `json:"gated,omitempty"`
	Dimensions        []DimensionExplanation `json:"dimensions"`
	MissingSkills     []string               `json:"missing_skills"`
	UnmatchedMentions []string               `json:"unmatched_mentions,omitempty"`
	ComputedAt        time.Time              `json:"computed_at"`
}

// EvidenceDimension maps an evidence type to the scoring dimension it
// substantiates.
func EvidenceDimension(t EvidenceType) string {
	switch t {
	case EvidenceSkillMention:
		return DimensionSkills
	case EvidenceProjectExperience, EvidenceAchievement:
		return DimensionExperience
	case EvidenceEducation:
		return DimensionAcademic
	case EvidenceAvailability:
		return DimensionAvailability
	default:
		return ""
	}
}
