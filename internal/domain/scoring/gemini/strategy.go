package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gradmatch/gradmatch/internal/domain/model"
	"github.com/gradmatch/gradmatch/internal/domain/scoring"
)

// Generator produces text from a prompt. *Client satisfies it; tests swap in
// a fake.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Strategy implements scoring.Strategy by asking a Gemini model for the four
// dimension scores. Results are as deterministic as the model is; callers
// who need reproducibility use the rule strategy.
type Strategy struct {
	gen Generator
}

// NewStrategy creates a gemini-backed scoring strategy.
func NewStrategy(gen Generator) (*Strategy, error) {
	if gen == nil {
		return nil, ErrNotInitialized
	}
	return &Strategy{gen: gen}, nil
}

// Name identifies the strategy in match results.
func (s *Strategy) Name() string { return "gemini" }

// assessment is the JSON shape the prompt instructs the model to return.
type assessment struct {
	Skills            float64  `json:"skills"`
	Availability      float64  `json:"availability"`
	Academic          float64  `json:"academic"`
	Experience        float64  `json:"experience"`
	MissingSkills     []string `json:"missing_skills"`
	UnmatchedMentions []string `json:"unmatched_mentions"`
}

// Assess prompts the model with the project and candidate and parses its
// strict-JSON reply into a breakdown. No contributions are produced.
func (s *Strategy) Assess(ctx context.Context, project model.ProjectRequirement, candidate model.CandidateProfile) (scoring.Breakdown, error) {
	prompt, err := buildPrompt(project, candidate)
	if err != nil {
		return scoring.Breakdown{}, fmt.Errorf("build prompt: %w", err)
	}

	out, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		return scoring.Breakdown{}, err
	}

	raw, ok := extractJSON(out)
	if !ok {
		return scoring.Breakdown{}, fmt.Errorf("%w: no json object in output", ErrBadResponse)
	}
	var a assessment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return scoring.Breakdown{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	missing := a.MissingSkills
	if missing == nil {
		missing = []string{}
	}
	matched := len(project.RequiredSkills) - len(missing)
	if matched < 0 {
		matched = 0
	}

	return scoring.Breakdown{
		Dimensions: model.DimensionScores{
			Skills:       clampScore(a.Skills),
			Availability: clampScore(a.Availability),
			Academic:     clampScore(a.Academic),
			Experience:   clampScore(a.Experience),
		},
		MatchedSkills:     matched,
		MissingSkills:     missing,
		UnmatchedMentions: a.UnmatchedMentions,
	}, nil
}

// promptProject is the trimmed project view sent to the model.
type promptProject struct {
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	Type              string   `json:"type"`
	Duration          string   `json:"duration"`
	WorkMode          string   `json:"work_mode"`
	RequiredSkills    []string `json:"required_skills"`
	PreferredSkills   []string `json:"preferred_skills,omitempty"`
	PreferredPrograms []string `json:"preferred_programs,omitempty"`
	MinYear           string   `json:"min_year,omitempty"`
	MaxYear           string   `json:"max_year,omitempty"`
}

// promptCandidate is the trimmed candidate view sent to the model.
type promptCandidate struct {
	AcademicYear string             `json:"academic_year"`
	Program      string             `json:"program,omitempty"`
	Skills       []promptSkill      `json:"skills"`
	Experience   []promptEngagement `json:"experience,omitempty"`
	Achievements []promptEngagement `json:"achievements,omitempty"`
	Availability promptAvailability `json:"availability"`
}

type promptSkill struct {
	Text        string `json:"text"`
	Proficiency string `json:"proficiency,omitempty"`
}

type promptEngagement struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type promptAvailability struct {
	Status           string `json:"status"`
	RemotePreference string `json:"remote_preference,omitempty"`
	AvailableFrom    string `json:"available_from,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

const promptInstructions = `You assess how well a candidate fits a project.
Score four dimensions from 0 to 100:
- skills: coverage of required_skills, scaled by claimed proficiency
- availability: 100 if the candidate can start now in a compatible work mode, lower for delays or limits, 0 if incompatible
- academic: fit against the min_year/max_year band, 100 when unconstrained
- experience: relevant prior engagements, 100 at three or more
Reply with exactly one JSON object and nothing else:
{"skills":N,"availability":N,"academic":N,"experience":N,"missing_skills":[required skills the candidate lacks, verbatim],"unmatched_mentions":[candidate skill claims you could not place]}`

func buildPrompt(project model.ProjectRequirement, candidate model.CandidateProfile) (string, error) {
	p := promptProject{
		Title:             project.Title,
		Description:       project.Description,
		Type:              string(project.Type),
		Duration:          string(project.Duration),
		WorkMode:          string(project.WorkMode),
		RequiredSkills:    project.RequiredSkills,
		PreferredSkills:   project.PreferredSkills,
		PreferredPrograms: project.PreferredPrograms,
	}
	if project.MinYear != model.YearUnknown {
		p.MinYear = project.MinYear.String()
	}
	if project.MaxYear != model.YearUnknown {
		p.MaxYear = project.MaxYear.String()
	}

	c := promptCandidate{
		AcademicYear: candidate.AcademicYear.String(),
		Program:      candidate.Program,
		Availability: promptAvailability{
			Status:           string(candidate.Availability.Status),
			RemotePreference: string(candidate.Availability.RemotePreference),
			Notes:            candidate.Availability.Notes,
		},
	}
	if !candidate.Availability.AvailableFrom.IsZero() {
		c.Availability.AvailableFrom = candidate.Availability.AvailableFrom.Format("2006-01-02")
	}
	for _, sk := range candidate.Skills {
		c.Skills = append(c.Skills, promptSkill{Text: sk.RawText, Proficiency: string(sk.Proficiency)})
	}
	for _, e := range candidate.Experience {
		c.Experience = append(c.Experience, promptEngagement{Title: e.Title, Description: e.Description})
	}
	for _, a := range candidate.Achievements {
		c.Achievements = append(c.Achievements, promptEngagement{Title: a.Title, Description: a.Description})
	}

	projectJSON, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	candidateJSON, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(promptInstructions)
	b.WriteString("\n\nPROJECT:\n")
	b.Write(projectJSON)
	b.WriteString("\n\nCANDIDATE:\n")
	b.Write(candidateJSON)
	return b.String(), nil
}

// extractJSON returns the outermost {...} span of the output, tolerating
// code fences and prose around it.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
