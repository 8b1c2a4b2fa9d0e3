// Package scoring turns a (project, candidate) pair into a match result.
//
// A Strategy produces the four raw dimension scores plus the contributions
// that later anchor evidence; the Engine weights them into the overall score.
// Scoring is deterministic: the same project and candidate versions always
// produce the same result, which is what makes match results cacheable.
package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gradmatch/gradmatch/internal/domain/model"
)

// Default scoring configuration constants.
const (
	DefaultSkillsWeight       = 0.40
	DefaultAvailabilityWeight = 0.25
	DefaultAcademicWeight     = 0.20
	DefaultExperienceWeight   = 0.15

	// defaultZeroCoverageGate scales the weighted sum down when a candidate
	// covers none of the required skills, keeping otherwise strong profiles
	// below the inclusion threshold.
	defaultZeroCoverageGate = 0.4

	// weightSumTolerance absorbs float drift when checking weights sum to 1.
	weightSumTolerance = 1e-9

	maxScoreValue = 100
)

// Option applies a configuration option to the Engine.
type Option func(*engineSettings)

// WithStrategy sets the assessment strategy. The default is the rule
// strategy over the builtin taxonomy.
func WithStrategy(strategy Strategy) Option {
	return func(s *engineSettings) {
		s.strategy = strategy
	}
}

// WithWeights replaces the default dimension weights.
func WithWeights(w Weights) Option {
	return func(s *engineSettings) {
		s.weights = w
	}
}

// WithZeroCoverageGate sets the factor applied to the weighted sum when the
// candidate matches no required skill. 1.0 disables the gate.
func WithZeroCoverageGate(gate float64) Option {
	return func(s *engineSettings) {
		s.gate = gate
	}
}

// WithClock overrides the time source stamped into results.
func WithClock(now func() time.Time) Option {
	return func(s *engineSettings) {
		if now != nil {
			s.now = now
		}
	}
}

type engineSettings struct {
	strategy Strategy
	weights  Weights
	gate     float64
	now      func() time.Time
}

// Weights is the relative importance of each scoring dimension.
type Weights struct {
	Skills       float64 `koanf:"skills" json:"skills"`
	Availability float64 `koanf:"availability" json:"availability"`
	Academic     float64 `koanf:"academic" json:"academic"`
	Experience   float64 `koanf:"experience" json:"experience"`
}

// DefaultWeights returns the standard dimension weights.
func DefaultWeights() Weights {
	return Weights{
		Skills:       DefaultSkillsWeight,
		Availability: DefaultAvailabilityWeight,
		Academic:     DefaultAcademicWeight,
		Experience:   DefaultExperienceWeight,
	}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Availability + w.Academic + w.Experience
}

// Validate checks that every weight is nonnegative and the set sums to 1.0.
func (w Weights) Validate() error {
	if w.Skills < 0 || w.Availability < 0 || w.Academic < 0 || w.Experience < 0 {
		return fmt.Errorf("%w: negative weight", ErrInvalidWeights)
	}
	if math.Abs(w.Sum()-1) > weightSumTolerance {
		return fmt.Errorf("%w: sum %v, want 1.0", ErrInvalidWeights, w.Sum())
	}
	return nil
}

// Breakdown is a strategy's raw assessment of one candidate against one
// project, before weighting. MatchedSkills counts the required skills the
// candidate covered; zero coverage triggers the engine's gate.
type Breakdown struct {
	Dimensions        model.DimensionScores
	MatchedSkills     int
	MissingSkills     []string
	UnmatchedMentions []string
	Contributions     []model.Contribution
}

// Strategy assesses a candidate against a project's requirements.
type Strategy interface {
	// Name identifies the strategy in match results.
	Name() string
	// Assess produces raw dimension scores and scoring contributions,
	// honoring ctx for cancellation.
	Assess(ctx context.Context, project model.ProjectRequirement, candidate model.CandidateProfile) (Breakdown, error)
}

// Engine weights a strategy's raw assessment into an overall match score.
type Engine struct {
	strategy Strategy
	weights  Weights
	gate     float64
	now      func() time.Time
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) (*Engine, error) {
	s := engineSettings{
		weights: DefaultWeights(),
		gate:    defaultZeroCoverageGate,
		now:     time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(&s)
	}

	if s.strategy == nil {
		s.strategy = NewRuleStrategy()
	}
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	if s.gate < 0 || s.gate > 1 {
		return nil, fmt.Errorf("%w: %v outside [0, 1]", ErrInvalidGate, s.gate)
	}

	return &Engine{
		strategy: s.strategy,
		weights:  s.weights,
		gate:     s.gate,
		now:      s.now,
	}, nil
}

// Weights returns the engine's dimension weights.
func (e *Engine) Weights() Weights { return e.weights }

// Score computes the match result for one candidate against one project. It
// also returns the strategy's contributions so the evidence collector can
// anchor them to the candidate's source document; the result itself carries
// no evidence yet.
func (e *Engine) Score(ctx context.Context, project model.ProjectRequirement, candidate model.CandidateProfile) (model.MatchResult, []model.Contribution, error) {
	select {
	case <-ctx.Done():
		return model.MatchResult{}, nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	b, err := e.strategy.Assess(ctx, project, candidate)
	if err != nil {
		return model.MatchResult{}, nil, fmt.Errorf("%s strategy: %w", e.strategy.Name(), err)
	}

	d := b.Dimensions
	weighted := d.Skills*e.weights.Skills +
		d.Availability*e.weights.Availability +
		d.Academic*e.weights.Academic +
		d.Experience*e.weights.Experience

	gated := len(project.RequiredSkills) > 0 && b.MatchedSkills == 0
	if gated {
		weighted *= e.gate
	}

	overall := int(math.Round(math.Max(0, math.Min(maxScoreValue, weighted))))

	missing := b.MissingSkills
	if missing == nil {
		missing = []string{}
	}

	return model.MatchResult{
		CandidateID:       candidate.ID,
		CandidateVersion:  candidate.Version,
		ProjectID:         project.ID,
		ProjectVersion:    project.Version,
		Overall:           overall,
		Dimensions:        d,
		Gated:             gated,
		MissingSkills:     missing,
		UnmatchedMentions: b.UnmatchedMentions,
		Strategy:          e.strategy.Name(),
		ComputedAt:        e.now().UTC(),
	}, b.Contributions, nil
}
