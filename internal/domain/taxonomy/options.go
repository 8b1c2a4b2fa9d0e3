package taxonomy

// settings collects constructor inputs before the indexes are derived.
type settings struct {
	skills    []Skill
	extra     []Skill
	threshold float64
}

// Option applies a configuration option when building a Taxonomy.
type Option func(*settings)

// WithSkills replaces the builtin skill set entirely.
func WithSkills(skills []Skill) Option {
	return func(s *settings) {
		s.skills = skills
	}
}

// WithAdditionalSkills appends skills on top of the builtin set.
func WithAdditionalSkills(skills ...Skill) Option {
	return func(s *settings) {
		s.extra = append(s.extra, skills...)
	}
}

// WithFuzzyThreshold sets the minimum similarity for the fuzzy tier.
// New rejects values outside (0, 1].
func WithFuzzyThreshold(threshold float64) Option {
	return func(s *settings) {
		s.threshold = threshold
	}
}
