package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// weightSumTolerance absorbs float drift when checking weights sum to 1.
const weightSumTolerance = 1e-9

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if GRADMATCH_CONFIG is set
//  3. env (prefix GRADMATCH_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GRADMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GRADMATCH_ADDR, GRADMATCH_CACHE_CAPACITY, ...
	// Map env keys like GRADMATCH_CACHE_CAPACITY -> cache_capacity (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GRADMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gradmatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that would break the service rather than just
// degrade it. Sizing fields are left to their consumers, which clamp.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.ScoringStrategy != StrategyRules && c.ScoringStrategy != StrategyGemini {
		return fmt.Errorf("%w: unknown scoring_strategy %q", ErrInvalidConfig, c.ScoringStrategy)
	}
	if c.SkillsWeight < 0 || c.AvailabilityWeight < 0 || c.AcademicWeight < 0 || c.ExperienceWeight < 0 {
		return fmt.Errorf("%w: negative dimension weight", ErrInvalidConfig)
	}
	sum := c.SkillsWeight + c.AvailabilityWeight + c.AcademicWeight + c.ExperienceWeight
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: dimension weights sum to %v, want 1.0", ErrInvalidConfig, sum)
	}
	if c.ZeroCoverageGate < 0 || c.ZeroCoverageGate > 1 {
		return fmt.Errorf("%w: zero_coverage_gate %v outside [0, 1]", ErrInvalidConfig, c.ZeroCoverageGate)
	}
	if c.MinOverallScore < 0 || c.MinOverallScore > 100 {
		return fmt.Errorf("%w: min_overall_score %d outside [0, 100]", ErrInvalidConfig, c.MinOverallScore)
	}
	return nil
}
