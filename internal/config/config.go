// Package config defines service configuration and its loading order:
// struct defaults, then an optional YAML file named by GRADMATCH_CONFIG,
// then GRADMATCH_-prefixed environment variables.
//
// Conventions:
// - Every scoring constant an operator may want to tune is a named field.
// - Validation failures wrap this package's sentinel errors.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WarmQueueSize bounds the in-memory cache-warming job queue.
	WarmQueueSize int `koanf:"warm_queue_size"`

	// WarmWorkerCount sets the number of cache-warming workers.
	WarmWorkerCount int `koanf:"warm_worker_count"`

	// CacheCapacity bounds the match result cache (LRU entries).
	CacheCapacity int `koanf:"cache_capacity"`

	// MaxParallelScoring caps concurrent scoring goroutines per ranking run.
	MaxParallelScoring int `koanf:"max_parallel_scoring"`

	// MinOverallScore is the inclusion threshold for ranked matches, 0-100.
	MinOverallScore int `koanf:"min_overall_score"`

	// MaxMatchLimit caps GET /projects/{id}/matches?limit.
	MaxMatchLimit int `koanf:"max_match_limit"`

	// ScoringStrategy selects the assessment backend: rules or gemini.
	ScoringStrategy string `koanf:"scoring_strategy"`

	// Dimension weights; must be nonnegative and sum to 1.0.
	SkillsWeight       float64 `koanf:"skills_weight"`
	AvailabilityWeight float64 `koanf:"availability_weight"`
	AcademicWeight     float64 `koanf:"academic_weight"`
	ExperienceWeight   float64 `koanf:"experience_weight"`

	// ZeroCoverageGate scales the weighted sum for candidates matching no
	// required skill; 1.0 disables the gate.
	ZeroCoverageGate float64 `koanf:"zero_coverage_gate"`

	// PreferredBonus is the maximum skills-score bonus for preferred-skill
	// coverage.
	PreferredBonus float64 `koanf:"preferred_bonus"`

	// AvailabilityHorizonDays prorates delayed start dates; a start this far
	// out scores zero.
	AvailabilityHorizonDays int `koanf:"availability_horizon_days"`

	// TaxonomyFile optionally overrides the compiled-in skill vocabulary
	// with a YAML file.
	TaxonomyFile string `koanf:"taxonomy_file"`

	// GeminiAPIKey and GeminiModel configure the gemini strategy. The model
	// falls back to the client's default when empty.
	GeminiAPIKey string `koanf:"gemini_api_key"`
	GeminiModel  string `koanf:"gemini_model"`

	// DemoPoolSize seeds the stores with generated candidates at startup;
	// zero starts the service empty.
	DemoPoolSize int `koanf:"demo_pool_size"`

	// DemoProjectCount sets how many projects the seed generates.
	DemoProjectCount int `koanf:"demo_project_count"`

	// DemoSeed makes the generated pool reproducible.
	DemoSeed int64 `koanf:"demo_seed"`
}

// StrategyRules and StrategyGemini are the accepted ScoringStrategy values.
const (
	StrategyRules  = "rules"
	StrategyGemini = "gemini"
)

// New creates a Config with defaults.
func New() *Config {
	c := &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		WarmQueueSize:           8192,
		WarmWorkerCount:         runtime.NumCPU() * 2,
		CacheCapacity:           4096,
		MaxParallelScoring:      8,
		MinOverallScore:         30,
		MaxMatchLimit:           100,
		ScoringStrategy:         StrategyRules,
		SkillsWeight:            0.40,
		AvailabilityWeight:      0.25,
		AcademicWeight:          0.20,
		ExperienceWeight:        0.15,
		ZeroCoverageGate:        0.4,
		PreferredBonus:          20,
		AvailabilityHorizonDays: 90,
		DemoPoolSize:            24,
		DemoProjectCount:        6,
		DemoSeed:                42,
	}
	return c
}
