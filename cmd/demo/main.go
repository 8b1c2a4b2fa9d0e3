package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/gradmatch/gradmatch/internal/demo"
)

// Default configuration constants.
const (
	defaultPoolSize     = 24
	defaultProjectCount = 6
	defaultSeed         = 42
	defaultTopN         = 10
	defaultDemoTimeout  = 5 * time.Minute
)

func main() {
	var (
		poolSize     = flag.Int("pool", defaultPoolSize, "Number of candidates to generate")
		projectCount = flag.Int("projects", defaultProjectCount, "Number of projects to generate")
		seed         = flag.Int64("seed", defaultSeed, "Random seed; the same seed reproduces the same pool")
		topN         = flag.Int("top", defaultTopN, "Number of top matches to display per project")
		logFile      = flag.String("log", "", "Also write demo output to this file (default: stdout only)")
		verbose      = flag.Bool("verbose", false, "Show per-match evidence lines")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		demo.ShowHelp()
		return
	}

	// Setup logging
	if err := demo.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultDemoTimeout)
	defer cancel()

	// Create demo configuration
	config := &demo.Config{
		PoolSize:     *poolSize,
		ProjectCount: *projectCount,
		Seed:         *seed,
		TopN:         *topN,
		Verbose:      *verbose,
	}

	// Run the demo
	if err := demo.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Demo failed: " + err.Error() + "\n")
		return
	}
}
