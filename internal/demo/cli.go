package demo

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gradmatch/gradmatch/pkg/logger"
)

// logFilePermission is the file mode for demo log files.
const logFilePermission = 0o600

// SetupLogging initializes the structured logger and, when logFile is
// non-empty, tees the human-readable demo output to that file as well as
// stdout.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if logFile == "" {
		return nil
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the demo tool.
func ShowHelp() {
	os.Stdout.WriteString(`GradMatch Demo Tool
===================

Generates a deterministic candidate pool, ranks it against a set of sample
projects, and verifies ordering, score identity, evidence fidelity, and cache
idempotence against a live in-process matching service.

Usage:
  go run cmd/demo/main.go [options]

Options:
  -pool int
        Number of candidates to generate (default 24)
  -projects int
        Number of projects to generate (default 6)
  -seed int
        Random seed; the same seed reproduces the same pool (default 42)
  -top int
        Number of top matches to display per project (default 10)
  -log string
        Also write demo output to this file (default: stdout only)
  -verbose
        Show per-match evidence lines
  -help
        Show this help

Examples:
  # Run the default demo
  go run cmd/demo/main.go

  # A bigger pool with full evidence output
  go run cmd/demo/main.go -pool 100 -projects 8 -verbose

  # Reproduce a specific run
  go run cmd/demo/main.go -seed 7
`)
}
