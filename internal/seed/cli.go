package seed

import (
	"fmt"
	"os"

	"github.com/eventease/insights/pkg/logger"
)

// SetupLogging initializes the shared logger for the seed tool.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Insights Seed Tool
==================

Generates synthetic events, participants, and preferences, submits them to a
running insights service, and verifies the recommendation output.

Usage:
  go run cmd/seed/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -events int
        Number of events to generate and submit (default 200)
  -users int
        Number of synthetic users (default 25)
  -participants int
        Registrations per user (default 5)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed/main.go

  # Seed a larger data set against a custom address
  go run cmd/seed/main.go -events 1000 -users 100 -url http://localhost:8080
`)
}
