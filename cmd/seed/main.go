package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/eventease/insights/internal/seed"
)

// Default configuration constants.
const (
	defaultNumEvents    = 200
	defaultNumUsers     = 25
	defaultParticipants = 5
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultRunTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEvents    = flag.Int("events", defaultNumEvents, "Number of events to generate and submit")
		numUsers     = flag.Int("users", defaultNumUsers, "Number of synthetic users")
		participants = flag.Int("participants", defaultParticipants, "Registrations per user")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	// Setup logging
	if err := seed.SetupLogging(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create seed configuration
	config := &seed.Config{
		BaseURL:      *baseURL,
		NumEvents:    *numEvents,
		NumUsers:     *numUsers,
		Participants: *participants,
		Workers:      *workers,
		Timeout:      *timeout,
		Verbose:      *verbose,
	}

	// Run the seed flow
	if err := seed.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		return
	}
}
