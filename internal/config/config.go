// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// IngestQueueSize bounds the in-memory ingestion queue.
	IngestQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the record store.
	ShardCount int `koanf:"shard_count"`

	// MaxRecommendations caps GET /recommendations?limit.
	MaxRecommendations int `koanf:"max_recommendations"`

	// DefaultRecommendations is the recommendation count when no limit is given.
	DefaultRecommendations int `koanf:"default_recommendations"`

	// ScheduleStartTime is the default first-activity clock time, "HH:MM".
	ScheduleStartTime string `koanf:"schedule_start_time"`

	// ScheduleLunchStart is the clock time lunch begins for full-day events.
	ScheduleLunchStart string `koanf:"schedule_lunch_start"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:               "info",
		Addr:                   ":9080",
		IngestQueueSize:        100_000,
		WorkerCount:            runtime.NumCPU() * 2,
		DedupeSize:             50_000,
		ShardCount:             8,
		MaxRecommendations:     20,
		DefaultRecommendations: 5,
		ScheduleStartTime:      "09:00",
		ScheduleLunchStart:     "12:30",
	}
	return c
}
