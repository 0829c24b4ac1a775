package seed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/eventease/insights/pkg/logger"
)

// processingDelay gives the async ingestion pipeline time to drain before
// read endpoints are exercised.
const processingDelay = 2 * time.Second

// Run executes the complete seed-and-verify flow.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting insights seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("events", config.NumEvents),
		logger.Int("users", config.NumUsers),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate synthetic users, events, participants, preferences
	users := generateUsers(config.NumUsers)
	events := generateEvents(ctx, config, users, stats)
	participants := generateParticipants(config, users, events)
	preferences := generatePreferences(users)

	// Step 3: Submit events concurrently
	bodies := make([]interface{}, len(events))
	for i, e := range events {
		bodies[i] = e
	}
	succ, dup, fail := submitRecords(ctx, config, config.BaseURL+"/events", bodies)
	stats.EventsSubmitted = len(bodies)
	stats.EventsSuccessful = succ
	stats.EventsDuplicate = dup
	stats.EventsFailed = fail

	// Step 4: Submit participants concurrently
	bodies = make([]interface{}, len(participants))
	for i, p := range participants {
		bodies[i] = p
	}
	succ, _, fail = submitRecords(ctx, config, config.BaseURL+"/participants", bodies)
	stats.ParticipantsSubmitted = succ
	if fail > 0 {
		logger.Get().Warn(ctx, "some participant submissions failed", logger.Int("failed", fail))
	}

	// Step 5: Store preferences synchronously
	if err := storePreferences(ctx, config, preferences, stats); err != nil {
		return fmt.Errorf("preference storage failed: %w", err)
	}

	// Step 6: Wait for the ingestion pipeline to drain
	logger.Get().Info(ctx, "waiting for records to be processed")
	time.Sleep(processingDelay)

	// Step 7: Fetch and verify recommendations for each user
	if err := verifyRecommendations(ctx, config, users, stats); err != nil {
		return fmt.Errorf("recommendation verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// storePreferences issues PUT /preferences/{user_id} for each user.
func storePreferences(ctx context.Context, config *Config, preferences map[string]Preferences, stats *Stats) error {
	client := newHTTPClient(config.Timeout)

	for userID, prefs := range preferences {
		resp, err := client.Send(ctx, http.MethodPut, config.BaseURL+"/preferences/"+userID, prefs)
		if err != nil {
			return fmt.Errorf("failed to store preferences for %s: %w", userID, err)
		}
		if _, err := readResponseBody(resp); err != nil {
			return fmt.Errorf("failed to read preferences response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("preferences for %s rejected with status %d", userID, resp.StatusCode)
		}
		stats.PreferencesStored++
	}
	return nil
}

// displayFinalStats prints the final seed statistics.
func displayFinalStats(stats *Stats) {
	var successRate, recordsPerSecond float64

	if stats.EventsSubmitted > 0 {
		successRate = float64(stats.EventsSuccessful) / float64(stats.EventsSubmitted) * 100
	}

	if stats.Duration > 0 {
		recordsPerSecond = float64(stats.EventsSubmitted+stats.ParticipantsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsDuplicate", stats.EventsDuplicate),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("participantsSubmitted", stats.ParticipantsSubmitted),
		logger.Int("preferencesStored", stats.PreferencesStored),
		logger.Int("usersVerified", stats.UsersVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("recordsPerSecond", recordsPerSecond))
}
