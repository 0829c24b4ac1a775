package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/eventease/insights/pkg/logger"
)

// verifyRecommendations fetches recommendations for every user and checks
// structural invariants of the response.
func verifyRecommendations(ctx context.Context, config *Config, users []string, stats *Stats) error {
	logger.Get().Info(ctx, "verifying recommendations", logger.Int("users", len(users)))

	client := newHTTPClient(config.Timeout)

	for _, userID := range users {
		resp, err := client.Get(ctx, config.BaseURL+"/recommendations/"+userID)
		if err != nil {
			return fmt.Errorf("failed to fetch recommendations for %s: %w", userID, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return fmt.Errorf("failed to read recommendations for %s: %w", userID, err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("recommendations for %s failed with status %d", userID, resp.StatusCode)
		}

		var set RecommendationSet
		if err := json.Unmarshal(body, &set); err != nil {
			return fmt.Errorf("failed to parse recommendations for %s: %w", userID, err)
		}
		if err := checkSet(set); err != nil {
			return fmt.Errorf("invalid recommendation set for %s: %w", userID, err)
		}

		stats.UsersVerified++
		if config.Verbose {
			logger.Get().Info(ctx, "recommendations verified",
				logger.String("userID", userID),
				logger.Int("count", len(set.Recommendations)),
				logger.String("insights", set.Insights),
			)
		}
	}

	logger.Get().Info(ctx, "recommendation verification completed", logger.Int("verified", stats.UsersVerified))
	return nil
}

// checkSet validates ordering, bounds, and required narrative fields.
func checkSet(set RecommendationSet) error {
	if set.Insights == "" {
		return fmt.Errorf("missing insights narrative")
	}
	for i, rec := range set.Recommendations {
		if rec.EventID == "" {
			return fmt.Errorf("recommendation %d has no event id", i)
		}
		if rec.Reason == "" {
			return fmt.Errorf("recommendation %d has no reason", i)
		}
		if rec.Score < 0 || rec.Score > 100 {
			return fmt.Errorf("recommendation %d score %.1f out of range", i, rec.Score)
		}
		if rec.Confidence < 1 || rec.Confidence > 10 {
			return fmt.Errorf("recommendation %d confidence %d out of range", i, rec.Confidence)
		}
		if i > 0 && rec.Score > set.Recommendations[i-1].Score {
			return fmt.Errorf("recommendations not sorted: entry %d outranks entry %d", i, i-1)
		}
	}
	return nil
}
