// Package ranking turns scored candidates into packaged recommendations.
package ranking

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/profile"
	"github.com/eventease/insights/internal/domain/scoring"
	"github.com/eventease/insights/internal/domain/types"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultLimit = 5

// Daily variation parameters: ((seed + index) mod variationMod) - variationShift
// yields an offset in [-7, +7] that is stable within one calendar day.
const (
	variationMod   = 15
	variationShift = 7
)

const maxConfidence = 10

// scoredEvent pairs a candidate with its final score. Ephemeral.
type scoredEvent struct {
	event model.Event
	score float64
	index int // original candidate position, preserved for stable ties
}

// Recommend scores all candidates against the profile, applies the daily
// variation, sorts, and packages the top results with human-readable
// justifications. Deterministic for a fixed calendar day and candidate order.
func Recommend(p profile.Profile, candidates []model.Event, now time.Time, limit int) types.RecommendationSet {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if len(candidates) == 0 {
		return types.RecommendationSet{
			Recommendations: []types.Recommendation{},
			Insights:        emptyInsights,
			Profile:         p.Summary(),
		}
	}

	seed := scoring.DailySeed(now)
	scored := make([]scoredEvent, len(candidates))
	for i, e := range candidates {
		raw := scoring.Score(e, p, now)
		variation := float64((seed+i)%variationMod - variationShift)
		scored[i] = scoredEvent{event: e, score: clamp(raw + variation), index: i}
	}

	// Descending by score; ties keep original candidate order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	recs := make([]types.Recommendation, len(scored))
	for i, s := range scored {
		recs[i] = types.Recommendation{
			EventID:      s.event.ID,
			Title:        s.event.Title,
			Reason:       reason(s.event, p, now),
			Confidence:   confidence(s.score),
			Score:        s.score,
			MatchFactors: matchFactors(s.event, p),
		}
	}

	return types.RecommendationSet{
		Recommendations: recs,
		Insights:        insights(p, len(recs)),
		Profile:         p.Summary(),
	}
}

// confidence maps a 0..100 score onto the published 0..10 scale.
func confidence(score float64) int {
	c := int(math.Round(score / 10))
	if c > maxConfidence {
		c = maxConfidence
	}
	return c
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Insights strings. The empty-candidate and cold-start texts mirror what the
// platform has always shown users.
const emptyInsights = "No events available for recommendations at this time. Check back later for new events!"

func insights(p profile.Profile, count int) string {
	if p.ColdStart() && len(p.SignupCategories) == 0 && len(p.SignupTags) == 0 {
		return fmt.Sprintf("Welcome! We've found %d upcoming event(s) that might interest you. Explore events from different categories to help us personalize future recommendations!", count)
	}
	if p.TopCategory != "" {
		return fmt.Sprintf("Based on your interest in %s and your event history, we've found %d personalized recommendations for you.", p.TopCategory, count)
	}
	return fmt.Sprintf("We've found %d events that match your preferences based on your activity and interests.", count)
}
