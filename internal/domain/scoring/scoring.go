// Package scoring computes relevance scores for candidate events.
//
// Two mutually exclusive branches exist: cold-start users (no history at all)
// are scored by generic proximity/capacity heuristics; users with history are
// scored against their interest profile. Every score lands in [0, 100].
package scoring

import (
	"strings"
	"time"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/profile"
)

// Score bounds.
const (
	minScore = 0
	maxScore = 100
)

// Cold-start scoring constants.
const (
	coldBaseScore = 30

	// Date-proximity bonus bands, days until the event.
	coldProximityWeek      = 40 // <= 7 days
	coldProximityFortnight = 35 // <= 14 days
	coldProximityMonth     = 30 // <= 30 days
	coldProximityQuarter   = 20 // <= 60 days
	coldProximityFar       = 10 // <= 90 days

	// Capacity bonus: mid-sized events make the best networking rooms.
	coldCapacityBest  = 20 // 50..300
	coldCapacityLarge = 15 // 301..500
	coldCapacityOther = 10 // any other stated capacity

	coldPopularCategory = 10
)

// History-branch scoring constants.
const (
	historyBaseScore = 50

	topCategoryBonus      = 30
	favoriteCategoryBonus = 15
	tagMatchBonus         = 5 // per matching tag

	historyProximityWeek    = 20 // <= 7 days
	historyProximityMonth   = 15 // <= 30 days
	historyProximityQuarter = 10 // <= 60 days

	capacityPopularityDivisor = 100
	capacityPopularityWeight  = 10
	noCapacityPopularity      = 5

	attendanceBonusWeight = 20
	attendanceBonusCap    = 20
	noAttendanceBonus     = 5
)

// popularCategories is the fixed allow-list used by the cold-start branch.
// Keys are lower-cased.
var popularCategories = map[string]struct{}{
	"technology":    {},
	"business":      {},
	"networking":    {},
	"education":     {},
	"entertainment": {},
}

// PopularCategory reports whether the category is on the cold-start
// allow-list. Matching is case-insensitive.
func PopularCategory(category string) bool {
	_, ok := popularCategories[strings.ToLower(category)]
	return ok
}

// DaysUntil returns the calendar-day difference from now to date. Negative
// for past dates; callers are expected to pre-filter candidates to future
// events.
func DaysUntil(now, date time.Time) int {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := date.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// DailySeed returns an integer stable within one calendar day. It rotates
// otherwise-identical rankings once per day while staying reproducible for
// tests that freeze the clock.
func DailySeed(now time.Time) int {
	return now.Year()*10000 + int(now.Month())*100 + now.Day()
}

// Score computes the raw relevance score of an event for a profile.
// Pure function of its arguments; the ambient date is threaded in as now.
func Score(e model.Event, p profile.Profile, now time.Time) float64 {
	if p.ColdStart() {
		return coldStartScore(e, now)
	}
	return historyScore(e, p, now)
}

// coldStartScore rates an event for a user with no history: date proximity,
// capacity sweet spot, and broadly popular categories.
func coldStartScore(e model.Event, now time.Time) float64 {
	score := float64(coldBaseScore)

	switch days := DaysUntil(now, e.Date); {
	case days <= 7:
		score += coldProximityWeek
	case days <= 14:
		score += coldProximityFortnight
	case days <= 30:
		score += coldProximityMonth
	case days <= 60:
		score += coldProximityQuarter
	case days <= 90:
		score += coldProximityFar
	}

	switch capacity := e.MaxParticipants; {
	case capacity >= 50 && capacity <= 300:
		score += coldCapacityBest
	case capacity > 300 && capacity <= 500:
		score += coldCapacityLarge
	case capacity > 0:
		score += coldCapacityOther
	}

	if PopularCategory(e.Category) {
		score += coldPopularCategory
	}

	return clamp(score)
}

// historyScore rates an event against a profile with history.
func historyScore(e model.Event, p profile.Profile, now time.Time) float64 {
	score := float64(historyBaseScore)

	switch {
	case e.Category != "" && strings.EqualFold(e.Category, p.TopCategory):
		score += topCategoryBonus
	case containsFold(p.FavoriteCategories, e.Category):
		score += favoriteCategoryBonus
	}

	for _, tag := range e.Tags {
		if containsFold(p.FavoriteTags, tag) {
			score += tagMatchBonus
		}
	}

	switch days := DaysUntil(now, e.Date); {
	case days <= 7:
		score += historyProximityWeek
	case days <= 30:
		score += historyProximityMonth
	case days <= 60:
		score += historyProximityQuarter
	}

	if e.MaxParticipants > 0 {
		score += float64(e.MaxParticipants) / capacityPopularityDivisor * capacityPopularityWeight
	} else {
		score += noCapacityPopularity
	}

	if p.EventsAttended > 0 {
		// Guarded ratio: zero created events yields no bonus.
		if p.EventsCreated > 0 {
			bonus := float64(p.EventsAttended) / float64(p.EventsCreated) * attendanceBonusWeight
			if bonus > attendanceBonusCap {
				bonus = attendanceBonusCap
			}
			score += bonus
		}
	} else {
		score += noAttendanceBonus
	}

	return clamp(score)
}

// containsFold reports whether list contains s, case-insensitively.
// Empty strings never match.
func containsFold(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func clamp(score float64) float64 {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}
