package seed

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/eventease/insights/pkg/logger"
)

// Synthetic data pools. Categories overlap the scoring allow-list so cold
// start recommendations have something to latch onto.
var (
	categories = []string{
		"technology", "business", "networking", "education",
		"entertainment", "health", "sports", "arts",
	}
	tagPool = []string{
		"golang", "cloud", "startups", "ai", "design",
		"marketing", "leadership", "wellness", "music", "photography",
	}
	locations = []string{
		"Berlin", "Amsterdam", "Lisbon", "Prague", "Warsaw", "Helsinki",
	}
	participantStatuses = []string{
		"registered", "confirmed", "attended", "checked_in", "cancelled",
	}
)

// Event spread constants.
const (
	maxDaysAhead    = 90
	maxCapacity     = 600
	tagsPerEvent    = 3
	prefsPerUser    = 2
	virtualFraction = 4 // one in four events is virtual
)

// randomInt returns a uniform value in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// pick returns a random element of pool.
func pick(pool []string) string {
	return pool[randomInt(len(pool))]
}

// pickN returns n distinct random elements of pool.
func pickN(pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	perm := make([]string, len(pool))
	copy(perm, pool)
	for i := range perm {
		j := randomInt(len(perm))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:n]
}

// generateUsers creates synthetic user ids.
func generateUsers(n int) []string {
	users := make([]string, n)
	for i := range users {
		users[i] = "user-" + uuid.NewString()
	}
	return users
}

// generateEvents creates synthetic events owned by the given users, dated
// across the next three months.
func generateEvents(ctx context.Context, config *Config, users []string, stats *Stats) []Event {
	logger.Get().Info(ctx, "generating events", logger.Int("numEvents", config.NumEvents))

	now := time.Now().UTC()
	events := make([]Event, config.NumEvents)
	for i := range events {
		category := pick(categories)
		date := now.AddDate(0, 0, 1+randomInt(maxDaysAhead))
		events[i] = Event{
			ID:              "event-" + uuid.NewString(),
			Title:           category + " meetup #" + strconv.Itoa(i+1),
			Description:     "A community gathering about " + category + " with talks, demos, and open discussion for practitioners of all levels.",
			Category:        category,
			Tags:            pickN(tagPool, tagsPerEvent),
			Date:            date.Format("2006-01-02"),
			StartTime:       "09:00",
			Location:        pick(locations),
			IsVirtual:       randomInt(virtualFraction) == 0,
			MaxParticipants: 20 + randomInt(maxCapacity),
			Status:          "upcoming",
			OwnerID:         users[randomInt(len(users))],
		}
	}

	stats.EventsGenerated = len(events)
	logger.Get().Info(ctx, "generated events successfully", logger.Int("count", len(events)))
	return events
}

// generateParticipants registers users to random events with a mixed status
// distribution so feedback analysis has attendance signal.
func generateParticipants(config *Config, users []string, events []Event) []Participant {
	var participants []Participant
	for _, u := range users {
		for i := 0; i < config.Participants; i++ {
			e := events[randomInt(len(events))]
			participants = append(participants, Participant{
				ID:      "participant-" + uuid.NewString(),
				EventID: e.ID,
				UserID:  u,
				Status:  pick(participantStatuses),
			})
		}
	}
	return participants
}

// generatePreferences declares interests for each user.
func generatePreferences(users []string) map[string]Preferences {
	prefs := make(map[string]Preferences, len(users))
	for _, u := range users {
		prefs[u] = Preferences{
			Categories: pickN(categories, prefsPerUser),
			Tags:       pickN(tagPool, prefsPerUser),
		}
	}
	return prefs
}
