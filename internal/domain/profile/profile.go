// Package profile builds weighted interest profiles from signup preferences
// and event history.
package profile

import (
	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/types"
)

// Weights applied when seeding the frequency tables. Signup-declared
// preferences outweigh a single historical occurrence.
const (
	signupWeight  = 3
	historyWeight = 1
)

// maxFavoriteTags caps FavoriteTags at the top entries by frequency.
const maxFavoriteTags = 10

// Profile is a user's weighted interest profile. It is rebuilt on every
// recommendation request and never persisted.
type Profile struct {
	EventsCreated  int
	EventsAttended int

	// FavoriteCategories is the union of signup and historical categories,
	// in first-seen order.
	FavoriteCategories []string

	// FavoriteTags holds the top tags by frequency, ties broken by
	// insertion order.
	FavoriteTags []string

	// TopCategory is the arg-max of the category frequency table, ties
	// broken by first-seen order.
	TopCategory string

	SignupCategories []string
	SignupTags       []string
}

// ColdStart reports whether the profile has no event history at all.
// Cold-start profiles are scored by generic heuristics.
func (p Profile) ColdStart() bool {
	return p.EventsCreated == 0 && p.EventsAttended == 0
}

// Summary converts the profile to its read shape.
func (p Profile) Summary() types.ProfileSummary {
	return types.ProfileSummary{
		FavoriteCategories: p.FavoriteCategories,
		FavoriteTags:       p.FavoriteTags,
		TopCategory:        p.TopCategory,
		EventsCreated:      p.EventsCreated,
		EventsAttended:     p.EventsAttended,
	}
}

// freqTable counts strings while remembering first-seen order, so arg-max and
// top-N results are deterministic for equal counts.
type freqTable struct {
	counts map[string]int
	order  []string
}

func newFreqTable() *freqTable {
	return &freqTable{counts: make(map[string]int)}
}

func (t *freqTable) add(key string, weight int) {
	if key == "" {
		return
	}
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key] += weight
}

// argMax returns the key with the highest count, first-seen wins ties.
func (t *freqTable) argMax() string {
	best := ""
	bestCount := 0
	for _, key := range t.order {
		if t.counts[key] > bestCount {
			best = key
			bestCount = t.counts[key]
		}
	}
	return best
}

// topN returns up to n keys ordered by count descending, insertion order for
// equal counts. Selection sort keeps the tie-break explicit; tables stay tiny.
func (t *freqTable) topN(n int) []string {
	remaining := append([]string(nil), t.order...)
	var out []string
	for len(out) < n && len(remaining) > 0 {
		bestIdx := 0
		for i := 1; i < len(remaining); i++ {
			if t.counts[remaining[i]] > t.counts[remaining[bestIdx]] {
				bestIdx = i
			}
		}
		out = append(out, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return out
}

// Build derives a profile from the events a user created, their
// participations, and their signup-declared preferences. Pure function of its
// three inputs.
func Build(created []model.Event, participations []model.Participation, prefs model.Preferences) Profile {
	categories := newFreqTable()
	tags := newFreqTable()

	for _, c := range prefs.Categories {
		categories.add(c, signupWeight)
	}
	for _, t := range prefs.Tags {
		tags.add(t, signupWeight)
	}
	for _, e := range created {
		categories.add(e.Category, historyWeight)
		for _, t := range e.Tags {
			tags.add(t, historyWeight)
		}
	}

	attended := 0
	for _, p := range participations {
		if p.Status.Attended() {
			attended++
		}
	}

	// Favorite categories: signup first, then anything seen in history.
	union := newFreqTable()
	for _, c := range prefs.Categories {
		union.add(c, 1)
	}
	for _, e := range created {
		union.add(e.Category, 1)
	}
	for _, p := range participations {
		union.add(p.Category, 1)
	}

	return Profile{
		EventsCreated:      len(created),
		EventsAttended:     attended,
		FavoriteCategories: union.order,
		FavoriteTags:       tags.topN(maxFavoriteTags),
		TopCategory:        categories.argMax(),
		SignupCategories:   append([]string(nil), prefs.Categories...),
		SignupTags:         append([]string(nil), prefs.Tags...),
	}
}
