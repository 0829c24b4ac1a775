package ranking

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/profile"
	"github.com/eventease/insights/internal/domain/scoring"
)

// Limits on the human-readable justification fields.
const (
	maxMatchFactors  = 4
	maxReasonTags    = 2
	maxTagFactors    = 3
	networkingMinCap = 50
)

// reason produces the one-line justification for recommending an event.
// The rules form an ordered cascade; the first match wins, and a timing
// clause is appended for events inside the next two weeks.
func reason(e model.Event, p profile.Profile, now time.Time) string {
	base := baseReason(e, p)

	days := scoring.DaysUntil(now, e.Date)
	switch {
	case days >= 0 && days <= 7:
		base = appendClause(base, "Happening this week")
	case days > 7 && days <= 14:
		base = appendClause(base, "Coming up soon")
	}

	if base != "" {
		return base
	}
	if e.MaxParticipants >= networkingMinCap {
		return "Great networking opportunity"
	}
	return "Recommended for you"
}

// baseReason evaluates the priority-ordered reason rules.
func baseReason(e model.Event, p profile.Profile) string {
	// 1. Signup category match.
	if containsFold(p.SignupCategories, e.Category) {
		return fmt.Sprintf("Matches your interest in %s", e.Category)
	}

	// 2. Signup tag intersection.
	if matched := intersectFold(e.Tags, p.SignupTags); len(matched) > 0 {
		return fmt.Sprintf("Related to %s", strings.Join(limit(matched, maxReasonTags), ", "))
	}

	// 3. Signup tags found in the event's text.
	if tag := firstTagInText(p.SignupTags, e); tag != "" {
		return fmt.Sprintf("Matches your interest in %s", tag)
	}

	// 4. Top-category match.
	if e.Category != "" && strings.EqualFold(e.Category, p.TopCategory) {
		return fmt.Sprintf("Similar to your favorite %s events", e.Category)
	}

	// 5. Favorite tag intersection.
	if matched := intersectFold(e.Tags, p.FavoriteTags); len(matched) > 0 {
		return fmt.Sprintf("Matches your interests: %s", strings.Join(limit(matched, maxReasonTags), ", "))
	}

	// 6. Fall back to the event's own category or tags.
	if e.Category != "" {
		return fmt.Sprintf("Popular %s event", e.Category)
	}
	if len(e.Tags) > 0 {
		return fmt.Sprintf("Covers %s", strings.Join(limit(e.Tags, maxReasonTags), ", "))
	}
	return ""
}

// matchFactors lists up to four short labels explaining the match,
// de-duplicated, in rule-priority order.
func matchFactors(e model.Event, p profile.Profile) []string {
	var factors []string
	seen := make(map[string]struct{})
	add := func(f string) {
		if f == "" || len(factors) >= maxMatchFactors {
			return
		}
		key := strings.ToLower(f)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		factors = append(factors, f)
	}

	if containsFold(p.SignupCategories, e.Category) {
		add(e.Category)
	}
	if e.Category != "" && strings.EqualFold(e.Category, p.TopCategory) {
		add(e.Category)
	}

	favorites := append(append([]string(nil), p.FavoriteTags...), p.SignupTags...)
	for _, tag := range limit(intersectFold(e.Tags, favorites), maxTagFactors) {
		add(tag)
	}
	for _, tag := range p.SignupTags {
		if tagInText(tag, e) {
			add(tag)
		}
	}

	if len(factors) == 0 {
		add(e.Category)
		for _, tag := range limit(e.Tags, maxReasonTags) {
			add(tag)
		}
	}
	if len(factors) == 0 {
		// Nothing about the event itself to point at; fall back to timing.
		if e.MaxParticipants >= networkingMinCap {
			factors = append(factors, "Trending event")
		} else {
			factors = append(factors, "Upcoming event")
		}
	}
	return factors
}

// firstTagInText returns the first signup tag found as a substring of the
// event's title, description, or category. Case-insensitive.
func firstTagInText(tags []string, e model.Event) string {
	for _, tag := range tags {
		if tagInText(tag, e) {
			return tag
		}
	}
	return ""
}

func tagInText(tag string, e model.Event) bool {
	if tag == "" {
		return false
	}
	text := strings.ToLower(e.Title + " " + e.Description + " " + e.Category)
	return strings.Contains(text, strings.ToLower(tag))
}

// intersectFold returns the elements of a that appear in b, case-insensitively,
// preserving a's order.
func intersectFold(a, b []string) []string {
	var out []string
	for _, v := range a {
		if containsFold(b, v) {
			out = append(out, v)
		}
	}
	return out
}

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

func limit(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}

func appendClause(base, clause string) string {
	if base == "" {
		return clause
	}
	return base + " - " + clause
}
