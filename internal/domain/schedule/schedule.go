// Package schedule synthesizes event-day agendas from timing constraints.
package schedule

import (
	"fmt"
	"strings"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/types"
)

// Fixed block durations in minutes.
const (
	registrationMinutes      = 15
	openingMinutes           = 15
	conferenceOpeningMinutes = 30
	breakMinutes             = 15
	lunchMinutes             = 60
	closingMinutes           = 15
)

// Defaults applied when a constraint is absent.
const (
	DefaultStartTime       = "09:00"
	DefaultDurationHours   = 4
	DefaultSessionMinutes  = 45
	WorkshopSessionMinutes = 90
	DefaultLunchStart      = "12:30"
)

// lunchThresholdHours is the target duration at or above which a lunch block
// is inserted.
const lunchThresholdHours = 6

// Advisory thresholds on expected headcount.
const (
	largeEventParticipants = 50
	smallEventParticipants = 20
)

const minutesPerHour = 60

// Constraints are the caller-supplied agenda parameters. Zero values take
// the package defaults.
type Constraints struct {
	StartTime      string `json:"start_time"`      // "HH:MM"
	DurationHours  int    `json:"duration_hours"`  // total target length
	SessionMinutes int    `json:"session_minutes"` // main content session length
	BreakMinutes   int    `json:"break_minutes"`
	LunchStart     string `json:"lunch_start"` // "HH:MM", fixed clock time
}

// withDefaults fills absent constraints; workshops get longer sessions.
func (c Constraints) withDefaults(isWorkshop bool) Constraints {
	if c.StartTime == "" {
		c.StartTime = DefaultStartTime
	}
	if c.DurationHours <= 0 {
		c.DurationHours = DefaultDurationHours
	}
	if c.SessionMinutes <= 0 {
		if isWorkshop {
			c.SessionMinutes = WorkshopSessionMinutes
		} else {
			c.SessionMinutes = DefaultSessionMinutes
		}
	}
	if c.BreakMinutes <= 0 {
		c.BreakMinutes = breakMinutes
	}
	if c.LunchStart == "" {
		c.LunchStart = DefaultLunchStart
	}
	return c
}

// Build synthesizes an ordered agenda for the event. Blocks run strictly
// sequentially from the start time; the closing block ends exactly at
// start + duration.
//
// Known limitation: the lunch block sits at a fixed clock time independent of
// where the main content lands, so unusual constraint combinations can make
// it overlap a session. Offsets at or past midnight format as hours >= 24.
func Build(e model.Event, participantCount int, c Constraints) types.SchedulePlan {
	category := strings.ToLower(e.Category)
	isWorkshop := strings.Contains(category, "workshop") || strings.Contains(category, "training")
	isConference := strings.Contains(category, "conference")

	c = c.withDefaults(isWorkshop)
	start := parseMinutes(c.StartTime, DefaultStartTime)

	var items []types.ScheduleItem
	add := func(at, duration int, activity, description string, kind types.ItemType) {
		items = append(items, types.ScheduleItem{
			Time:        formatMinutes(at),
			Duration:    duration,
			Activity:    activity,
			Description: description,
			Type:        kind,
		})
	}

	cursor := start
	add(cursor, registrationMinutes, "Registration", "Check-in and welcome", types.ItemRegistration)
	cursor += registrationMinutes

	opening := openingMinutes
	if isConference {
		opening = conferenceOpeningMinutes
	}
	add(cursor, opening, "Opening Remarks", "Introduction and agenda overview", types.ItemOpening)
	cursor += opening

	if isWorkshop {
		add(cursor, c.SessionMinutes, "Workshop Session 1", "Hands-on guided work", types.ItemSession)
		cursor += c.SessionMinutes
		add(cursor, c.BreakMinutes, "Break", "Refreshments and networking", types.ItemBreak)
		cursor += c.BreakMinutes
		add(cursor, c.SessionMinutes, "Workshop Session 2", "Hands-on guided work", types.ItemSession)
		cursor += c.SessionMinutes
	} else {
		for i := 1; i <= 3; i++ {
			add(cursor, c.SessionMinutes, fmt.Sprintf("Session %d", i), "Main event content", types.ItemSession)
			cursor += c.SessionMinutes
			if i < 3 {
				add(cursor, c.BreakMinutes, "Break", "Refreshments and networking", types.ItemBreak)
				cursor += c.BreakMinutes
			}
		}
	}

	if c.DurationHours >= lunchThresholdHours {
		lunchAt := parseMinutes(c.LunchStart, DefaultLunchStart)
		add(lunchAt, lunchMinutes, "Lunch Break", "Meal and networking", types.ItemLunch)
	}

	closingAt := start + c.DurationHours*minutesPerHour - closingMinutes
	add(closingAt, closingMinutes, "Closing Remarks", "Summary and next steps", types.ItemClosing)

	total := 0
	for _, item := range items {
		total += item.Duration
	}

	return types.SchedulePlan{
		Schedule:        items,
		TotalDuration:   total,
		Recommendations: advisories(e, participantCount),
	}
}

// advisories returns fixed planning advice selected by headcount and venue.
func advisories(e model.Event, participantCount int) []string {
	var out []string
	if participantCount > largeEventParticipants {
		out = append(out, "Consider breakout rooms to keep large-group sessions interactive")
	}
	if participantCount > 0 && participantCount < smallEventParticipants {
		out = append(out, "Small group: a roundtable format encourages participation")
	}
	if e.IsVirtual {
		out = append(out, "Schedule short screen breaks and keep sessions under an hour for virtual attendees")
	} else {
		out = append(out, "Reserve the venue 30 minutes early for setup and registration")
	}
	return out
}

// parseMinutes converts "HH:MM" to minutes since midnight, falling back to
// the given default when malformed.
func parseMinutes(s, fallback string) int {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || h < 0 || m < 0 || m > 59 {
		fmt.Sscanf(fallback, "%d:%d", &h, &m) //nolint:errcheck // fallback constants are well-formed
	}
	return h*minutesPerHour + m
}

// formatMinutes renders minutes since midnight as zero-padded "HH:MM".
// Deliberately modulo-free: offsets past midnight render as hours >= 24.
func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/minutesPerHour, m%minutesPerHour)
}
