package feedback

import (
	"fmt"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/types"
)

// Narrative fields are produced by independent threshold cascades. Every
// cascade ends in a non-empty fallback so downstream consumers never see an
// empty list or string.

func strengths(e model.Event, m types.FeedbackMetrics) []string {
	var out []string
	if m.AttendanceRate >= 80 {
		out = append(out, fmt.Sprintf("Excellent attendance: %d%% of registered participants showed up", m.AttendanceRate))
	} else if m.AttendanceRate >= 60 {
		out = append(out, fmt.Sprintf("Solid attendance rate of %d%%", m.AttendanceRate))
	}
	if m.RegistrationRate >= 90 {
		out = append(out, "Strong demand: registrations nearly filled the event")
	} else if m.RegistrationRate >= 70 {
		out = append(out, fmt.Sprintf("Healthy registration rate of %d%%", m.RegistrationRate))
	}
	if len(e.Description) > descriptionMinLen {
		out = append(out, "Detailed event description helped set expectations")
	}
	if len(out) == 0 {
		out = append(out, "Event was organized and completed")
	}
	return out
}

func improvements(e model.Event, m types.FeedbackMetrics) []string {
	var out []string
	if m.AttendanceRate < 60 && m.TotalParticipants > 0 {
		out = append(out, "Attendance lagged registrations; consider reminder notifications before the event")
	}
	if m.RegistrationRate < 50 {
		out = append(out, "Registrations filled under half the capacity; review promotion channels or right-size the venue")
	}
	if e.Category == "" {
		out = append(out, "Add a category so the event reaches interested users in recommendations")
	}
	if len(e.Description) <= descriptionMinLen {
		out = append(out, "A longer description tends to convert more page views into registrations")
	}
	if len(out) == 0 {
		out = append(out, "Keep gathering participant feedback to refine future events")
	}
	return out
}

func recommendations(e model.Event, m types.FeedbackMetrics, rawRegistration int) []string {
	var out []string
	if rawRegistration > 100 {
		out = append(out, fmt.Sprintf("Demand exceeded capacity (%d%% of %d seats); plan a larger venue or a repeat session", rawRegistration, e.MaxParticipants))
	}
	if m.AttendanceRate < 70 && m.TotalParticipants > 0 {
		out = append(out, "Send day-before and morning-of reminders to close the attendance gap")
	}
	if m.RegistrationRate < 60 {
		out = append(out, "Open registration earlier and promote through category-matched channels")
	}
	if len(out) == 0 {
		out = append(out, "Replicate this format; the turnout metrics support running it again")
	}
	return out
}

func engagementInsights(m types.FeedbackMetrics) string {
	switch {
	case m.TotalParticipants == 0:
		return "No participant data recorded for this event yet."
	case m.AttendanceRate >= 80 && m.RegistrationRate >= 80:
		return fmt.Sprintf("High engagement across the board: %d of %d registrants attended.", m.AttendedCount, m.TotalParticipants)
	case m.AttendanceRate >= 60:
		return fmt.Sprintf("Engagement was respectable with %d attendees out of %d registered.", m.AttendedCount, m.TotalParticipants)
	default:
		return fmt.Sprintf("Engagement fell short: only %d of %d registrants attended.", m.AttendedCount, m.TotalParticipants)
	}
}

func nextSteps(m types.FeedbackMetrics) string {
	switch {
	case m.TotalParticipants == 0:
		return "Collect participant registrations and re-run the analysis after the event."
	case m.AttendanceRate >= 70:
		return "Share a recap with attendees and announce the next event while interest is high."
	default:
		return "Survey no-shows to learn what kept them away before scheduling the next date."
	}
}
