// Package feedback scores post-event performance from attendance data.
package feedback

import (
	"math"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/types"
)

// Internal composite scale. The composite starts at a neutral base and is
// clamped to [0, 100] before rescaling to the published 1..10 score.
const (
	baseComposite = 50
	maxComposite  = 100

	minPublishedScore = 1
	maxPublishedScore = 10
)

// Attendance-rate bonus bands, percentage points.
const (
	attendanceBand90 = 40
	attendanceBand80 = 35
	attendanceBand70 = 30
	attendanceBand60 = 20
	attendanceBand50 = 10
	attendanceBand40 = 5
)

// Registration-rate bonus bands, capped lower than attendance.
const (
	registrationBand90 = 30
	registrationBand80 = 25
	registrationBand70 = 20
	registrationBand60 = 15
	registrationBand50 = 10
	registrationBand40 = 5
)

// Completeness bonus: well-filled event records earn up to 20 points.
const (
	titleMinLen       = 10
	descriptionMinLen = 50

	titleBonus       = 5
	descriptionBonus = 5
	categoryBonus    = 3
	locationBonus    = 3
	capacityBonus    = 4
)

// Sentiment thresholds on the joint attendance/registration rates.
const (
	veryPositiveRate = 80
	positiveRate     = 70
	neutralRate      = 60
	mixedRate        = 50
)

// Analyze converts an event's participant records into a performance
// analysis. Pure function; empty participant lists produce zero rates and the
// lowest sentiment bucket rather than an error.
func Analyze(e model.Event, participants []model.Participant) types.FeedbackAnalysis {
	metrics, rawRegistration := computeMetrics(e, participants)

	composite := float64(baseComposite)
	composite += attendanceBonus(metrics.AttendanceRate)
	composite += registrationBonus(metrics.RegistrationRate)
	composite += completenessBonus(e)
	if composite > maxComposite {
		composite = maxComposite
	}
	if composite < 0 {
		composite = 0
	}

	score := int(math.Round(composite / 10))
	if score < minPublishedScore {
		score = minPublishedScore
	}
	if score > maxPublishedScore {
		score = maxPublishedScore
	}

	return types.FeedbackAnalysis{
		PerformanceScore:   score,
		Strengths:          strengths(e, metrics),
		Improvements:       improvements(e, metrics),
		Sentiment:          sentiment(metrics.AttendanceRate, metrics.RegistrationRate),
		Recommendations:    recommendations(e, metrics, rawRegistration),
		EngagementInsights: engagementInsights(metrics),
		NextSteps:          nextSteps(metrics),
		Metrics:            metrics,
	}
}

// computeMetrics derives the rate fields. The raw registration rate may
// exceed 100 for over-subscribed events; only the published value is clamped.
func computeMetrics(e model.Event, participants []model.Participant) (types.FeedbackMetrics, int) {
	total := len(participants)
	attended := 0
	for _, p := range participants {
		if p.Status.Attended() {
			attended++
		}
	}

	attendanceRate := 0
	if total > 0 {
		attendanceRate = int(math.Round(float64(attended) / float64(total) * 100))
	}

	rawRegistration := 0
	if e.MaxParticipants > 0 {
		rawRegistration = int(math.Round(float64(total) / float64(e.MaxParticipants) * 100))
	}
	published := rawRegistration
	if published > 100 {
		published = 100
	}

	return types.FeedbackMetrics{
		TotalParticipants: total,
		AttendedCount:     attended,
		AttendanceRate:    attendanceRate,
		RegistrationRate:  published,
	}, rawRegistration
}

func attendanceBonus(rate int) float64 {
	switch {
	case rate >= 90:
		return attendanceBand90
	case rate >= 80:
		return attendanceBand80
	case rate >= 70:
		return attendanceBand70
	case rate >= 60:
		return attendanceBand60
	case rate >= 50:
		return attendanceBand50
	case rate >= 40:
		return attendanceBand40
	default:
		return 0
	}
}

func registrationBonus(rate int) float64 {
	switch {
	case rate >= 90:
		return registrationBand90
	case rate >= 80:
		return registrationBand80
	case rate >= 70:
		return registrationBand70
	case rate >= 60:
		return registrationBand60
	case rate >= 50:
		return registrationBand50
	case rate >= 40:
		return registrationBand40
	default:
		return 0
	}
}

func completenessBonus(e model.Event) float64 {
	bonus := 0.0
	if len(e.Title) > titleMinLen {
		bonus += titleBonus
	}
	if len(e.Description) > descriptionMinLen {
		bonus += descriptionBonus
	}
	if e.Category != "" {
		bonus += categoryBonus
	}
	if e.Location != "" || e.IsVirtual {
		bonus += locationBonus
	}
	if e.MaxParticipants > 0 {
		bonus += capacityBonus
	}
	return bonus
}

// sentiment buckets by joint thresholds; both rates must clear the bar for
// the upper buckets, a single rate at 50 is enough for "mixed".
func sentiment(attendance, registration int) types.Sentiment {
	switch {
	case attendance >= veryPositiveRate && registration >= veryPositiveRate:
		return types.SentimentVeryPositive
	case attendance >= positiveRate && registration >= positiveRate:
		return types.SentimentPositive
	case attendance >= neutralRate && registration >= neutralRate:
		return types.SentimentNeutral
	case attendance >= mixedRate || registration >= mixedRate:
		return types.SentimentMixed
	default:
		return types.SentimentNeedsImprovement
	}
}
