// Package types contains the output artifacts shared across the application.
package types

// Recommendation is a single ranked suggestion for a user.
type Recommendation struct {
	EventID      string   `json:"event_id"`
	Title        string   `json:"title"`
	Reason       string   `json:"reason"`
	Confidence   int      `json:"confidence"` // 0..10
	Score        float64  `json:"score"`      // 0..100
	MatchFactors []string `json:"match_factors"`
}

// ProfileSummary is the read shape of a computed interest profile.
type ProfileSummary struct {
	FavoriteCategories []string `json:"favorite_categories"`
	FavoriteTags       []string `json:"favorite_tags"`
	TopCategory        string   `json:"top_category"`
	EventsCreated      int      `json:"events_created"`
	EventsAttended     int      `json:"events_attended"`
}

// RecommendationSet is the full response of a recommendation request.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
	Insights        string           `json:"insights"`
	Profile         ProfileSummary   `json:"profile"`
}

// ItemType classifies a schedule block.
type ItemType string

// Schedule block types.
const (
	ItemRegistration ItemType = "registration"
	ItemOpening      ItemType = "opening"
	ItemSession      ItemType = "session"
	ItemBreak        ItemType = "break"
	ItemLunch        ItemType = "lunch"
	ItemClosing      ItemType = "closing"
)

// ScheduleItem is a single block of an event-day agenda.
type ScheduleItem struct {
	Time        string   `json:"time"`     // "HH:MM"
	Duration    int      `json:"duration"` // minutes
	Activity    string   `json:"activity"`
	Description string   `json:"description"`
	Type        ItemType `json:"type"`
}

// SchedulePlan is the full response of a schedule request.
type SchedulePlan struct {
	Schedule        []ScheduleItem `json:"schedule"`
	TotalDuration   int            `json:"total_duration"` // minutes, sum of item durations
	Recommendations []string       `json:"recommendations"`
}

// Sentiment is the coarse performance bucket of a completed event.
type Sentiment string

// Sentiment buckets, best to worst.
const (
	SentimentVeryPositive     Sentiment = "very_positive"
	SentimentPositive         Sentiment = "positive"
	SentimentNeutral          Sentiment = "neutral"
	SentimentMixed            Sentiment = "mixed"
	SentimentNeedsImprovement Sentiment = "needs_improvement"
)

// FeedbackMetrics carries the raw rates behind a feedback analysis.
type FeedbackMetrics struct {
	TotalParticipants int `json:"total_participants"`
	AttendedCount     int `json:"attended_count"`
	AttendanceRate    int `json:"attendance_rate"`   // 0..100
	RegistrationRate  int `json:"registration_rate"` // 0..100, clamped for display
}

// FeedbackAnalysis is the full response of a feedback request.
type FeedbackAnalysis struct {
	PerformanceScore   int             `json:"performance_score"` // 1..10
	Strengths          []string        `json:"strengths"`
	Improvements       []string        `json:"improvements"`
	Sentiment          Sentiment       `json:"sentiment"`
	Recommendations    []string        `json:"recommendations"`
	EngagementInsights string          `json:"engagement_insights"`
	NextSteps          string          `json:"next_steps"`
	Metrics            FeedbackMetrics `json:"metrics"`
}
