package seed

import "time"

// Config holds configuration for the seed run.
type Config struct {
	BaseURL      string        // Base URL of the service
	NumEvents    int           // Number of events to generate
	NumUsers     int           // Number of synthetic users
	Participants int           // Participant registrations per user (approximate)
	Workers      int           // Number of concurrent workers
	Timeout      time.Duration // HTTP request timeout
	Verbose      bool          // Enable verbose logging
}

// Event mirrors the POST /events request schema.
type Event struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	Location        string   `json:"location"`
	IsVirtual       bool     `json:"is_virtual"`
	MaxParticipants int      `json:"max_participants"`
	Status          string   `json:"status"`
	OwnerID         string   `json:"owner_id"`
}

// Participant mirrors the POST /participants request schema.
type Participant struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}

// Preferences mirrors the PUT /preferences/{user_id} request schema.
type Preferences struct {
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}

// AckResponse represents the response from record submission.
type AckResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Recommendation mirrors the recommendation read schema.
type Recommendation struct {
	EventID      string   `json:"event_id"`
	Title        string   `json:"title"`
	Reason       string   `json:"reason"`
	Confidence   int      `json:"confidence"`
	Score        float64  `json:"score"`
	MatchFactors []string `json:"match_factors"`
}

// RecommendationSet mirrors the GET /recommendations response.
type RecommendationSet struct {
	Recommendations []Recommendation `json:"recommendations"`
	Insights        string           `json:"insights"`
}

// Stats holds seed run statistics.
type Stats struct {
	EventsGenerated       int
	EventsSubmitted       int
	EventsSuccessful      int
	EventsDuplicate       int
	EventsFailed          int
	ParticipantsSubmitted int
	PreferencesStored     int
	UsersVerified         int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
