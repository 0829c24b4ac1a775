// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eventease/insights/internal/adapters/repository"
	"github.com/eventease/insights/internal/domain/dedupe"
	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/schedule"
	"github.com/eventease/insights/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Ingestion pushes records for async processing. Returns false on backpressure.
	IngestEvent(ctx context.Context, e model.Event) bool
	IngestParticipant(ctx context.Context, p model.Participant) bool

	// SetPreferences stores declared interests synchronously.
	SetPreferences(ctx context.Context, prefs model.Preferences) error

	// Read operations expose computed insights.
	Recommendations(ctx context.Context, userID string, limit int, fallbackPrefs model.Preferences) (types.RecommendationSet, error)
	SchedulePlan(ctx context.Context, eventID string, c schedule.Constraints) (types.SchedulePlan, error)
	Feedback(ctx context.Context, eventID string) (types.FeedbackAnalysis, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	eventsHandler          *EventsHandler
	participantsHandler    *ParticipantsHandler
	preferencesHandler     *PreferencesHandler
	recommendationsHandler *RecommendationsHandler
	scheduleHandler        *ScheduleHandler
	feedbackHandler        *FeedbackHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		eventsHandler:          NewEventsHandler(deps),
		participantsHandler:    NewParticipantsHandler(deps),
		preferencesHandler:     NewPreferencesHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps, maxLimit),
		scheduleHandler:        NewScheduleHandler(deps),
		feedbackHandler:        NewFeedbackHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/participants", MetricsMiddleware(s.participantsHandler.HandlePostParticipant, "participants"))
	mux.HandleFunc("/preferences/", MetricsMiddleware(s.preferencesHandler.HandlePutPreferences, "preferences"))
	mux.HandleFunc("/recommendations/", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/schedule", MetricsMiddleware(s.scheduleHandler.HandlePostSchedule, "schedule"))
	mux.HandleFunc("/feedback/", MetricsMiddleware(s.feedbackHandler.HandleGetFeedback, "feedback"))
}

// Accepted wire formats for event dates.
const (
	dateFormatDay = "2006-01-02"
)

// eventRequest mirrors the OpenAPI schema for POST /events.
type eventRequest struct {
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

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(e.Category) == "":
		return errors.New("missing category")
	case strings.TrimSpace(e.Date) == "":
		return errors.New("missing date")
	case strings.TrimSpace(e.OwnerID) == "":
		return errors.New("missing owner_id")
	}
	if _, err := parseEventDate(e.Date); err != nil {
		return errors.New("invalid date; must be RFC3339 or YYYY-MM-DD")
	}
	if e.Status != "" && !model.EventStatus(e.Status).Valid() {
		return errors.New("invalid status")
	}
	return nil
}

func (e eventRequest) toModel() model.Event {
	date, _ := parseEventDate(e.Date)
	return model.Event{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		Tags:            e.Tags,
		Date:            date,
		StartTime:       e.StartTime,
		Location:        e.Location,
		IsVirtual:       e.IsVirtual,
		MaxParticipants: e.MaxParticipants,
		Status:          model.EventStatus(e.Status),
		OwnerID:         e.OwnerID,
	}
}

// parseEventDate accepts full RFC3339 timestamps or bare calendar days.
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(dateFormatDay, s)
}

// participantRequest mirrors the OpenAPI schema for POST /participants.
type participantRequest struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Status  string `json:"status"`
}

func (p participantRequest) validate() error {
	switch {
	case strings.TrimSpace(p.EventID) == "":
		return errors.New("missing event_id")
	case strings.TrimSpace(p.UserID) == "":
		return errors.New("missing user_id")
	}
	if p.Status != "" && !model.ParticipantStatus(p.Status).Valid() {
		return errors.New("invalid status")
	}
	return nil
}

func (p participantRequest) toModel() model.Participant {
	return model.Participant{
		ID:      p.ID,
		EventID: p.EventID,
		UserID:  p.UserID,
		Status:  model.ParticipantStatus(p.Status),
	}
}

type ackResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id,omitempty"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrEventNotFound) ||
		errors.Is(err, repository.ErrPreferencesNotFound)
}

// pathParam extracts the single path element after prefix, rejecting empty
// and nested paths.
func pathParam(r *http.Request, prefix string) (string, bool) {
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" || strings.Contains(p, "/") {
		return "", false
	}
	return p, true
}
