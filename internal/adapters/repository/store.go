// Package repository defines the record store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/eventease/insights/internal/domain/model"
)

// Store provides read/write access to the event, participant, and preference
// records the insight computations consume. Implementations must return
// listings in a stable order: the ranker's tie-break depends on input order.
type Store interface {
	// UpsertEvent inserts or replaces an event record.
	// Returns true when the record was newly created.
	UpsertEvent(ctx context.Context, e model.Event) (bool, error)

	// Event returns the event with the given id, or ErrEventNotFound.
	Event(ctx context.Context, id string) (model.Event, error)

	// EventsByOwner returns every event created by ownerID, ordered by
	// (date, id).
	EventsByOwner(ctx context.Context, ownerID string) ([]model.Event, error)

	// Candidates returns events eligible for recommendation on the day of
	// now: not cancelled or completed, not dated in the past, and not owned
	// by excludeOwner. Ordered by (date, id).
	Candidates(ctx context.Context, excludeOwner string, now time.Time) ([]model.Event, error)

	// UpsertParticipant inserts or replaces a participant record. The
	// referenced event may arrive later; the record is kept either way.
	// Returns true when newly created.
	UpsertParticipant(ctx context.Context, p model.Participant) (bool, error)

	// Participants returns the participant records of an event, ordered by id.
	Participants(ctx context.Context, eventID string) ([]model.Participant, error)

	// ParticipationsByUser returns the user's registrations joined with each
	// event's category and tags, ordered by event (date, id).
	ParticipationsByUser(ctx context.Context, userID string) ([]model.Participation, error)

	// SetPreferences stores a user's signup-declared categories and tags.
	SetPreferences(ctx context.Context, prefs model.Preferences) error

	// Preferences returns the stored preferences for userID, or
	// ErrPreferencesNotFound when the user never declared any.
	Preferences(ctx context.Context, userID string) (model.Preferences, error)

	// EventCount and ParticipantCount report store sizes for monitoring.
	EventCount(ctx context.Context) int
	ParticipantCount(ctx context.Context) int
}
