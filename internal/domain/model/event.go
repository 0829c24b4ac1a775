// Package model contains domain records passed between layers.
package model

import "time"

// EventStatus is the lifecycle state of an event record.
type EventStatus string

// Event lifecycle states.
const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is one of the known event states.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Event represents an event record as supplied by the upstream platform.
// Optional fields (Tags, Description, Location, MaxParticipants) default to
// their zero values; the insight computations are total over partial records.
type Event struct {
	ID          string
	Title       string
	Description string
	Category    string
	Tags        []string
	Date        time.Time // calendar date of the event day
	StartTime   string    // "HH:MM", informational
	Location    string
	IsVirtual   bool
	// MaxParticipants is the stated capacity; 0 means unstated.
	MaxParticipants int
	Status          EventStatus
	// OwnerID identifies the organizer; owners are excluded from their own
	// recommendation candidates.
	OwnerID string
}

// Candidate reports whether the event may be offered as a recommendation
// candidate on the given day: not cancelled or completed, and not dated in
// the past. Day proximity itself is scored, not filtered, beyond this.
func (e Event) Candidate(now time.Time) bool {
	if e.Status == StatusCancelled || e.Status == StatusCompleted {
		return false
	}
	y1, m1, d1 := now.Date()
	y2, m2, d2 := e.Date.Date()
	today := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	day := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return !day.Before(today)
}
