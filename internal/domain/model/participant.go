package model

// ParticipantStatus is the registration state of a participant record.
type ParticipantStatus string

// Participant registration states.
const (
	ParticipantRegistered ParticipantStatus = "registered"
	ParticipantConfirmed  ParticipantStatus = "confirmed"
	ParticipantPending    ParticipantStatus = "pending"
	ParticipantAttended   ParticipantStatus = "attended"
	ParticipantCancelled  ParticipantStatus = "cancelled"
	ParticipantRejected   ParticipantStatus = "rejected"
	ParticipantCheckedIn  ParticipantStatus = "checked_in"
)

// Valid reports whether s is one of the known registration states.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantRegistered, ParticipantConfirmed, ParticipantPending,
		ParticipantAttended, ParticipantCancelled, ParticipantRejected,
		ParticipantCheckedIn:
		return true
	}
	return false
}

// Attended reports whether the status counts as having shown up.
// Both post-event "attended" marks and QR check-ins qualify.
func (s ParticipantStatus) Attended() bool {
	return s == ParticipantAttended || s == ParticipantCheckedIn
}

// Participant represents a single registration for an event.
type Participant struct {
	ID      string
	EventID string
	UserID  string
	Status  ParticipantStatus
}

// Participation is a user's registration joined with the category/tags of the
// event it belongs to, as needed for profile building.
type Participation struct {
	EventID  string
	Category string
	Tags     []string
	Status   ParticipantStatus
}

// Preferences holds the categories and tags a user declared at signup.
type Preferences struct {
	UserID     string
	Categories []string
	Tags       []string
}
