package model

// IngestKind discriminates the record types flowing through the ingestion
// pipeline.
type IngestKind string

// Ingest record kinds.
const (
	IngestEvent       IngestKind = "event"
	IngestParticipant IngestKind = "participant"
)

// Ingest is a single ingestion message: exactly one of Event or Participant
// is populated, selected by Kind. Key is the idempotency key assigned at the
// API boundary.
type Ingest struct {
	Key         string
	Kind        IngestKind
	Event       Event
	Participant Participant
}
