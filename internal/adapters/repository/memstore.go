package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/pkg/metrics"
)

// Sharded, in-memory Store implementation.
//
// Events and their participants live on the shard selected by the event id,
// so per-event reads take a single shard lock. Cross-cutting queries (by
// owner, by user) scan all shards; record volumes here are service-local
// working sets, not the platform's system of record.

const defaultShardCount = 8

// MemStore implements Store with hash-sharded maps.
type MemStore struct {
	shards []*shard

	prefsMu sync.RWMutex
	prefs   map[string]model.Preferences

	eventCount       int64
	participantCount int64
	countMu          sync.Mutex
}

type shard struct {
	mu sync.RWMutex
	// events by event id; participants by event id, then participant id.
	events       map[string]model.Event
	participants map[string]map[string]model.Participant
}

// NewMemStore creates an in-memory store with configuration options.
func NewMemStore(ctx context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		shards: nil,
		prefs:  make(map[string]model.Preferences),
	}
	count := defaultShardCount
	cfg := options{shardCount: count}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.shardCount > 0 {
		count = cfg.shardCount
	}
	s.shards = make([]*shard, count)
	for i := range s.shards {
		s.shards[i] = &shard{
			events:       make(map[string]model.Event),
			participants: make(map[string]map[string]model.Participant),
		}
	}
	metrics.UpdateStoreShardCount(count)
	return s
}

func (s *MemStore) shardFor(eventID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return s.shards[int(h.Sum32())%len(s.shards)]
}

// UpsertEvent inserts or replaces an event record.
func (s *MemStore) UpsertEvent(_ context.Context, e model.Event) (bool, error) {
	if e.ID == "" {
		return false, ErrMissingID
	}
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(e.ID)
	sh.mu.Lock()
	_, existed := sh.events[e.ID]
	sh.events[e.ID] = e
	sh.mu.Unlock()

	if !existed {
		s.countMu.Lock()
		s.eventCount++
		metrics.UpdateStoreEvents(int(s.eventCount))
		s.countMu.Unlock()
	}
	return !existed, nil
}

// Event returns the event with the given id.
func (s *MemStore) Event(_ context.Context, id string) (model.Event, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(id)
	sh.mu.RLock()
	e, ok := sh.events[id]
	sh.mu.RUnlock()
	if !ok {
		return model.Event{}, ErrEventNotFound
	}
	return e, nil
}

// EventsByOwner returns every event created by ownerID, ordered by (date, id).
func (s *MemStore) EventsByOwner(_ context.Context, ownerID string) ([]model.Event, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var out []model.Event
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, e := range sh.events {
			if e.OwnerID == ownerID {
				out = append(out, e)
			}
		}
		sh.mu.RUnlock()
	}
	sortEvents(out)
	return out, nil
}

// Candidates returns recommendation-eligible events in stable (date, id) order.
func (s *MemStore) Candidates(_ context.Context, excludeOwner string, now time.Time) ([]model.Event, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	var out []model.Event
	for _, sh := range s.shards {
		sh.mu.RLock()
		for _, e := range sh.events {
			if e.OwnerID == excludeOwner && excludeOwner != "" {
				continue
			}
			if e.Candidate(now) {
				out = append(out, e)
			}
		}
		sh.mu.RUnlock()
	}
	sortEvents(out)
	return out, nil
}

// UpsertParticipant inserts or replaces a participant record. The referenced
// event need not exist yet: ingestion is asynchronous, so a participant can
// land before its event. The record is kept and joins the event whenever it
// arrives; read paths skip participants whose event never shows up.
func (s *MemStore) UpsertParticipant(_ context.Context, p model.Participant) (bool, error) {
	if p.ID == "" || p.EventID == "" {
		return false, ErrMissingID
	}
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(p.EventID)
	sh.mu.Lock()
	byID := sh.participants[p.EventID]
	if byID == nil {
		byID = make(map[string]model.Participant)
		sh.participants[p.EventID] = byID
	}
	_, existed := byID[p.ID]
	byID[p.ID] = p
	sh.mu.Unlock()

	if !existed {
		s.countMu.Lock()
		s.participantCount++
		metrics.UpdateStoreParticipants(int(s.participantCount))
		s.countMu.Unlock()
	}
	return !existed, nil
}

// Participants returns the participant records of an event, ordered by id.
func (s *MemStore) Participants(_ context.Context, eventID string) ([]model.Participant, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	sh := s.shardFor(eventID)
	sh.mu.RLock()
	if _, ok := sh.events[eventID]; !ok {
		sh.mu.RUnlock()
		return nil, ErrEventNotFound
	}
	byID := sh.participants[eventID]
	out := make([]model.Participant, 0, len(byID))
	for _, p := range byID {
		out = append(out, p)
	}
	sh.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ParticipationsByUser joins a user's registrations with event category/tags.
func (s *MemStore) ParticipationsByUser(_ context.Context, userID string) ([]model.Participation, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	type joined struct {
		event model.Event
		part  model.Participation
	}
	var rows []joined
	for _, sh := range s.shards {
		sh.mu.RLock()
		for eventID, byID := range sh.participants {
			e, ok := sh.events[eventID]
			if !ok {
				continue
			}
			for _, p := range byID {
				if p.UserID != userID {
					continue
				}
				rows = append(rows, joined{
					event: e,
					part: model.Participation{
						EventID:  eventID,
						Category: e.Category,
						Tags:     e.Tags,
						Status:   p.Status,
					},
				})
			}
		}
		sh.mu.RUnlock()
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].event.Date.Equal(rows[j].event.Date) {
			return rows[i].event.Date.Before(rows[j].event.Date)
		}
		return rows[i].event.ID < rows[j].event.ID
	})
	out := make([]model.Participation, len(rows))
	for i, r := range rows {
		out[i] = r.part
	}
	return out, nil
}

// SetPreferences stores a user's signup preferences.
func (s *MemStore) SetPreferences(_ context.Context, prefs model.Preferences) error {
	if prefs.UserID == "" {
		return ErrMissingID
	}
	s.prefsMu.Lock()
	s.prefs[prefs.UserID] = prefs
	s.prefsMu.Unlock()
	return nil
}

// Preferences returns the stored preferences for userID.
func (s *MemStore) Preferences(_ context.Context, userID string) (model.Preferences, error) {
	s.prefsMu.RLock()
	prefs, ok := s.prefs[userID]
	s.prefsMu.RUnlock()
	if !ok {
		return model.Preferences{}, ErrPreferencesNotFound
	}
	return prefs, nil
}

// EventCount reports the number of stored events.
func (s *MemStore) EventCount(_ context.Context) int {
	s.countMu.Lock()
	defer s.countMu.Unlock()
	return int(s.eventCount)
}

// ParticipantCount reports the number of stored participant records.
func (s *MemStore) ParticipantCount(_ context.Context) int {
	s.countMu.Lock()
	defer s.countMu.Unlock()
	return int(s.participantCount)
}

// sortEvents orders events by (date, id) so listings are deterministic.
func sortEvents(events []model.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
}
