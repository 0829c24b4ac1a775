// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	ingestqueue "github.com/eventease/insights/internal/adapters/mq/queue"
	workerpool "github.com/eventease/insights/internal/adapters/mq/worker"
	repository "github.com/eventease/insights/internal/adapters/repository"
	"github.com/eventease/insights/internal/domain/dedupe"
	"github.com/eventease/insights/internal/domain/feedback"
	"github.com/eventease/insights/internal/domain/model"
	"github.com/eventease/insights/internal/domain/profile"
	"github.com/eventease/insights/internal/domain/ranking"
	"github.com/eventease/insights/internal/domain/schedule"
	"github.com/eventease/insights/internal/domain/types"
	"github.com/eventease/insights/pkg/logger"
	"github.com/eventease/insights/pkg/metrics"
)

// ErrNotStarted is returned by read paths invoked before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the insights system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	deduper     dedupe.Deduper
	ingestQueue ingestqueue.Queue
	workerPool  *workerpool.Pool

	// Configuration
	workerCount        int
	queueSize          int
	dedupeSize         int
	shardCount         int
	maxRecommendations int
	defaultLimit       int
	scheduleStart      string
	scheduleLunch      string

	// now is injectable so recommendation output is reproducible in tests.
	now func() time.Time

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingestion queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithShardCount sets the number of shards in the record store.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithMaxRecommendations caps the per-request recommendation limit.
func WithMaxRecommendations(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxRecommendations = max
		}
	}
}

// WithDefaultRecommendations sets the recommendation count used when the
// request carries no limit.
func WithDefaultRecommendations(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithScheduleDefaults sets the default start and lunch clock times for
// generated schedules, both "HH:MM".
func WithScheduleDefaults(start, lunch string) Option {
	return func(s *Service) {
		if start != "" {
			s.scheduleStart = start
		}
		if lunch != "" {
			s.scheduleLunch = lunch
		}
	}
}

// WithClock sets the time source. All date arithmetic in recommendations,
// scheduling, and feedback flows through it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:        runtime.NumCPU() * 2,
		queueSize:          100000,
		dedupeSize:         50000,
		shardCount:         8,
		maxRecommendations: 20,
		defaultLimit:       ranking.DefaultLimit,
		scheduleStart:      "09:00",
		scheduleLunch:      "12:30",
		now:                time.Now,
		stopCh:             make(chan struct{}),
		logger:             nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting insights service...")

	s.store = repository.NewMemStore(ctx,
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.ingestQueue = ingestqueue.NewInMemoryQueue(
		ingestqueue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.ingestQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "insights service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("shards", s.shardCount),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping insights service...")

	// Shutdown closes the queue first, so workers drain accepted records and
	// exit as soon as the channel empties.
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(context.Background())
	}

	if s.ingestQueue != nil && !s.ingestQueue.IsClosed() {
		_ = s.ingestQueue.Close()
	}

	select {
	case <-s.stopCh:
		// Channel already closed
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "insights service stopped")
}

// SeenAndRecord atomically checks if an ingestion key was seen and records it
// if not. Returns true if the key was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordIngestDuplicate()
	}
	return seen
}

// Unrecord removes an ingestion key from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// IngestEvent submits an event record for asynchronous processing. Returns
// false on backpressure. Idempotency checks belong to the caller, which holds
// the deduper through SeenAndRecord and Unrecord.
func (s *Service) IngestEvent(ctx context.Context, e model.Event) bool {
	e = model.NormalizeEvent(e)
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	ok := s.ingestQueue.Enqueue(ctx, model.Ingest{
		Key:   "event:" + e.ID,
		Kind:  model.IngestEvent,
		Event: e,
	})
	if ok {
		metrics.UpdateQueueSize(s.ingestQueue.Len(ctx))
	}
	return ok
}

// IngestParticipant submits a participant record for asynchronous processing.
// Returns false on backpressure.
func (s *Service) IngestParticipant(ctx context.Context, p model.Participant) bool {
	p = model.NormalizeParticipant(p)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	ok := s.ingestQueue.Enqueue(ctx, model.Ingest{
		Key:         "participant:" + p.ID,
		Kind:        model.IngestParticipant,
		Participant: p,
	})
	if ok {
		metrics.UpdateQueueSize(s.ingestQueue.Len(ctx))
	}
	return ok
}

// SetPreferences stores a user's declared interests synchronously. Preference
// updates must be visible to the next recommendation request, so they bypass
// the ingestion queue.
func (s *Service) SetPreferences(ctx context.Context, prefs model.Preferences) error {
	prefs = model.NormalizePreferences(prefs)
	if prefs.UserID == "" {
		return fmt.Errorf("set preferences: %w", repository.ErrMissingID)
	}
	return s.store.SetPreferences(ctx, prefs)
}

// Recommendations computes the ranked recommendation set for a user.
// fallbackPrefs is applied only when the user has no stored preferences,
// letting brand-new users pass interests on the request itself.
func (s *Service) Recommendations(ctx context.Context, userID string, limit int, fallbackPrefs model.Preferences) (types.RecommendationSet, error) {
	if !s.started {
		return types.RecommendationSet{}, ErrNotStarted
	}

	start := time.Now()
	defer func() {
		metrics.RecordRecommendationLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxRecommendations {
		limit = s.maxRecommendations
	}

	prefs, err := s.store.Preferences(ctx, userID)
	if errors.Is(err, repository.ErrPreferencesNotFound) {
		fallbackPrefs.UserID = userID
		prefs = model.NormalizePreferences(fallbackPrefs)
	} else if err != nil {
		return types.RecommendationSet{}, fmt.Errorf("load preferences for %s: %w", userID, err)
	}

	created, err := s.store.EventsByOwner(ctx, userID)
	if err != nil {
		return types.RecommendationSet{}, fmt.Errorf("load events for %s: %w", userID, err)
	}
	participations, err := s.store.ParticipationsByUser(ctx, userID)
	if err != nil {
		return types.RecommendationSet{}, fmt.Errorf("load participations for %s: %w", userID, err)
	}

	p := profile.Build(created, participations, prefs)
	metrics.RecordProfileBuild()
	if p.ColdStart() {
		metrics.RecordColdStartProfile()
	}

	now := s.now()
	candidates, err := s.store.Candidates(ctx, userID, now)
	if err != nil {
		return types.RecommendationSet{}, fmt.Errorf("load candidates for %s: %w", userID, err)
	}

	set := ranking.Recommend(p, candidates, now, limit)
	metrics.RecordRecommendationsGenerated()

	s.logger.Debug(ctx, "recommendations computed",
		logger.String("userID", userID),
		logger.Int("candidates", len(candidates)),
		logger.Int("returned", len(set.Recommendations)),
		logger.Any("coldStart", p.ColdStart()),
	)
	return set, nil
}

// SchedulePlan synthesizes an event-day schedule for the given event.
func (s *Service) SchedulePlan(ctx context.Context, eventID string, c schedule.Constraints) (types.SchedulePlan, error) {
	if !s.started {
		return types.SchedulePlan{}, ErrNotStarted
	}

	e, err := s.store.Event(ctx, eventID)
	if err != nil {
		return types.SchedulePlan{}, fmt.Errorf("load event %s: %w", eventID, err)
	}
	participants, err := s.store.Participants(ctx, eventID)
	if err != nil {
		return types.SchedulePlan{}, fmt.Errorf("load participants for %s: %w", eventID, err)
	}

	if c.StartTime == "" {
		c.StartTime = s.scheduleStart
	}
	if c.LunchStart == "" {
		c.LunchStart = s.scheduleLunch
	}

	plan := schedule.Build(e, len(participants), c)
	metrics.RecordSchedulePlan()
	return plan, nil
}

// Feedback computes the post-event feedback analysis for the given event.
func (s *Service) Feedback(ctx context.Context, eventID string) (types.FeedbackAnalysis, error) {
	if !s.started {
		return types.FeedbackAnalysis{}, ErrNotStarted
	}

	e, err := s.store.Event(ctx, eventID)
	if err != nil {
		return types.FeedbackAnalysis{}, fmt.Errorf("load event %s: %w", eventID, err)
	}
	participants, err := s.store.Participants(ctx, eventID)
	if err != nil {
		return types.FeedbackAnalysis{}, fmt.Errorf("load participants for %s: %w", eventID, err)
	}

	analysis := feedback.Analyze(e, participants)
	metrics.RecordFeedbackAnalysis()
	return analysis, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.ingestQueue.Len(ctx)
		events := s.store.EventCount(ctx)
		participants := s.store.ParticipantCount(ctx)

		stats["queueLength"] = queueLen
		stats["totalEvents"] = events
		stats["totalParticipants"] = participants

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreEvents(events)
		metrics.UpdateStoreParticipants(participants)
		metrics.UpdateWorkerActiveCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
