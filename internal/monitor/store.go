// Package monitor tracks every prediction and error produced by the scoring
// path and derives summary metrics from them on demand.
//
// The Store is the only mutable shared state in the service: writers append
// under an exclusive lock, readers take point-in-time copies under a shared
// lock, so aggregation never observes a partially written event.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/riskfuse/riskfuse/internal/domain/model"
	"github.com/riskfuse/riskfuse/pkg/metrics"
)

// CollaboratorStatus carries the last-known availability of the two
// external classifiers.
type CollaboratorStatus struct {
	Local  bool `json:"local"`
	Remote bool `json:"remote"`
}

// Snapshot is a consistent, immutable view of the store contents. The
// slices are copies; callers may read them without further locking.
type Snapshot struct {
	Predictions   []model.PredictionEvent
	Errors        []model.ErrorEvent
	Collaborators CollaboratorStatus
	TakenAt       time.Time
}

// Store is an append-only, in-memory record of scoring outcomes for the
// current process lifetime. Events are never mutated or deleted, except
// oldest-first eviction when a retention limit is configured.
type Store struct {
	mu            sync.RWMutex
	predictions   []model.PredictionEvent
	errors        []model.ErrorEvent
	collaborators CollaboratorStatus

	retention int // max events per kind, 0 = unbounded
	now       func() time.Time
}

// New creates a Store. With no options the store is unbounded and both
// collaborators are assumed available until reported otherwise.
func New(opts ...Option) *Store {
	s := &Store{
		collaborators: CollaboratorStatus{Local: true, Remote: true},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordPrediction appends a completed scoring outcome. It never rejects an
// event; when the retention limit is reached the oldest prediction is
// evicted first.
func (s *Store) RecordPrediction(ctx context.Context, e model.PredictionEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}

	s.mu.Lock()
	if s.retention > 0 && len(s.predictions) >= s.retention {
		s.predictions = s.predictions[1:]
	}
	s.predictions = append(s.predictions, e)
	size := len(s.predictions)
	s.mu.Unlock()

	metrics.RecordPrediction(string(e.Recommendation))
	metrics.RecordScoringLatency(e.Latency * 1000)
	metrics.UpdatePredictionStoreSize(size)
}

// RecordError appends a failure outcome under the same retention discipline.
func (s *Store) RecordError(ctx context.Context, e model.ErrorEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}

	s.mu.Lock()
	if s.retention > 0 && len(s.errors) >= s.retention {
		s.errors = s.errors[1:]
	}
	s.errors = append(s.errors, e)
	size := len(s.errors)
	s.mu.Unlock()

	metrics.RecordScoringError(string(e.Category))
	metrics.UpdateErrorStoreSize(size)
}

// SetLocalAvailable records the last-known availability of the local model.
func (s *Store) SetLocalAvailable(up bool) {
	s.mu.Lock()
	s.collaborators.Local = up
	s.mu.Unlock()
	metrics.UpdateCollaboratorUp("local", up)
}

// SetRemoteAvailable records the last-known availability of the remote
// classifier.
func (s *Store) SetRemoteAvailable(up bool) {
	s.mu.Lock()
	s.collaborators.Remote = up
	s.mu.Unlock()
	metrics.UpdateCollaboratorUp("remote", up)
}

// Collaborators returns the last-known availability of both classifiers.
func (s *Store) Collaborators() CollaboratorStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collaborators
}

// Snapshot returns a point-in-time copy of all recorded events. Concurrent
// writers see no interference; the returned slices never change.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Predictions:   make([]model.PredictionEvent, len(s.predictions)),
		Errors:        make([]model.ErrorEvent, len(s.errors)),
		Collaborators: s.collaborators,
		TakenAt:       s.now(),
	}
	copy(snap.Predictions, s.predictions)
	copy(snap.Errors, s.errors)
	return snap
}

// Counts returns the number of predictions and errors currently retained.
func (s *Store) Counts() (predictions, errors int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.predictions), len(s.errors)
}
