// Package service provides the core scoring service that implements the
// dependencies required by the HTTP API.
//
// The Service is the single explicitly constructed context object of the
// process: it owns the event store, the two classifiers and the health
// evaluator, and is injected into every handler at startup. There is no
// package-level mutable state.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riskfuse/riskfuse/internal/classifier"
	"github.com/riskfuse/riskfuse/internal/classifier/local"
	"github.com/riskfuse/riskfuse/internal/classifier/remote"
	"github.com/riskfuse/riskfuse/internal/domain/arbitration"
	"github.com/riskfuse/riskfuse/internal/domain/health"
	"github.com/riskfuse/riskfuse/internal/domain/model"
	"github.com/riskfuse/riskfuse/internal/monitor"
	"github.com/riskfuse/riskfuse/pkg/logger"
)

// ScoreResult is the outcome of one successful scoring attempt.
type ScoreResult struct {
	Event     model.PredictionEvent
	Reasoning string
}

// Service implements the API dependencies for the scoring system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     *monitor.Store
	evaluator *health.Evaluator
	local     classifier.Local
	remote    classifier.Remote

	// Configuration
	modelPath          string
	retentionLimit     int
	errorRateThreshold float64
	remoteMinLatency   time.Duration
	remoteMaxLatency   time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithModelPath sets the local model file location.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithRetentionLimit bounds the event store per event kind.
func WithRetentionLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.retentionLimit = n
		}
	}
}

// WithErrorRateThreshold sets the health degradation threshold.
func WithErrorRateThreshold(t float64) Option {
	return func(s *Service) {
		if t > 0 && t <= 1 {
			s.errorRateThreshold = t
		}
	}
}

// WithRemoteLatencyRange sets the simulated remote classifier latency.
func WithRemoteLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency > 0 && maxLatency > minLatency {
			s.remoteMinLatency = minLatency
			s.remoteMaxLatency = maxLatency
		}
	}
}

// WithLocalClassifier injects a local classifier, skipping the model file
// load on Start. Used by tests and alternative deployments.
func WithLocalClassifier(c classifier.Local) Option {
	return func(s *Service) {
		s.local = c
	}
}

// WithRemoteClassifier injects a remote classifier implementation.
func WithRemoteClassifier(c classifier.Remote) Option {
	return func(s *Service) {
		s.remote = c
	}
}

// WithClock injects a time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		modelPath:          "models/local_model.json",
		errorRateThreshold: 0.5,
		remoteMinLatency:   80 * time.Millisecond,
		remoteMaxLatency:   150 * time.Millisecond,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components. A local model load failure is
// not fatal to the process: scoring becomes unavailable while health and
// metrics keep serving.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	s.store = monitor.New(
		monitor.WithRetentionLimit(s.retentionLimit),
		monitor.WithClock(s.now),
	)
	s.evaluator = health.NewEvaluator(
		health.WithErrorRateThreshold(s.errorRateThreshold),
	)

	if s.local == nil {
		m, err := local.Load(s.modelPath)
		if err != nil {
			s.logger.Error(ctx, "local model load failed",
				logger.String("path", s.modelPath), logger.Error(err))
			s.store.RecordError(ctx, model.ErrorEvent{
				ID:       uuid.NewString(),
				Category: model.ErrorModelLoading,
				Message:  err.Error(),
			})
			s.store.SetLocalAvailable(false)
		} else {
			s.local = m
			s.logger.Info(ctx, "local model loaded", logger.String("path", s.modelPath))
		}
	}

	if s.remote == nil {
		s.remote = remote.NewClient(
			remote.WithLatencyRange(s.remoteMinLatency, s.remoteMaxLatency),
		)
	}

	s.store.SetLocalAvailable(s.local != nil)
	s.store.SetRemoteAvailable(s.remote != nil)

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.Bool("localModel", s.local != nil),
		logger.Bool("remoteClassifier", s.remote != nil),
		logger.Int("retentionLimit", s.retentionLimit),
	)
	return nil
}

// Stop shuts the service down. The event store lives only for the process
// lifetime, so there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// Score runs the full scoring path for one sanitized request: both
// classifiers, arbitration, then event recording. Every failure ends in
// exactly one ErrorEvent and a typed error to the caller; no partial
// PredictionEvent is ever written.
func (s *Service) Score(ctx context.Context, req model.RequestSummary) (ScoreResult, error) {
	start := s.now()
	id := uuid.NewString()

	s.mu.RLock()
	localModel, remoteClient := s.local, s.remote
	s.mu.RUnlock()

	if localModel == nil || remoteClient == nil {
		e := &ScoringError{
			Category: model.ErrorModelUnavailable,
			Err:      ErrModelUnavailable,
		}
		s.recordFailure(ctx, id, req, e)
		return ScoreResult{}, e
	}

	localRes, err := localModel.Predict(ctx, req)
	if err != nil {
		e := s.classifyFailure(ctx, "local predict failed", err)
		s.recordFailure(ctx, id, req, e)
		return ScoreResult{}, e
	}

	description, err := remoteClient.GenerateDescription(ctx, req)
	if err != nil {
		e := s.classifyFailure(ctx, "remote description failed", err)
		s.recordFailure(ctx, id, req, e)
		return ScoreResult{}, e
	}

	remoteRes, err := remoteClient.Classify(ctx, req, description)
	if err != nil {
		e := s.classifyFailure(ctx, "remote classify failed", err)
		s.recordFailure(ctx, id, req, e)
		return ScoreResult{}, e
	}

	recommendation := arbitration.Decide(localRes.Label, remoteRes.Label)
	latency := s.now().Sub(start).Seconds()

	event := model.PredictionEvent{
		ID:               id,
		Timestamp:        s.now(),
		Request:          req,
		LocalLabel:       localRes.Label,
		LocalProbability: localRes.Probability,
		RemoteLabel:      remoteRes.Label,
		RemoteConfidence: remoteRes.Confidence,
		Recommendation:   recommendation,
		Latency:          latency,
	}
	s.store.RecordPrediction(ctx, event)

	s.logger.Debug(ctx, "prediction recorded",
		logger.String("requestID", id),
		logger.String("recommendation", string(recommendation)),
		logger.Float64("latencySeconds", latency),
	)

	return ScoreResult{Event: event, Reasoning: remoteRes.Reasoning}, nil
}

// ReportError appends an ErrorEvent on behalf of an external caller.
// It never fails.
func (s *Service) ReportError(ctx context.Context, category model.ErrorCategory, message string, reqCtx *model.RequestSummary) {
	s.store.RecordError(ctx, model.ErrorEvent{
		ID:       uuid.NewString(),
		Category: category,
		Message:  message,
		Context:  reqCtx,
	})
}

// Metrics summarizes the current event store contents.
func (s *Service) Metrics(ctx context.Context) monitor.MetricsSnapshot {
	return monitor.Summarize(s.store.Snapshot(ctx))
}

// Health evaluates the current health verdict.
func (s *Service) Health(ctx context.Context) health.Report {
	snap := monitor.Summarize(s.store.Snapshot(ctx))
	collaborators := s.store.Collaborators()

	s.mu.RLock()
	evaluator := s.evaluator
	s.mu.RUnlock()

	return health.Report{
		Status:        evaluator.Evaluate(snap, collaborators),
		Collaborators: collaborators,
		Timestamp:     s.now(),
	}
}

// SetErrorRateThreshold swaps the health evaluator threshold at runtime.
// Called on config reload.
func (s *Service) SetErrorRateThreshold(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluator = health.NewEvaluator(health.WithErrorRateThreshold(t))
	s.errorRateThreshold = t
}

// classifyFailure maps a scoring path error to its taxonomy category.
// Cancellation observed on the context or the error chain is a timeout;
// everything else on this path is a prediction error.
func (s *Service) classifyFailure(ctx context.Context, msg string, err error) *ScoringError {
	category := model.ErrorPrediction
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		category = model.ErrorTimeout
	}
	return &ScoringError{Category: category, Err: err, msg: msg}
}

// recordFailure writes the single ErrorEvent for a failed scoring attempt.
func (s *Service) recordFailure(ctx context.Context, id string, req model.RequestSummary, e *ScoringError) {
	s.store.RecordError(ctx, model.ErrorEvent{
		ID:       id,
		Category: e.Category,
		Message:  e.Error(),
		Context:  &req,
	})
	s.logger.Warn(ctx, "scoring attempt failed",
		logger.String("requestID", id),
		logger.String("category", string(e.Category)),
		logger.Error(e.Err),
	)
}
