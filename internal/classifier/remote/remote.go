// Package remote implements the language-model-based classifier client.
//
// The in-memory client simulates the external service: it honors context
// cancellation, sleeps for a configurable latency per call, and derives a
// deterministic verdict from the customer profile. A production backend
// can replace it behind the classifier.Remote interface.
package remote

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/riskfuse/riskfuse/internal/classifier"
	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// Default client configuration constants.
const (
	defaultMinLatency = 80 * time.Millisecond
	defaultMaxLatency = 150 * time.Millisecond
	defaultRandomSeed = 42
)

// Risk heuristic constants for the simulated verdict.
const (
	highAmountPerMonth = 400.0 // credit amount per month of duration
	youngApplicantAge  = 25
	longDurationMonths = 36
	riskyFactorCount   = 2 // factors at or above this classify as bad
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithLatencyRange sets the simulated per-call latency range.
func WithLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(c *Client) {
		if minLatency > 0 && maxLatency > minLatency {
			c.minLatency = minLatency
			c.maxLatency = maxLatency
		}
	}
}

// WithSeed sets the random seed for reproducible latency jitter.
func WithSeed(seed int64) Option {
	return func(c *Client) {
		c.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic seed for reproducible testing
	}
}

// Client is the simulated remote classifier.
type Client struct {
	minLatency time.Duration
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClient creates a simulated remote classifier with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		minLatency: defaultMinLatency,
		maxLatency: defaultMaxLatency,
		rng:        rand.New(rand.NewSource(defaultRandomSeed)), //nolint:gosec // deterministic seed for reproducible testing
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateDescription produces a prose description of the customer used as
// input to classification.
func (c *Client) GenerateDescription(ctx context.Context, req model.RequestSummary) (string, error) {
	if err := c.sleep(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"%d-year-old %s applicant (job category %d, %s housing) requesting %.0f for %s over %d months",
		req.Age, req.Sex, req.Job, req.Housing, req.CreditAmount, req.Purpose, req.Duration,
	), nil
}

// Classify returns the remote verdict for the customer and description.
func (c *Client) Classify(ctx context.Context, req model.RequestSummary, description string) (classifier.RemoteResult, error) {
	if err := c.sleep(ctx); err != nil {
		return classifier.RemoteResult{}, err
	}

	factors := riskFactors(req)
	label := model.LabelGood
	if len(factors) >= riskyFactorCount {
		label = model.LabelBad
	}

	// Confidence grows the further the profile sits from the decision
	// boundary.
	distance := len(factors) - riskyFactorCount
	if distance < 0 {
		distance = -distance - 1
	}
	confidence := 0.6 + 0.15*float64(distance)
	if confidence > 0.95 {
		confidence = 0.95
	}

	reasoning := fmt.Sprintf("no major risk factors identified: %s", description)
	if len(factors) > 0 {
		reasoning = fmt.Sprintf("risk factors %v for profile: %s", factors, description)
	}

	return classifier.RemoteResult{
		Label:      label,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}

// riskFactors lists the heuristic risk signals in a customer profile.
func riskFactors(req model.RequestSummary) []string {
	var factors []string
	if req.Duration > 0 && req.CreditAmount/float64(req.Duration) > highAmountPerMonth {
		factors = append(factors, "high_amount_per_month")
	}
	if req.Age < youngApplicantAge {
		factors = append(factors, "young_applicant")
	}
	if req.Duration > longDurationMonths {
		factors = append(factors, "long_duration")
	}
	if req.CheckingAccount == "" && req.SavingAccounts == "" {
		factors = append(factors, "no_known_accounts")
	}
	return factors
}

// sleep blocks for a random latency within the configured range, returning
// early with the context error on cancellation.
func (c *Client) sleep(ctx context.Context) error {
	c.mu.Lock()
	latency := c.minLatency + time.Duration(c.rng.Int63n(int64(c.maxLatency-c.minLatency)))
	c.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("remote classify cancelled: %w", ctx.Err())
	case <-time.After(latency):
		return nil
	}
}
