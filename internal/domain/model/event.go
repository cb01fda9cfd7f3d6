// Package model contains domain models passed between layers.
package model

import "time"

// Label is a classifier verdict on a credit application.
type Label string

// Labels produced by the two classifiers.
const (
	LabelGood Label = "good"
	LabelBad  Label = "bad"
)

// Recommendation is the arbitrated outcome of a scoring attempt.
type Recommendation string

// Recommendations returned to callers.
const (
	RecommendApprove      Recommendation = "approve"
	RecommendReject       Recommendation = "reject"
	RecommendManualReview Recommendation = "manual_review"
)

// ErrorCategory tags a recorded failure with its taxonomy bucket.
type ErrorCategory string

// Error taxonomy. Every failure on the scoring path maps to exactly one.
const (
	// ErrorModelLoading marks a collaborator that failed to initialize at
	// startup. Scoring is unavailable but health/metrics keep serving.
	ErrorModelLoading ErrorCategory = "model_loading"

	// ErrorModelUnavailable marks a scoring attempt made while a
	// collaborator is known-absent.
	ErrorModelUnavailable ErrorCategory = "model_unavailable"

	// ErrorPrediction covers any other failure on the scoring path.
	ErrorPrediction ErrorCategory = "prediction_error"

	// ErrorTimeout marks a scoring attempt cancelled before both
	// classifiers returned.
	ErrorTimeout ErrorCategory = "timeout"
)

// RequestSummary is the sanitized audit subset of a credit request.
// Optional categorical fields keep their zero value when absent.
type RequestSummary struct {
	Age             int     `json:"age"`
	Sex             string  `json:"sex"`
	Job             int     `json:"job"`
	Housing         string  `json:"housing"`
	SavingAccounts  string  `json:"saving_accounts,omitempty"`
	CheckingAccount string  `json:"checking_account,omitempty"`
	CreditAmount    float64 `json:"credit_amount"`
	Duration        int     `json:"duration"`
	Purpose         string  `json:"purpose"`
}

// PredictionEvent records one completed scoring attempt. Immutable once
// recorded: both labels are always populated, a failed attempt produces an
// ErrorEvent instead.
type PredictionEvent struct {
	ID               string // request id, assigned by the service
	Timestamp        time.Time
	Request          RequestSummary
	LocalLabel       Label
	LocalProbability float64 // probability of "bad", 0.0-1.0
	RemoteLabel      Label
	RemoteConfidence float64 // 0.0-1.0
	Recommendation   Recommendation
	Latency          float64 // full scoring path wall clock, seconds
}

// Agreement reports whether both classifiers produced the same label.
func (e PredictionEvent) Agreement() bool {
	return e.LocalLabel == e.RemoteLabel
}

// ErrorEvent records one failed scoring attempt or lifecycle failure.
// Context is optional and may be nil.
type ErrorEvent struct {
	ID        string
	Timestamp time.Time
	Category  ErrorCategory
	Message   string
	Context   *RequestSummary
}
