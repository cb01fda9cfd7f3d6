// Package classifier defines the contracts for the two external risk
// classifiers consumed by the scoring path.
//
// Both collaborators are black boxes to the rest of the service: the local
// model answers with a label and probability, the remote one with a label,
// a confidence and its reasoning. All latency, retries and failure modes
// live behind these interfaces.
package classifier

import (
	"context"

	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// LocalResult is the local statistical model's verdict.
type LocalResult struct {
	Label       model.Label
	Probability float64 // probability of "bad", 0.0-1.0
}

// RemoteResult is the remote language-model classifier's verdict.
type RemoteResult struct {
	Label      model.Label
	Confidence float64 // 0.0-1.0
	Reasoning  string
}

// Local is the in-process statistical model.
type Local interface {
	// Predict classifies a credit request, honoring ctx for cancellation.
	Predict(ctx context.Context, req model.RequestSummary) (LocalResult, error)
}

// Remote is the external language-model-based classifier. Classification is
// a two-step call: a generated customer description feeds the classifier
// prompt.
type Remote interface {
	// GenerateDescription produces a prose description of the customer.
	GenerateDescription(ctx context.Context, req model.RequestSummary) (string, error)

	// Classify returns the remote verdict for the customer and description.
	Classify(ctx context.Context, req model.RequestSummary, description string) (RemoteResult, error)
}
