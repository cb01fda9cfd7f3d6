// Package local implements the in-process statistical classifier backed by
// a model file of logistic weights and categorical label encoders.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/riskfuse/riskfuse/internal/classifier"
	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// badLabelThreshold turns the model probability into a label: probability
// of "bad" above 0.5 classifies the request as bad.
const badLabelThreshold = 0.5

// modelFile mirrors the on-disk JSON layout of an exported model.
type modelFile struct {
	Bias     float64                       `json:"bias"`
	Weights  map[string]float64            `json:"weights"`
	Encoders map[string]map[string]float64 `json:"encoders"`
}

// Model is a file-loaded logistic model over the encoded request features.
type Model struct {
	bias     float64
	weights  map[string]float64
	encoders map[string]map[string]float64
}

// Load reads and validates a model file. A failure here is a model_loading
// condition: the caller keeps serving health and metrics but scoring stays
// unavailable.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}

	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}
	if len(mf.Weights) == 0 {
		return nil, fmt.Errorf("%w: model has no weights", ErrModelLoad)
	}

	return &Model{
		bias:     mf.Bias,
		weights:  mf.Weights,
		encoders: mf.Encoders,
	}, nil
}

// Predict classifies a credit request with the loaded weights.
func (m *Model) Predict(ctx context.Context, req model.RequestSummary) (classifier.LocalResult, error) {
	if err := ctx.Err(); err != nil {
		return classifier.LocalResult{}, fmt.Errorf("predict cancelled: %w", err)
	}

	features := map[string]float64{
		"age":              float64(req.Age),
		"credit_amount":    req.CreditAmount,
		"duration":         float64(req.Duration),
		"job":              float64(req.Job),
		"sex":              m.encode("sex", req.Sex),
		"housing":          m.encode("housing", req.Housing),
		"saving_accounts":  m.encode("saving_accounts", req.SavingAccounts),
		"checking_account": m.encode("checking_account", req.CheckingAccount),
		"purpose":          m.encode("purpose", req.Purpose),
	}

	z := m.bias
	for name, value := range features {
		z += m.weights[name] * value
	}
	probability := sigmoid(z)

	label := model.LabelGood
	if probability > badLabelThreshold {
		label = model.LabelBad
	}

	return classifier.LocalResult{
		Label:       label,
		Probability: probability,
	}, nil
}

// encode maps a categorical value through the column's label encoder.
// Absent or unknown values encode to 0 explicitly.
func (m *Model) encode(column, value string) float64 {
	if value == "" {
		return 0
	}
	enc, ok := m.encoders[column]
	if !ok {
		return 0
	}
	return enc[value]
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
