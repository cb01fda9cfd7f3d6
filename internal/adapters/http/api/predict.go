// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// creditRequest mirrors the request schema for POST /predict.
// saving_accounts and checking_account are optional; absence is explicit,
// not a sentinel value.
type creditRequest struct {
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

func (c creditRequest) validate() error {
	switch {
	case c.Age <= 0:
		return errors.New("age must be positive")
	case strings.TrimSpace(c.Sex) == "":
		return errors.New("missing sex")
	case c.Job < 0:
		return errors.New("job must not be negative")
	case strings.TrimSpace(c.Housing) == "":
		return errors.New("missing housing")
	case c.CreditAmount <= 0:
		return errors.New("credit_amount must be positive")
	case c.Duration <= 0:
		return errors.New("duration must be positive")
	case strings.TrimSpace(c.Purpose) == "":
		return errors.New("missing purpose")
	}
	return nil
}

func (c creditRequest) summary() model.RequestSummary {
	return model.RequestSummary{
		Age:             c.Age,
		Sex:             c.Sex,
		Job:             c.Job,
		Housing:         c.Housing,
		SavingAccounts:  c.SavingAccounts,
		CheckingAccount: c.CheckingAccount,
		CreditAmount:    c.CreditAmount,
		Duration:        c.Duration,
		Purpose:         c.Purpose,
	}
}

// predictionResponse mirrors the response schema for POST /predict.
type predictionResponse struct {
	RequestID        string  `json:"request_id"`
	Recommendation   string  `json:"recommendation"`
	LocalLabel       string  `json:"local_label"`
	LocalProbability float64 `json:"local_probability"`
	RemoteLabel      string  `json:"remote_label"`
	RemoteConfidence float64 `json:"remote_confidence"`
	RemoteReasoning  string  `json:"remote_reasoning"`
	ResponseTime     float64 `json:"response_time"`
	Timestamp        string  `json:"timestamp"`
}

// PredictHandler handles scoring requests.
type PredictHandler struct {
	deps Dependencies
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(deps Dependencies) *PredictHandler {
	return &PredictHandler{deps: deps}
}

// HandlePredict handles POST /predict requests.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req creditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	result, err := h.deps.Score(r.Context(), req.summary())
	if err != nil {
		status, code := scoringStatus(err)
		writeError(w, status, code, err)
		return
	}

	e := result.Event
	writeJSON(w, http.StatusOK, predictionResponse{
		RequestID:        e.ID,
		Recommendation:   string(e.Recommendation),
		LocalLabel:       string(e.LocalLabel),
		LocalProbability: e.LocalProbability,
		RemoteLabel:      string(e.RemoteLabel),
		RemoteConfidence: e.RemoteConfidence,
		RemoteReasoning:  result.Reasoning,
		ResponseTime:     e.Latency,
		Timestamp:        e.Timestamp.Format(time.RFC3339Nano),
	})
}
