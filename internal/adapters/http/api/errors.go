// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// errorReport mirrors the request schema for POST /errors.
type errorReport struct {
	Category string                `json:"category"`
	Message  string                `json:"message"`
	Context  *model.RequestSummary `json:"context,omitempty"`
}

func (e errorReport) validate() error {
	switch {
	case strings.TrimSpace(e.Category) == "":
		return fmt.Errorf("%w: missing category", ErrBadRequest)
	case strings.TrimSpace(e.Message) == "":
		return fmt.Errorf("%w: missing message", ErrBadRequest)
	}
	return nil
}

type ackResponse struct {
	Status string `json:"status"`
}

// ErrorsHandler handles external error reports.
type ErrorsHandler struct {
	deps Dependencies
}

// NewErrorsHandler creates a new errors handler.
func NewErrorsHandler(deps Dependencies) *ErrorsHandler {
	return &ErrorsHandler{deps: deps}
}

// HandleReportError handles POST /errors requests. Recording never fails;
// only malformed payloads are rejected.
func (h *ErrorsHandler) HandleReportError(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var report errorReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := report.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	h.deps.ReportError(r.Context(), model.ErrorCategory(report.Category), report.Message, report.Context)
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "recorded"})
}
