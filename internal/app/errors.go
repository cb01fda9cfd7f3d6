package service

import (
	"errors"
	"fmt"

	"github.com/riskfuse/riskfuse/internal/domain/model"
)

// Sentinel kinds for scoring errors.
var (
	ErrModelUnavailable = errors.New("models unavailable")
)

// ScoringError carries the taxonomy category of a failed scoring attempt
// so the transport layer can map it to a response without string matching.
type ScoringError struct {
	Category model.ErrorCategory
	Err      error
	msg      string
}

func (e *ScoringError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("%s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Category, e.msg, e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}
