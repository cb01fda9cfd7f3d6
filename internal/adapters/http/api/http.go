// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	app "github.com/riskfuse/riskfuse/internal/app"
	"github.com/riskfuse/riskfuse/internal/domain/health"
	"github.com/riskfuse/riskfuse/internal/domain/model"
	"github.com/riskfuse/riskfuse/internal/monitor"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Score runs the full scoring path for a sanitized request.
	Score(ctx context.Context, req model.RequestSummary) (app.ScoreResult, error)

	// Metrics summarizes the current event store contents.
	Metrics(ctx context.Context) monitor.MetricsSnapshot

	// Health evaluates the current health verdict.
	Health(ctx context.Context) health.Report

	// ReportError appends an ErrorEvent. It never fails.
	ReportError(ctx context.Context, category model.ErrorCategory, message string, reqCtx *model.RequestSummary)
}

// Server wires HTTP routes for the scoring API.
type Server struct {
	rootHandler      *RootHandler
	predictHandler   *PredictHandler
	metricsHandler   *MetricsHandler
	healthHandler    *HealthHandler
	errorsHandler    *ErrorsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		rootHandler:      NewRootHandler(),
		predictHandler:   NewPredictHandler(deps),
		metricsHandler:   NewMetricsHandler(deps),
		healthHandler:    NewHealthHandler(deps),
		errorsHandler:    NewErrorsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/", MetricsMiddleware(s.rootHandler.HandleRoot, "root"))
	mux.HandleFunc("/predict", MetricsMiddleware(s.predictHandler.HandlePredict, "predict"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.metricsHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/metrics/prom", s.metricsHandler.HandlePrometheus)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/errors", MetricsMiddleware(s.errorsHandler.HandleReportError, "errors"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// scoringStatus maps a scoring failure to its HTTP status and error code.
func scoringStatus(err error) (int, string) {
	var scErr *app.ScoringError
	if errors.As(err, &scErr) {
		switch scErr.Category {
		case model.ErrorModelUnavailable, model.ErrorModelLoading:
			return http.StatusServiceUnavailable, string(scErr.Category)
		case model.ErrorTimeout:
			return http.StatusGatewayTimeout, string(scErr.Category)
		default:
			return http.StatusInternalServerError, string(scErr.Category)
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "unavailable") {
		return http.StatusServiceUnavailable, string(model.ErrorModelUnavailable)
	}
	return http.StatusInternalServerError, string(model.ErrorPrediction)
}
