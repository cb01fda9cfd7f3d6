// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskfuse/riskfuse/pkg/metrics"
)

// MetricsHandler serves the JSON metrics summary and the Prometheus
// exposition endpoint.
type MetricsHandler struct {
	deps Dependencies
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(deps Dependencies) *MetricsHandler {
	return &MetricsHandler{deps: deps}
}

// HandleMetrics handles GET /metrics requests. The summary is recomputed
// from the event store on every query.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Metrics(r.Context()))
}

// HandlePrometheus handles GET /metrics/prom requests using the custom
// metrics registry.
func (h *MetricsHandler) HandlePrometheus(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
