// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// serviceVersion is reported by the root endpoint.
const serviceVersion = "1.0.0"

// rootResponse is the service info served at /.
type rootResponse struct {
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// RootHandler serves service info at the root path.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, rootResponse{
		Message: "Credit Risk Detection API",
		Status:  "running",
		Version: serviceVersion,
		Endpoints: map[string]string{
			"predict":   "/predict",
			"metrics":   "/metrics",
			"health":    "/healthz",
			"dashboard": "/dashboard",
		},
	})
}
