// Package api provides HTTP handlers for the domainscout usability assessment service.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/zary0/domainscout/internal/analyzer"
	"github.com/zary0/domainscout/internal/intel"
	"github.com/zary0/domainscout/internal/types"
)

// serviceName is reported by the health endpoint
const serviceName = "domainscout"

// Analyzer runs the assessment pipeline for single domains and batches
type Analyzer interface {
	Analyze(ctx context.Context, input string) (*types.Analysis, error)
	AnalyzeBatch(ctx context.Context, inputs []string) []analyzer.BatchResult
}

// IntelManager hydrates and reports on the threat feed store
type IntelManager interface {
	Hydrate(ctx context.Context) (intel.HydrationSummary, error)
	Status() intel.Status
}

// Notifier publishes analysis summaries
type Notifier interface {
	NotifyAnalysis(ctx context.Context, a *types.Analysis) error
}

// Handler manages API endpoints
type Handler struct {
	analyzer     Analyzer
	intel        IntelManager
	notifier     Notifier
	maxBodySize  int64
	maxBatchSize int
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string        `json:"status" example:"healthy"`
	Service   string        `json:"service" example:"domainscout"`
	Timestamp string        `json:"timestamp" example:"2024-01-15T10:30:00Z"`
	Intel     *intel.Status `json:"intel,omitempty"`
	Notify    bool          `json:"notifications_enabled"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Notify:    h.notifier != nil,
	}

	if h.intel != nil {
		status := h.intel.Status()
		response.Intel = &status
	}

	writeJSON(w, http.StatusOK, response)
}

// limitBody applies the configured request body cap
func (h *Handler) limitBody(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}
}

// errorEnvelope is the failure shape shared by every endpoint
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error"`
}

// respondWithError writes a failed envelope with a normalized error payload
func respondWithError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}
