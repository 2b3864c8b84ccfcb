package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/zary0/domainscout/internal/intel"
)

// IntelHydrateResponse represents the response from the hydrate endpoint.
type IntelHydrateResponse struct {
	// Success indicates whether the hydration completed successfully.
	Success bool `json:"success"`
	// Data holds the hydration summary when successful.
	Data *intel.HydrationSummary `json:"data,omitempty"`
	// Error is the normalized error payload when hydration fails.
	Error *Error `json:"error,omitempty"`
}

// IntelStatusResponse represents the response from the status endpoint.
type IntelStatusResponse struct {
	Success bool          `json:"success"`
	Data    *intel.Status `json:"data,omitempty"`
	Error   *Error        `json:"error,omitempty"`
}

// handleIntelHydrate triggers a fresh hydration of all configured intel feeds.
func (h *Handler) handleIntelHydrate(w http.ResponseWriter, r *http.Request) {
	if h.intel == nil {
		respondWithError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrIntelNotConfigured.Error())
		return
	}

	summary, err := h.intel.Hydrate(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := errCodeInternal

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
			code = errCodeTimeout
		case errors.Is(err, intel.ErrHydrationInProgress):
			status = http.StatusConflict
			code = errCodeConflict
		case errors.Is(err, intel.ErrNoUsableFeeds):
			status = http.StatusServiceUnavailable
			code = errCodeUnavailable
		}

		respondWithError(w, status, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, IntelHydrateResponse{
		Success: true,
		Data:    &summary,
	})
}

// handleIntelStatus reports whether the feed store is hydrated and how large it is.
func (h *Handler) handleIntelStatus(w http.ResponseWriter, _ *http.Request) {
	if h.intel == nil {
		respondWithError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrIntelNotConfigured.Error())
		return
	}

	status := h.intel.Status()

	writeJSON(w, http.StatusOK, IntelStatusResponse{
		Success: true,
		Data:    &status,
	})
}
