package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/zary0/domainscout/internal/analyzer"
	"github.com/zary0/domainscout/internal/domain"
	"github.com/zary0/domainscout/internal/types"
)

// AnalyzeRequest represents a single domain analysis request. Exactly one
// source is used, in the order domain, email, query.
type AnalyzeRequest struct {
	Domain string `json:"domain,omitempty" example:"example.com" description:"Domain to analyze directly"`
	Email  string `json:"email,omitempty" example:"user@example.com" description:"Email address to extract the domain from"`
	Query  string `json:"query,omitempty" example:"is example.co.jp still usable?" description:"Free text; the first domain mentioned is analyzed"`
	Notify bool   `json:"notify,omitempty" description:"Post the summary to the configured notifier"`
}

// AnalyzeResponse represents the analysis response
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    *types.Analysis `json:"data,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// BatchRequest represents a batch analysis request
type BatchRequest struct {
	Domains []string `json:"domains"`
}

// BatchItem is the outcome for one requested domain
type BatchItem struct {
	Input    string          `json:"input"`
	Analysis *types.Analysis `json:"analysis,omitempty"`
	Error    *Error          `json:"error,omitempty"`
}

// BatchResponse represents the batch analysis response
type BatchResponse struct {
	Success bool        `json:"success"`
	Data    []BatchItem `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// ExtractRequest represents a domain extraction request
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResult lists the domains found in the submitted text
type ExtractResult struct {
	Domains []string `json:"domains"`
}

// ExtractResponse represents the extraction response
type ExtractResponse struct {
	Success bool           `json:"success"`
	Data    *ExtractResult `json:"data,omitempty"`
	Error   *Error         `json:"error,omitempty"`
}

// handleAnalyze runs the full pipeline for one domain
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	target, err := resolveTarget(req)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	analysis, err := h.analyzer.Analyze(r.Context(), target)
	if err != nil {
		status, code := analyzeErrorStatus(err)
		respondWithError(w, status, code, err.Error())
		return
	}

	if req.Notify {
		h.notify(r.Context(), analysis)
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Success: true,
		Data:    analysis,
	})
}

// handleAnalyzeBatch analyzes a list of domains, reporting per-domain failures inline
func (h *Handler) handleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req BatchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	domains := lo.Compact(lo.Map(req.Domains, func(d string, _ int) string {
		return strings.TrimSpace(d)
	}))

	switch {
	case len(domains) == 0:
		respondWithError(w, http.StatusBadRequest, errCodeValidation, ErrDomainsRequired.Error())
		return
	case len(domains) > h.maxBatchSize:
		respondWithError(w, http.StatusBadRequest, errCodeValidation, ErrBatchTooLarge.Error())
		return
	}

	results := h.analyzer.AnalyzeBatch(r.Context(), domains)

	items := lo.Map(results, func(res analyzer.BatchResult, _ int) BatchItem {
		item := BatchItem{Input: res.Input, Analysis: res.Analysis}
		if res.Err != nil {
			_, code := analyzeErrorStatus(res.Err)
			item.Error = &Error{Code: code, Message: res.Err.Error()}
		}

		return item
	})

	writeJSON(w, http.StatusOK, BatchResponse{
		Success: true,
		Data:    items,
	})
}

// handleExtract lists the domains mentioned in free text
func (h *Handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)

	var req ExtractRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respondWithError(w, http.StatusBadRequest, errCodeValidation, ErrTextRequired.Error())
		return
	}

	writeJSON(w, http.StatusOK, ExtractResponse{
		Success: true,
		Data:    &ExtractResult{Domains: domain.Extract(req.Text)},
	})
}

// notify posts the analysis summary; failures are logged and never fail the request
func (h *Handler) notify(ctx context.Context, analysis *types.Analysis) {
	if h.notifier == nil {
		log.Debug().Str("domain", analysis.Domain).Msg("notification requested but no notifier configured")
		return
	}

	if err := h.notifier.NotifyAnalysis(ctx, analysis); err != nil {
		log.Warn().Err(err).Str("domain", analysis.Domain).Msg("failed to send analysis notification")
	}
}

// resolveTarget picks the domain to analyze from the request
func resolveTarget(req AnalyzeRequest) (string, error) {
	switch {
	case strings.TrimSpace(req.Domain) != "":
		return strings.TrimSpace(req.Domain), nil
	case req.Email != "":
		parts := strings.Split(strings.TrimSpace(req.Email), "@")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", ErrInvalidEmailFormat
		}

		return parts[1], nil
	case strings.TrimSpace(req.Query) != "":
		found := domain.Extract(req.Query)
		if len(found) == 0 {
			return "", ErrNoDomainFound
		}

		return found[0], nil
	default:
		return "", ErrInputRequired
	}
}

// analyzeErrorStatus maps an analyzer error to an HTTP status and error code
func analyzeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, analyzer.ErrInvalidDomain):
		return http.StatusBadRequest, errCodeValidation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errCodeTimeout
	default:
		return http.StatusInternalServerError, errCodeInternal
	}
}
