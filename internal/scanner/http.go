package scanner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/theopenlane/httpsling"
)

// maxProbeBodyBytes bounds how much of a response body is downloaded while timing it
const maxProbeBodyBytes = 10 << 20

// probeSchemes are attempted in order; the next scheme is tried only on transport failure
var probeSchemes = []string{"http", "https"}

// HTTPProber fetches the site root and records status and latency
type HTTPProber struct {
	httpClient *http.Client
}

// NewHTTPProber creates an HTTP probe whose attempts are bounded by timeout
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &HTTPProber{httpClient: &http.Client{Timeout: timeout}}
}

// NewHTTPProberWithClient creates an HTTP probe using a caller-supplied client
func NewHTTPProberWithClient(client *http.Client) *HTTPProber {
	if client == nil {
		return NewHTTPProber(defaultHTTPTimeout)
	}

	return &HTTPProber{httpClient: client}
}

// Probe returns the status code and elapsed seconds of the first scheme that produced a response.
// Both values are nil when every attempt failed at the transport level.
func (p *HTTPProber) Probe(ctx context.Context, domain string) (*int, *float64) {
	var lastErr error

	for _, scheme := range probeSchemes {
		status, elapsed, err := p.fetch(ctx, fmt.Sprintf("%s://%s", scheme, domain))
		if err == nil {
			return &status, &elapsed
		}

		lastErr = err
	}

	log.Debug().Err(fmt.Errorf("%w: %v", ErrBothSchemesFailed, lastErr)).Str("domain", domain).Msg("http probe failed")

	return nil, nil
}

// fetch performs a single GET, following redirects, and times it through the end of the body.
// A body that cannot be read counts as a transport failure.
func (p *HTTPProber) fetch(ctx context.Context, target string) (int, float64, error) {
	requester, err := httpsling.New(
		httpsling.URL(target),
		httpsling.Method(http.MethodGet),
		httpsling.WithHTTPClient(p.httpClient),
	)
	if err != nil {
		return 0, 0, err
	}

	start := time.Now()

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if _, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxProbeBodyBytes)); err != nil {
		return 0, 0, fmt.Errorf("reading body of %s: %w", target, err)
	}

	return resp.StatusCode, time.Since(start).Seconds(), nil
}
