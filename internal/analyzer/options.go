package analyzer

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/zary0/domainscout/internal/assess"
	"github.com/zary0/domainscout/internal/messages"
	"github.com/zary0/domainscout/internal/scanner"
)

const (
	// defaultConcurrency bounds the domains analyzed at once in a batch
	defaultConcurrency = 4
)

// Option configures the Analyzer
type Option func(*Analyzer)

// WithScanner sets the signal aggregator
func WithScanner(s scanner.Interface) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.scanner = s
		}
	}
}

// WithSecurityAssessor sets the security assessor
func WithSecurityAssessor(s assess.SecurityAssessor) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.security = s
		}
	}
}

// WithValueAssessor sets the value assessor
func WithValueAssessor(v assess.ValueAssessor) Option {
	return func(a *Analyzer) {
		if v != nil {
			a.value = v
		}
	}
}

// WithCatalog sets the catalog used for recommendations and risks
func WithCatalog(catalog messages.Catalog) Option {
	return func(a *Analyzer) {
		if catalog != nil {
			a.catalog = catalog
		}
	}
}

// WithConcurrency bounds how many domains a batch analyzes at once
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithRateLimit limits batch analyses to rps starts per second; zero disables the limit
func WithRateLimit(rps float64, burst int) Option {
	return func(a *Analyzer) {
		if rps <= 0 {
			a.limiter = nil
			return
		}

		a.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// withClock overrides the analysis timestamp source
func withClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}
