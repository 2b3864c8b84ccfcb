package analyzer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/zary0/domainscout/internal/advisory"
	"github.com/zary0/domainscout/internal/assess"
	"github.com/zary0/domainscout/internal/domain"
	"github.com/zary0/domainscout/internal/messages"
	"github.com/zary0/domainscout/internal/scanner"
	"github.com/zary0/domainscout/internal/types"
)

// Analyzer runs the probe, assessment, scoring and advisory pipeline for domains
type Analyzer struct {
	scanner     scanner.Interface
	security    assess.SecurityAssessor
	value       assess.ValueAssessor
	catalog     messages.Catalog
	advisor     *advisory.Generator
	concurrency int
	limiter     *rate.Limiter
	now         func() time.Time
}

// New creates an analyzer; without options it probes the network and uses the reference assessors
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		security:    assess.Reference{},
		value:       assess.Reference{},
		catalog:     messages.Japanese,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.scanner == nil {
		a.scanner = scanner.New(scanner.WithCatalog(a.catalog))
	}

	a.advisor = advisory.NewGenerator(a.catalog)

	return a
}

// Analyze runs the full pipeline for one domain. Errors are ErrInvalidDomain and the
// context error when ctx ends before the signals are collected; probe and assessor
// failures surface as absent fields.
func (a *Analyzer) Analyze(ctx context.Context, input string) (*types.Analysis, error) {
	info, err := domain.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}

	name := info.Domain

	record := a.scanner.Aggregate(ctx, name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	security := a.security.AssessSecurity(ctx, name)
	value := a.value.AssessValue(ctx, name)

	analysis := &types.Analysis{
		Domain:     name,
		AnalyzedAt: a.now().UTC(),
		DomainInfo: record,
		Security:   security,
		Value:      value,
		Result:     a.advisor.Evaluate(record, security, value),
	}

	log.Debug().Str("domain", name).Float64("score", analysis.Result.Score).
		Str("status", string(analysis.Result.Status)).Msg("domain analyzed")

	return analysis, nil
}

// BatchResult is the outcome for one input of a batch
type BatchResult struct {
	Input    string          `json:"input"`
	Analysis *types.Analysis `json:"analysis,omitempty"`
	Err      error           `json:"-"`
}

// AnalyzeBatch analyzes every input on a bounded worker pool; results keep input order
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []string) []BatchResult {
	results := make([]BatchResult, len(inputs))
	sem := make(chan struct{}, a.concurrency)

	var wg sync.WaitGroup

	for i, input := range inputs {
		wg.Go(func() {
			results[i] = BatchResult{Input: input}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return
			}
			defer func() { <-sem }()

			if a.limiter != nil {
				if err := a.limiter.Wait(ctx); err != nil {
					results[i].Err = err
					return
				}
			}

			results[i].Analysis, results[i].Err = a.Analyze(ctx, input)
		})
	}

	wg.Wait()

	return results
}

// Succeeded returns the analyses of the results that completed, in order
func Succeeded(results []BatchResult) []*types.Analysis {
	return lo.FilterMap(results, func(r BatchResult, _ int) (*types.Analysis, bool) {
		return r.Analysis, r.Err == nil && r.Analysis != nil
	})
}
