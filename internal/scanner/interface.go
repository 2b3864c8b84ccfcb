package scanner

import (
	"context"

	"github.com/zary0/domainscout/internal/types"
)

// Interface defines the contract for collecting probe signals for a domain
type Interface interface {
	Aggregate(ctx context.Context, domain string) types.DomainRecord
}

// AvailabilityChecker reports whether a name appears unregistered
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, domain string) bool
}

// RecordLookup returns the DNS answers for every queried record type
type RecordLookup interface {
	Records(ctx context.Context, domain string) map[types.RecordType][]string
}

// WhoisLookup returns the rendered registration summary, or nil when the lookup failed
type WhoisLookup interface {
	Whois(ctx context.Context, domain string) *string
}

// HTTPProbe returns the status code and elapsed seconds of the first successful attempt
type HTTPProbe interface {
	Probe(ctx context.Context, domain string) (*int, *float64)
}

// TLSProbe reports whether a peer certificate could be obtained on port 443
type TLSProbe interface {
	Valid(ctx context.Context, domain string) bool
}
