package scanner

import (
	"context"
	"sync"

	"github.com/zary0/domainscout/internal/rdap"
	"github.com/zary0/domainscout/internal/types"
)

// Scanner collects the probe signals for a domain
type Scanner struct {
	// options holds the configuration for scan behavior
	options *ScanOptions

	availability AvailabilityChecker
	records      RecordLookup
	whois        WhoisLookup
	http         HTTPProbe
	tls          TLSProbe
}

// New creates a new scanner with the given options; probes not supplied through options use the network
func New(opts ...ScanOption) *Scanner {
	options := DefaultScanOptions()
	for _, opt := range opts {
		opt(options)
	}

	s := &Scanner{
		options:      options,
		availability: options.availability,
		records:      options.records,
		whois:        options.whois,
		http:         options.http,
		tls:          options.tls,
	}

	if s.availability == nil {
		s.availability = NewResolverAvailability(nil, options.ResolverTimeout, options.ResolverCacheTTL)
	}

	if s.records == nil {
		s.records = NewDNSProber(options.DNSServer, options.DNSTimeout)
	}

	if s.whois == nil {
		s.whois = NewRDAPWhois(rdap.NewClient(rdap.WithTimeout(options.RDAPTimeout)), options.Catalog)
	}

	if s.http == nil {
		s.http = NewHTTPProber(options.HTTPTimeout)
	}

	if s.tls == nil {
		s.tls = NewTLSProber(options.TLSTimeout)
	}

	return s
}

// Aggregate assembles a DomainRecord from the probes. Available names are not probed further.
// The remaining probes run concurrently and each writes only its own fields. When ctx is
// done the name is never reported as available and the probe fields stay absent.
func (s *Scanner) Aggregate(ctx context.Context, domain string) types.DomainRecord {
	record := types.DomainRecord{Domain: domain}

	if ctx.Err() != nil {
		return record
	}

	available := s.availability.IsAvailable(ctx, domain)
	if ctx.Err() != nil {
		return record
	}

	if available {
		record.IsAvailable = true

		return record
	}

	var wg sync.WaitGroup

	wg.Go(func() {
		record.WhoisText = s.whois.Whois(ctx, domain)
	})
	wg.Go(func() {
		record.DNSRecords = s.records.Records(ctx, domain)
	})
	wg.Go(func() {
		record.HTTPStatus, record.ResponseTimeSeconds = s.http.Probe(ctx, domain)
	})
	wg.Go(func() {
		record.SSLValid = types.Ptr(s.tls.Valid(ctx, domain))
	})

	wg.Wait()

	return record
}
