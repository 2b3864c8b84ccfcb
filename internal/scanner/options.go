package scanner

import (
	"time"

	"github.com/zary0/domainscout/internal/messages"
)

const (
	// defaultDNSServer is the resolver address used for record queries
	defaultDNSServer = "8.8.8.8:53"
	// defaultDNSTimeout bounds each individual record query
	defaultDNSTimeout = 5 * time.Second
	// defaultResolverTimeout bounds the availability lookup
	defaultResolverTimeout = 10 * time.Second
	// defaultResolverCacheTTL is how long availability lookups are cached
	defaultResolverCacheTTL = 5 * time.Minute
	// defaultHTTPTimeout bounds each HTTP attempt
	defaultHTTPTimeout = 10 * time.Second
	// defaultTLSTimeout bounds the TLS connect and handshake
	defaultTLSTimeout = 10 * time.Second
	// defaultRDAPTimeout bounds the registration lookup
	defaultRDAPTimeout = 30 * time.Second
)

// ScanOptions configures the probes used by the scanner
type ScanOptions struct {
	// DNSServer is the host:port queried for DNS records
	DNSServer string
	// DNSTimeout is the per-query DNS timeout
	DNSTimeout time.Duration
	// ResolverTimeout bounds the availability lookup
	ResolverTimeout time.Duration
	// ResolverCacheTTL is the lifetime of cached availability lookups
	ResolverCacheTTL time.Duration
	// HTTPTimeout bounds each HTTP attempt
	HTTPTimeout time.Duration
	// TLSTimeout bounds the TLS probe
	TLSTimeout time.Duration
	// RDAPTimeout bounds the registration lookup
	RDAPTimeout time.Duration
	// Catalog supplies the WHOIS labels
	Catalog messages.Catalog

	availability AvailabilityChecker
	records      RecordLookup
	whois        WhoisLookup
	http         HTTPProbe
	tls          TLSProbe
}

// ScanOption is a functional option for configuring the scanner
type ScanOption func(*ScanOptions)

// DefaultScanOptions returns default scanner options
func DefaultScanOptions() *ScanOptions {
	return &ScanOptions{
		DNSServer:        defaultDNSServer,
		DNSTimeout:       defaultDNSTimeout,
		ResolverTimeout:  defaultResolverTimeout,
		ResolverCacheTTL: defaultResolverCacheTTL,
		HTTPTimeout:      defaultHTTPTimeout,
		TLSTimeout:       defaultTLSTimeout,
		RDAPTimeout:      defaultRDAPTimeout,
		Catalog:          messages.Japanese,
	}
}

// WithDNSServer sets the server used for record queries
func WithDNSServer(server string) ScanOption {
	return func(o *ScanOptions) {
		if server != "" {
			o.DNSServer = server
		}
	}
}

// WithDNSTimeout sets the per-query DNS timeout
func WithDNSTimeout(timeout time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if timeout > 0 {
			o.DNSTimeout = timeout
		}
	}
}

// WithResolverTimeout sets the availability lookup timeout
func WithResolverTimeout(timeout time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if timeout > 0 {
			o.ResolverTimeout = timeout
		}
	}
}

// WithResolverCacheTTL sets how long availability lookups are cached
func WithResolverCacheTTL(ttl time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if ttl > 0 {
			o.ResolverCacheTTL = ttl
		}
	}
}

// WithHTTPTimeout sets the HTTP probe timeout
func WithHTTPTimeout(timeout time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if timeout > 0 {
			o.HTTPTimeout = timeout
		}
	}
}

// WithTLSTimeout sets the TLS probe timeout
func WithTLSTimeout(timeout time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if timeout > 0 {
			o.TLSTimeout = timeout
		}
	}
}

// WithRDAPTimeout sets the registration lookup timeout
func WithRDAPTimeout(timeout time.Duration) ScanOption {
	return func(o *ScanOptions) {
		if timeout > 0 {
			o.RDAPTimeout = timeout
		}
	}
}

// WithCatalog sets the catalog used to label WHOIS fields
func WithCatalog(catalog messages.Catalog) ScanOption {
	return func(o *ScanOptions) {
		if catalog != nil {
			o.Catalog = catalog
		}
	}
}

// WithAvailabilityChecker replaces the availability probe
func WithAvailabilityChecker(checker AvailabilityChecker) ScanOption {
	return func(o *ScanOptions) {
		if checker != nil {
			o.availability = checker
		}
	}
}

// WithRecordLookup replaces the DNS record probe
func WithRecordLookup(lookup RecordLookup) ScanOption {
	return func(o *ScanOptions) {
		if lookup != nil {
			o.records = lookup
		}
	}
}

// WithWhoisLookup replaces the WHOIS probe
func WithWhoisLookup(lookup WhoisLookup) ScanOption {
	return func(o *ScanOptions) {
		if lookup != nil {
			o.whois = lookup
		}
	}
}

// WithHTTPProbe replaces the HTTP probe
func WithHTTPProbe(probe HTTPProbe) ScanOption {
	return func(o *ScanOptions) {
		if probe != nil {
			o.http = probe
		}
	}
}

// WithTLSProbe replaces the TLS probe
func WithTLSProbe(probe TLSProbe) ScanOption {
	return func(o *ScanOptions) {
		if probe != nil {
			o.tls = probe
		}
	}
}
