// Package config loads the domainscout service configuration from defaults, a YAML file and the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

const (
	// EnvPrefix is the prefix of every environment variable read into the configuration
	EnvPrefix = "DOMAINSCOUT_"
	// delimiter separates nested configuration keys
	delimiter = "."
)

// Assessor selections
const (
	SecurityReference = "reference"
	SecurityBlocklist = "blocklist"
	ValueReference    = "reference"
	ValueRegistration = "registration"
)

// Config holds service configuration
type Config struct {
	// Server configures the HTTP API listener
	Server Server `json:"server" koanf:"server"`
	// Scanner configures the network probes
	Scanner Scanner `json:"scanner" koanf:"scanner"`
	// Analysis configures the pipeline and batch execution
	Analysis Analysis `json:"analysis" koanf:"analysis"`
	// Intel configures the blocklist feeds
	Intel Intel `json:"intel" koanf:"intel"`
	// Slack configures analysis notifications
	Slack Slack `json:"slack" koanf:"slack"`
}

// Server holds the HTTP listener settings
type Server struct {
	// Listen is the address the API binds to
	Listen string `json:"listen" koanf:"listen" default:":8080"`
	// ReadTimeout bounds reading a full request
	ReadTimeout time.Duration `json:"read_timeout" koanf:"read_timeout" default:"30s"`
	// WriteTimeout bounds writing a response; analyses can take tens of seconds
	WriteTimeout time.Duration `json:"write_timeout" koanf:"write_timeout" default:"180s"`
	// RequestTimeout bounds the handling of a single request
	RequestTimeout time.Duration `json:"request_timeout" koanf:"request_timeout" default:"150s"`
	// ShutdownGracePeriod is how long in-flight requests get on shutdown
	ShutdownGracePeriod time.Duration `json:"shutdown_grace_period" koanf:"shutdown_grace_period" default:"10s"`
	// MaxBodySize caps request bodies in bytes
	MaxBodySize int64 `json:"max_body_size" koanf:"max_body_size" default:"102400"`
	// MaxBatchSize caps the domains accepted by one batch request
	MaxBatchSize int `json:"max_batch_size" koanf:"max_batch_size" default:"50"`
}

// Scanner holds the probe settings
type Scanner struct {
	// DNSServer is the host:port queried for DNS records
	DNSServer string `json:"dns_server" koanf:"dns_server" default:"8.8.8.8:53"`
	// DNSTimeout bounds each DNS record query
	DNSTimeout time.Duration `json:"dns_timeout" koanf:"dns_timeout" default:"5s"`
	// ResolverTimeout bounds the availability resolution
	ResolverTimeout time.Duration `json:"resolver_timeout" koanf:"resolver_timeout" default:"10s"`
	// ResolverCacheTTL is how long availability results are reused
	ResolverCacheTTL time.Duration `json:"resolver_cache_ttl" koanf:"resolver_cache_ttl" default:"5m"`
	// HTTPTimeout bounds each HTTP probe attempt
	HTTPTimeout time.Duration `json:"http_timeout" koanf:"http_timeout" default:"10s"`
	// TLSTimeout bounds the TLS certificate probe
	TLSTimeout time.Duration `json:"tls_timeout" koanf:"tls_timeout" default:"10s"`
	// RDAPTimeout bounds registration data lookups
	RDAPTimeout time.Duration `json:"rdap_timeout" koanf:"rdap_timeout" default:"30s"`
}

// Analysis holds the pipeline settings
type Analysis struct {
	// Language selects the message catalog for recommendations, risks and WHOIS labels
	Language string `json:"language" koanf:"language" default:"ja"`
	// Security selects the security assessor: reference or blocklist
	Security string `json:"security" koanf:"security" default:"reference"`
	// Value selects the value assessor: reference or registration
	Value string `json:"value" koanf:"value" default:"reference"`
	// Concurrency is the number of domains analyzed at once in a batch
	Concurrency int `json:"concurrency" koanf:"concurrency" default:"4"`
	// RateLimit caps batch analyses started per second; zero disables the limit
	RateLimit float64 `json:"rate_limit" koanf:"rate_limit" default:"0"`
	// RateBurst is the number of analyses that may start at once under the rate limit
	RateBurst int `json:"rate_burst" koanf:"rate_burst" default:"1"`
}

// Intel holds the blocklist feed settings
type Intel struct {
	// Enabled turns on the feed manager and its API endpoints
	Enabled bool `json:"enabled" koanf:"enabled" default:"false"`
	// FeedConfig is the path to the JSON feed list
	FeedConfig string `json:"feed_config" koanf:"feed_config" default:"./config/feeds.json"`
	// StorageDir holds the downloaded feed copies
	StorageDir string `json:"storage_dir" koanf:"storage_dir" default:"./data/intel"`
	// AutoHydrate downloads the feeds when the server starts
	AutoHydrate bool `json:"auto_hydrate" koanf:"auto_hydrate" default:"true"`
	// RequestTimeout bounds each feed download
	RequestTimeout time.Duration `json:"request_timeout" koanf:"request_timeout" default:"2m"`
	// ResolveIPs also checks the addresses a domain resolves to
	ResolveIPs bool `json:"resolve_ips" koanf:"resolve_ips" default:"false"`
	// ResolverTimeout bounds the address lookup when ResolveIPs is set
	ResolverTimeout time.Duration `json:"resolver_timeout" koanf:"resolver_timeout" default:"5s"`
}

// Slack holds the webhook notification settings
type Slack struct {
	// WebhookURL is the incoming webhook; empty disables notifications
	WebhookURL string `json:"webhook_url" koanf:"webhook_url" sensitive:"true"`
	// Username overrides the webhook's default sender name
	Username string `json:"username" koanf:"username" default:"domainscout"`
	// RequestTimeout bounds each webhook post
	RequestTimeout time.Duration `json:"request_timeout" koanf:"request_timeout" default:"10s"`
}

// Load builds the configuration from struct defaults, then the YAML file at path
// when it exists, then DOMAINSCOUT_ environment variables
func Load(path *string) (*Config, error) {
	k := koanf.New(delimiter)

	if path != nil && *path != "" {
		if _, err := os.Stat(*path); err == nil {
			if err := k.Load(file.Provider(*path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrConfigRead, *path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigRead, *path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, delimiter, envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrConfigRead, err)
	}

	cfg := &Config{}
	defaults.SetDefaults(cfg)

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envKey maps DOMAINSCOUT_SECTION_FIELD_NAME to section.field_name
func envKey(key, value string) (string, any) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	section, field, found := strings.Cut(name, "_")
	if !found {
		return name, value
	}

	return section + delimiter + field, value
}

// Validate checks option values that cannot be expressed as defaults
func (c *Config) Validate() error {
	switch c.Analysis.Security {
	case SecurityReference:
	case SecurityBlocklist:
		if !c.Intel.Enabled {
			return ErrBlocklistRequiresIntel
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSecurityAssessor, c.Analysis.Security)
	}

	switch c.Analysis.Value {
	case ValueReference, ValueRegistration:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedValueAssessor, c.Analysis.Value)
	}

	if c.Analysis.Concurrency < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Analysis.Concurrency)
	}

	if c.Analysis.RateLimit < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRateLimit, c.Analysis.RateLimit)
	}

	return nil
}
