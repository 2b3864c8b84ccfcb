package intel

import (
	"fmt"
	"strings"
	"time"
)

// FeedConfig is the set of blocklist feeds loaded from the feed configuration file
type FeedConfig struct {
	Feeds []Feed `json:"feeds"`
}

// Feed describes a single blocklist to download and ingest
type Feed struct {
	// Name identifies the feed and names its cached download
	Name string `json:"name"`
	// URL is where the plain-text list is fetched from
	URL string `json:"url"`
	// Categories are attached to every indicator the feed contributes
	Categories []string `json:"categories"`
	// Indicators restricts which indicator types are ingested; empty means all
	Indicators []IndicatorType `json:"indicators,omitempty"`
}

// IndicatorType is the kind of observable held in the store
type IndicatorType string

const (
	IndicatorTypeIP     IndicatorType = "ip"
	IndicatorTypeCIDR   IndicatorType = "cidr"
	IndicatorTypeDomain IndicatorType = "domain"
)

// Categories with a dedicated flag on a verdict
const (
	CategoryMalware  = "malware"
	CategoryPhishing = "phishing"
)

// HydrationSummary captures the results of a hydration run
type HydrationSummary struct {
	StartedAt       time.Time     `json:"started_at"`
	CompletedAt     time.Time     `json:"completed_at"`
	TotalFeeds      int           `json:"total_feeds"`
	SuccessfulFeeds int           `json:"successful_feeds"`
	FailedFeeds     int           `json:"failed_feeds"`
	TotalIndicators int           `json:"total_indicators"`
	Feeds           []FeedSummary `json:"feeds"`
}

// FeedSummary captures the outcome of one feed download and ingest
type FeedSummary struct {
	Name       string        `json:"name"`
	Downloaded bool          `json:"downloaded"`
	UsedCache  bool          `json:"used_cache,omitempty"`
	Indicators int           `json:"indicators"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Match is a single store hit for a checked domain
type Match struct {
	Value      string        `json:"value"`
	Type       IndicatorType `json:"type"`
	Context    string        `json:"context"`
	Feeds      []string      `json:"feeds"`
	Categories []string      `json:"categories"`
}

// Verdict is the outcome of checking a domain against the store
type Verdict struct {
	Domain     string   `json:"domain"`
	Score      int      `json:"score"`
	Listed     bool     `json:"listed"`
	Malware    bool     `json:"malware"`
	Phishing   bool     `json:"phishing"`
	Categories []string `json:"categories,omitempty"`
	Matches    []Match  `json:"matches,omitempty"`
}

// Status reports the hydration state of a manager
type Status struct {
	Hydrated     bool      `json:"hydrated"`
	LastHydrated time.Time `json:"last_hydrated,omitzero"`
	Indicators   int       `json:"indicators"`
	Feeds        int       `json:"feeds"`
}

// allows reports whether the feed ingests indicators of type t
func (f Feed) allows(t IndicatorType) bool {
	if len(f.Indicators) == 0 {
		return true
	}

	for _, allowed := range f.Indicators {
		if allowed == t {
			return true
		}
	}

	return false
}

// ParseIndicatorType converts a string into a recognized indicator type
func ParseIndicatorType(value string) (IndicatorType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "ip":
		return IndicatorTypeIP, nil
	case "cidr":
		return IndicatorTypeCIDR, nil
	case "domain":
		return IndicatorTypeDomain, nil
	case "":
		return "", ErrEmptyIndicatorType
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedIndicatorType, value)
	}
}
