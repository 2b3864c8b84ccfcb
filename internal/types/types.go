package types

import "time"

// RecordType is a DNS record type queried for registered domains
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeMX    RecordType = "MX"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeNS    RecordType = "NS"
	RecordTypeCNAME RecordType = "CNAME"
)

// RecordTypes is the fixed set of record types queried for every registered domain, in query order
var RecordTypes = []RecordType{
	RecordTypeA,
	RecordTypeAAAA,
	RecordTypeMX,
	RecordTypeTXT,
	RecordTypeNS,
	RecordTypeCNAME,
}

// Status is the coarse score band of an analysis
type Status string

const (
	StatusExcellent   Status = "excellent"
	StatusGood        Status = "good"
	StatusFair        Status = "fair"
	StatusPoor        Status = "poor"
	StatusUnavailable Status = "unavailable"
)

// DomainRecord contains the probe signals collected for a single domain.
// When IsAvailable is true the domain was not probed further and every
// optional field is nil.
type DomainRecord struct {
	Domain              string                  `json:"domain" example:"example.com" description:"Domain that was probed"`
	IsAvailable         bool                    `json:"is_available" description:"Whether the name failed to resolve and is assumed unregistered"`
	WhoisText           *string                 `json:"whois_data,omitempty" description:"Rendered registration summary"`
	DNSRecords          map[RecordType][]string `json:"dns_records,omitempty" description:"DNS answers keyed by record type"`
	HTTPStatus          *int                    `json:"http_status,omitempty" example:"200" description:"Status code of the first successful HTTP attempt"`
	SSLValid            *bool                   `json:"ssl_valid,omitempty" description:"Whether a TLS peer certificate was obtained on port 443"`
	ResponseTimeSeconds *float64                `json:"response_time,omitempty" example:"0.42" description:"Wall-clock seconds of the successful HTTP attempt"`
}

// SecurityRecord is the security posture of a domain
type SecurityRecord struct {
	Domain          string   `json:"domain"`
	IsBlacklisted   bool     `json:"is_blacklisted"`
	MalwareDetected bool     `json:"malware_detected"`
	PhishingRisk    bool     `json:"phishing_risk"`
	ReputationScore *float64 `json:"reputation_score,omitempty" example:"75" description:"Reputation in the range 0-100"`
}

// ValueRecord is the economic value estimate of a domain
type ValueRecord struct {
	Domain           string   `json:"domain"`
	EstimatedTraffic *int64   `json:"estimated_traffic,omitempty"`
	SEOScore         *float64 `json:"seo_score,omitempty"`
	DomainAgeYears   *float64 `json:"domain_age,omitempty"`
	EstimatedValue   *float64 `json:"estimated_value,omitempty"`
}

// ScoreResult is derived from the three records and is recomputed on demand
type ScoreResult struct {
	Score           float64  `json:"overall_score" example:"80" description:"Usability score in the range 0-100"`
	Status          Status   `json:"usability_status" example:"excellent" description:"Score band"`
	Recommendations []string `json:"recommendations"`
	Risks           []string `json:"risks"`
}

// Analysis is the complete response for one analyzed domain
type Analysis struct {
	Domain     string         `json:"domain"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
	DomainInfo DomainRecord   `json:"domain_info"`
	Security   SecurityRecord `json:"security"`
	Value      ValueRecord    `json:"value"`
	Result     ScoreResult    `json:"result"`
}

// Ptr returns a pointer to v, used to populate optional record fields
func Ptr[T any](v T) *T {
	return &v
}
