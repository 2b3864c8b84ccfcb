package scoring

import (
	"net/http"

	"github.com/zary0/domainscout/internal/types"
)

const (
	// MaxScore caps the summed contributions
	MaxScore = 100.0

	// weightAvailable rewards a name that can be registered
	weightAvailable = 40.0
	// weightServing rewards a registered name whose site answers 200
	weightServing = 20.0
	// weightSecurityFlag is awarded per clear security flag
	weightSecurityFlag = 10.0
	// weightSSL rewards an obtainable certificate
	weightSSL = 10.0
	// weightFastResponse rewards a response under fastResponseSeconds
	weightFastResponse = 10.0
	// weightReputation rewards a reputation above reputationThreshold
	weightReputation = 10.0

	fastResponseSeconds = 2.0
	reputationThreshold = 70.0
)

// Contribution is one scoring rule that applied to a domain
type Contribution struct {
	// Rule names the condition that held
	Rule string `json:"rule"`
	// Points is the value added to the score
	Points float64 `json:"points"`
}

// Score combines the three records into a usability score in the range [0, 100]
func Score(d types.DomainRecord, s types.SecurityRecord, v types.ValueRecord) float64 {
	total := 0.0

	for _, c := range Breakdown(d, s, v) {
		total += c.Points
	}

	return min(MaxScore, total)
}

// Breakdown lists the contributions that apply, in rule order. The value record
// does not contribute today but is part of the contract so estimates can be weighed later.
func Breakdown(d types.DomainRecord, s types.SecurityRecord, _ types.ValueRecord) []Contribution {
	var out []Contribution

	add := func(rule string, points float64) {
		out = append(out, Contribution{Rule: rule, Points: points})
	}

	switch {
	case d.IsAvailable:
		add("available", weightAvailable)
	case d.HTTPStatus != nil && *d.HTTPStatus == http.StatusOK:
		add("http_ok", weightServing)
	}

	if !s.IsBlacklisted {
		add("not_blacklisted", weightSecurityFlag)
	}

	if !s.MalwareDetected {
		add("no_malware", weightSecurityFlag)
	}

	if !s.PhishingRisk {
		add("no_phishing", weightSecurityFlag)
	}

	if d.SSLValid != nil && *d.SSLValid {
		add("ssl_valid", weightSSL)
	}

	if d.ResponseTimeSeconds != nil && *d.ResponseTimeSeconds < fastResponseSeconds {
		add("fast_response", weightFastResponse)
	}

	if s.ReputationScore != nil && *s.ReputationScore > reputationThreshold {
		add("good_reputation", weightReputation)
	}

	return out
}
