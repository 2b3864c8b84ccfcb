package advisory

import (
	"net/http"

	"github.com/zary0/domainscout/internal/messages"
	"github.com/zary0/domainscout/internal/scoring"
	"github.com/zary0/domainscout/internal/types"
)

// Status band lower edges, inclusive
const (
	thresholdExcellent = 80.0
	thresholdGood      = 60.0
	thresholdFair      = 40.0
	thresholdPoor      = 20.0
)

const (
	// slowResponseSeconds triggers the latency recommendation
	slowResponseSeconds = 3.0
	// verySlowResponseSeconds triggers the latency risk
	verySlowResponseSeconds = 5.0
	// lowReputation triggers the reputation recommendation
	lowReputation = 50.0
	// alternativesBelow triggers the consider-alternatives recommendation
	alternativesBelow = 50.0
)

// Classify maps a score to its status band
func Classify(score float64) types.Status {
	switch {
	case score >= thresholdExcellent:
		return types.StatusExcellent
	case score >= thresholdGood:
		return types.StatusGood
	case score >= thresholdFair:
		return types.StatusFair
	case score >= thresholdPoor:
		return types.StatusPoor
	default:
		return types.StatusUnavailable
	}
}

// Recommend returns the ordered recommendation kinds for a domain
func Recommend(d types.DomainRecord, s types.SecurityRecord, score float64) []messages.Kind {
	kinds := make([]messages.Kind, 0)

	if d.IsAvailable {
		kinds = append(kinds, messages.RecommendRegister, messages.RecommendTrademarkCheck)
	} else {
		if d.HTTPStatus == nil || *d.HTTPStatus != http.StatusOK {
			kinds = append(kinds, messages.RecommendSiteDown)
		}

		if !isTrue(d.SSLValid) {
			kinds = append(kinds, messages.RecommendCertificateIssue)
		}

		if d.ResponseTimeSeconds != nil && *d.ResponseTimeSeconds > slowResponseSeconds {
			kinds = append(kinds, messages.RecommendSlowResponse)
		}
	}

	if s.ReputationScore != nil && *s.ReputationScore < lowReputation {
		kinds = append(kinds, messages.RecommendLowReputation)
	}

	if score < alternativesBelow {
		kinds = append(kinds, messages.RecommendAlternatives)
	}

	return kinds
}

// Risks returns the ordered risk kinds for a domain
func Risks(d types.DomainRecord, s types.SecurityRecord) []messages.Kind {
	kinds := make([]messages.Kind, 0)

	if s.IsBlacklisted {
		kinds = append(kinds, messages.RiskBlacklisted)
	}

	if s.MalwareDetected {
		kinds = append(kinds, messages.RiskMalware)
	}

	if s.PhishingRisk {
		kinds = append(kinds, messages.RiskPhishing)
	}

	if !isTrue(d.SSLValid) && !d.IsAvailable {
		kinds = append(kinds, messages.RiskNoValidSSL)
	}

	if d.ResponseTimeSeconds != nil && *d.ResponseTimeSeconds > verySlowResponseSeconds {
		kinds = append(kinds, messages.RiskVerySlow)
	}

	return kinds
}

// Generator renders score results with one message catalog
type Generator struct {
	catalog messages.Catalog
}

// NewGenerator creates a generator for the catalog, using the Japanese catalog when nil
func NewGenerator(catalog messages.Catalog) *Generator {
	if catalog == nil {
		catalog = messages.Japanese
	}

	return &Generator{catalog: catalog}
}

// Evaluate scores the records and derives the status, recommendations and risks
func (g *Generator) Evaluate(d types.DomainRecord, s types.SecurityRecord, v types.ValueRecord) types.ScoreResult {
	score := scoring.Score(d, s, v)

	return types.ScoreResult{
		Score:           score,
		Status:          Classify(score),
		Recommendations: g.render(Recommend(d, s, score)),
		Risks:           g.render(Risks(d, s)),
	}
}

// render converts message kinds into catalog text
func (g *Generator) render(kinds []messages.Kind) []string {
	out := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		out = append(out, g.catalog.Text(kind))
	}

	return out
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
