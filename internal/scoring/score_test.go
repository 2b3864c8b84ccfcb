package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zary0/domainscout/internal/types"
)

func safeSecurity(reputation float64) types.SecurityRecord {
	return types.SecurityRecord{Domain: "example.com", ReputationScore: types.Ptr(reputation)}
}

func TestScoreScenarios(t *testing.T) {
	testCases := []struct {
		name     string
		domain   types.DomainRecord
		security types.SecurityRecord
		want     float64
	}{
		{
			name:     "available domain with default reputation",
			domain:   types.DomainRecord{Domain: "example.com", IsAvailable: true},
			security: safeSecurity(75),
			want:     80,
		},
		{
			name: "healthy registered domain",
			domain: types.DomainRecord{
				Domain:              "example.com",
				HTTPStatus:          types.Ptr(200),
				SSLValid:            types.Ptr(true),
				ResponseTimeSeconds: types.Ptr(1.0),
			},
			security: safeSecurity(80),
			want:     80,
		},
		{
			name: "struggling registered domain",
			domain: types.DomainRecord{
				Domain:              "example.com",
				HTTPStatus:          types.Ptr(500),
				SSLValid:            types.Ptr(false),
				ResponseTimeSeconds: types.Ptr(6.0),
			},
			security: safeSecurity(30),
			want:     30,
		},
		{
			name:     "every probe failed",
			domain:   types.DomainRecord{Domain: "example.com", SSLValid: types.Ptr(false)},
			security: types.SecurityRecord{Domain: "example.com", IsBlacklisted: true, MalwareDetected: true, PhishingRisk: true},
			want:     0,
		},
		{
			name:     "reputation exactly at threshold does not count",
			domain:   types.DomainRecord{Domain: "example.com"},
			security: safeSecurity(70),
			want:     30,
		},
		{
			name:     "response time exactly two seconds does not count",
			domain:   types.DomainRecord{Domain: "example.com", ResponseTimeSeconds: types.Ptr(2.0)},
			security: types.SecurityRecord{Domain: "example.com"},
			want:     30,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.domain, tc.security, types.ValueRecord{Domain: "example.com"})
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestScoreIsClampedForAnyCombination(t *testing.T) {
	bools := []bool{false, true}
	statuses := []*int{nil, types.Ptr(200), types.Ptr(404)}
	times := []*float64{nil, types.Ptr(0.5), types.Ptr(4.0)}
	reputations := []*float64{nil, types.Ptr(10.0), types.Ptr(99.0)}

	for _, available := range bools {
		for _, status := range statuses {
			for _, ssl := range bools {
				for _, elapsed := range times {
					for _, reputation := range reputations {
						for _, flagged := range bools {
							d := types.DomainRecord{
								IsAvailable:         available,
								HTTPStatus:          status,
								SSLValid:            types.Ptr(ssl),
								ResponseTimeSeconds: elapsed,
							}
							s := types.SecurityRecord{
								IsBlacklisted:   flagged,
								MalwareDetected: flagged,
								PhishingRisk:    flagged,
								ReputationScore: reputation,
							}

							got := Score(d, s, types.ValueRecord{})
							if got < 0 || got > MaxScore {
								t.Fatalf("score %v out of range for %+v %+v", got, d, s)
							}
						}
					}
				}
			}
		}
	}
}

func TestScoreClampsAtMaximum(t *testing.T) {
	d := types.DomainRecord{
		IsAvailable:         true,
		SSLValid:            types.Ptr(true),
		ResponseTimeSeconds: types.Ptr(0.1),
	}

	assert.Equal(t, MaxScore, Score(d, safeSecurity(95), types.ValueRecord{}))
}

func TestScoreIsDeterministic(t *testing.T) {
	d := types.DomainRecord{Domain: "example.com", HTTPStatus: types.Ptr(200), SSLValid: types.Ptr(true)}
	s := safeSecurity(72)

	first := Score(d, s, types.ValueRecord{})
	second := Score(d, s, types.ValueRecord{})

	assert.Equal(t, first, second)
	assert.Equal(t, Breakdown(d, s, types.ValueRecord{}), Breakdown(d, s, types.ValueRecord{}))
}

func TestBreakdownOrder(t *testing.T) {
	d := types.DomainRecord{IsAvailable: true}
	s := safeSecurity(75)

	rules := make([]string, 0)
	for _, c := range Breakdown(d, s, types.ValueRecord{}) {
		rules = append(rules, c.Rule)
	}

	assert.Equal(t, []string{"available", "not_blacklisted", "no_malware", "no_phishing", "good_reputation"}, rules)
}
