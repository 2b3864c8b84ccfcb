package assess

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zary0/domainscout/internal/intel"
	"github.com/zary0/domainscout/internal/rdap"
	"github.com/zary0/domainscout/internal/types"
)

type fakeChecker struct {
	verdict intel.Verdict
	err     error
}

func (f fakeChecker) Check(context.Context, string) (intel.Verdict, error) {
	return f.verdict, f.err
}

type fakeLookup struct {
	reg *rdap.Registration
	err error
}

func (f fakeLookup) Lookup(context.Context, string) (*rdap.Registration, error) {
	return f.reg, f.err
}

func TestReference(t *testing.T) {
	var a Reference

	security := a.AssessSecurity(context.Background(), "example.com")
	assert.Equal(t, "example.com", security.Domain)
	assert.False(t, security.IsBlacklisted)
	assert.False(t, security.MalwareDetected)
	assert.False(t, security.PhishingRisk)
	require.NotNil(t, security.ReputationScore)
	assert.InDelta(t, 75.0, *security.ReputationScore, 1e-9)

	assert.Equal(t, types.ValueRecord{Domain: "example.com"}, a.AssessValue(context.Background(), "example.com"))
}

func TestBlocklist(t *testing.T) {
	cases := []struct {
		name    string
		checker fakeChecker
		want    types.SecurityRecord
	}{
		{
			name:    "not hydrated falls back to defaults",
			checker: fakeChecker{err: intel.ErrNotHydrated},
			want:    DefaultSecurity("example.com"),
		},
		{
			name:    "clean domain",
			checker: fakeChecker{verdict: intel.Verdict{Domain: "example.com"}},
			want:    types.SecurityRecord{Domain: "example.com", ReputationScore: types.Ptr(100.0)},
		},
		{
			name: "phishing listing",
			checker: fakeChecker{verdict: intel.Verdict{
				Domain:   "example.com",
				Listed:   true,
				Phishing: true,
				Score:    40,
			}},
			want: types.SecurityRecord{
				Domain:          "example.com",
				IsBlacklisted:   true,
				PhishingRisk:    true,
				ReputationScore: types.Ptr(60.0),
			},
		},
		{
			name: "malware and phishing at maximum score",
			checker: fakeChecker{verdict: intel.Verdict{
				Domain:   "example.com",
				Listed:   true,
				Malware:  true,
				Phishing: true,
				Score:    100,
			}},
			want: types.SecurityRecord{
				Domain:          "example.com",
				IsBlacklisted:   true,
				MalwareDetected: true,
				PhishingRisk:    true,
				ReputationScore: types.Ptr(0.0),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewBlocklist(tc.checker).AssessSecurity(context.Background(), "example.com")

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRegistration(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	registered := now.AddDate(-20, 0, 0)

	t.Run("age from registration date", func(t *testing.T) {
		a := NewRegistration(fakeLookup{reg: &rdap.Registration{RegistrationDate: &registered}})
		a.now = func() time.Time { return now }

		got := a.AssessValue(context.Background(), "example.com")

		assert.Equal(t, "example.com", got.Domain)
		require.NotNil(t, got.DomainAgeYears)
		assert.InDelta(t, 20.0, *got.DomainAgeYears, 0.01)
		assert.Nil(t, got.EstimatedTraffic)
		assert.Nil(t, got.SEOScore)
		assert.Nil(t, got.EstimatedValue)
	})

	t.Run("no registration event", func(t *testing.T) {
		got := NewRegistration(fakeLookup{reg: &rdap.Registration{}}).AssessValue(context.Background(), "example.com")

		assert.Equal(t, types.ValueRecord{Domain: "example.com"}, got)
	})

	t.Run("lookup failure", func(t *testing.T) {
		got := NewRegistration(fakeLookup{err: errors.New("rdap down")}).AssessValue(context.Background(), "example.com")

		assert.Equal(t, types.ValueRecord{Domain: "example.com"}, got)
	})
}
