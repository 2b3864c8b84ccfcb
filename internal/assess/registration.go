package assess

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zary0/domainscout/internal/rdap"
	"github.com/zary0/domainscout/internal/types"
)

// RegistrationLookup fetches registration data for a domain
type RegistrationLookup interface {
	Lookup(ctx context.Context, domain string) (*rdap.Registration, error)
}

// Registration estimates value from registration data; only the domain age is populated
type Registration struct {
	lookup RegistrationLookup
	now    func() time.Time
}

// NewRegistration creates a registration-backed value assessor
func NewRegistration(lookup RegistrationLookup) *Registration {
	return &Registration{
		lookup: lookup,
		now:    time.Now,
	}
}

// AssessValue returns the domain age in years; every field is absent when the lookup fails
func (r *Registration) AssessValue(ctx context.Context, domain string) types.ValueRecord {
	record := types.ValueRecord{Domain: domain}

	reg, err := r.lookup.Lookup(ctx, domain)
	if err != nil {
		log.Debug().Err(err).Str("domain", domain).Msg("registration lookup failed")

		return record
	}

	record.DomainAgeYears = reg.AgeYears(r.now())

	return record
}
