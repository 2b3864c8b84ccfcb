// Package assess provides the security and value assessors consulted for registered and unregistered domains alike.
// Every assessor is total: failures degrade to the reference defaults rather than errors.
package assess

import (
	"context"

	"github.com/zary0/domainscout/internal/types"
)

// defaultReputation is the reputation reported when no intelligence is available
const defaultReputation = 75.0

// SecurityAssessor reports the security posture of a domain
type SecurityAssessor interface {
	AssessSecurity(ctx context.Context, domain string) types.SecurityRecord
}

// ValueAssessor reports the economic value estimate of a domain
type ValueAssessor interface {
	AssessValue(ctx context.Context, domain string) types.ValueRecord
}

// Reference is the placeholder assessor: a clean security posture and no value data
type Reference struct{}

// AssessSecurity returns no flags and the default reputation
func (Reference) AssessSecurity(_ context.Context, domain string) types.SecurityRecord {
	return DefaultSecurity(domain)
}

// AssessValue returns a record with every estimate absent
func (Reference) AssessValue(_ context.Context, domain string) types.ValueRecord {
	return types.ValueRecord{Domain: domain}
}

// DefaultSecurity is the security record used when nothing is known about a domain
func DefaultSecurity(domain string) types.SecurityRecord {
	return types.SecurityRecord{
		Domain:          domain,
		ReputationScore: types.Ptr(defaultReputation),
	}
}
