package assess

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/zary0/domainscout/internal/intel"
	"github.com/zary0/domainscout/internal/types"
)

// maxReputation is the reputation of a domain with no blocklist hits
const maxReputation = 100.0

// BlocklistChecker checks a domain against hydrated blocklists
type BlocklistChecker interface {
	Check(ctx context.Context, domain string) (intel.Verdict, error)
}

// Blocklist derives the security posture from blocklist feeds
type Blocklist struct {
	checker BlocklistChecker
}

// NewBlocklist creates a blocklist-backed security assessor
func NewBlocklist(checker BlocklistChecker) *Blocklist {
	return &Blocklist{checker: checker}
}

// AssessSecurity marks listed domains as blacklisted and lowers their reputation by the verdict score.
// When the blocklists are unavailable the reference defaults are returned.
func (b *Blocklist) AssessSecurity(ctx context.Context, domain string) types.SecurityRecord {
	verdict, err := b.checker.Check(ctx, domain)
	if err != nil {
		log.Debug().Err(err).Str("domain", domain).Msg("blocklist check unavailable, using defaults")

		return DefaultSecurity(domain)
	}

	return types.SecurityRecord{
		Domain:          domain,
		IsBlacklisted:   verdict.Listed,
		MalwareDetected: verdict.Malware,
		PhishingRisk:    verdict.Phishing,
		ReputationScore: types.Ptr(maxReputation - float64(verdict.Score)),
	}
}
