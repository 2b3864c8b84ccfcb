package scanner

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zary0/domainscout/internal/messages"
	"github.com/zary0/domainscout/internal/rdap"
)

const whoisSeparator = " | "

// RegistrationLookup fetches registration data for a domain
type RegistrationLookup interface {
	Lookup(ctx context.Context, domain string) (*rdap.Registration, error)
}

// RDAPWhois renders RDAP registration data as WHOIS summary text
type RDAPWhois struct {
	lookup  RegistrationLookup
	catalog messages.Catalog
}

// NewRDAPWhois creates a WHOIS probe labelled with catalog
func NewRDAPWhois(lookup RegistrationLookup, catalog messages.Catalog) *RDAPWhois {
	if catalog == nil {
		catalog = messages.Japanese
	}

	return &RDAPWhois{
		lookup:  lookup,
		catalog: catalog,
	}
}

// Whois returns the summary text, or nil when the lookup failed
func (w *RDAPWhois) Whois(ctx context.Context, domain string) *string {
	reg, err := w.lookup.Lookup(ctx, domain)
	if err != nil {
		log.Debug().Err(err).Str("domain", domain).Msg("whois lookup failed")

		return nil
	}

	text := FormatWhois(reg, w.catalog)

	return &text
}

// FormatWhois renders the present registration fields as "<label>: <value>" pairs joined by " | ",
// or the catalog's no-data text when none are present
func FormatWhois(reg *rdap.Registration, catalog messages.Catalog) string {
	if reg == nil {
		return catalog.Text(messages.WhoisNoData)
	}

	parts := make([]string, 0)
	add := func(kind messages.Kind, value string) {
		if value != "" {
			parts = append(parts, catalog.Text(kind)+": "+value)
		}
	}

	add(messages.WhoisStatus, strings.Join(reg.Status, ", "))
	add(messages.WhoisCreated, formatDate(reg.RegistrationDate))
	add(messages.WhoisExpires, formatDate(reg.ExpirationDate))
	add(messages.WhoisUpdated, formatDate(reg.LastChanged))
	add(messages.WhoisRegistrar, reg.Registrar)
	add(messages.WhoisNameServers, strings.Join(reg.NameServers, ", "))
	add(messages.WhoisRegistrant, reg.Registrant)
	add(messages.WhoisCountry, reg.RegistrantCountry)

	if len(parts) == 0 {
		return catalog.Text(messages.WhoisNoData)
	}

	return strings.Join(parts, whoisSeparator)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.UTC().Format(time.DateTime)
}
