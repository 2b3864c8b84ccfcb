package rdap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	rdaplib "github.com/openrdap/rdap"
)

const (
	// defaultTimeout is the default timeout for RDAP queries
	defaultTimeout = 30 * time.Second

	// hoursPerYear converts a registration age to fractional years
	hoursPerYear = 24 * 365.25
)

// Registration captures the registration data of a domain
type Registration struct {
	// Domain is the domain that was queried
	Domain string `json:"domain"`
	// Status lists the domain status values
	Status []string `json:"status,omitempty"`
	// RegistrationDate is when the domain was first registered
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	// ExpirationDate is when the domain registration expires
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	// LastChanged is when the domain record was last modified
	LastChanged *time.Time `json:"last_changed,omitempty"`
	// Registrar is the name of the registrar
	Registrar string `json:"registrar,omitempty"`
	// NameServers lists the delegated name servers
	NameServers []string `json:"name_servers,omitempty"`
	// Registrant is the name of the registrant, when published
	Registrant string `json:"registrant,omitempty"`
	// RegistrantCountry is the registrant's country, when published
	RegistrantCountry string `json:"registrant_country,omitempty"`
}

// AgeYears returns the fractional years since registration relative to now, or nil when unknown
func (r Registration) AgeYears(now time.Time) *float64 {
	if r.RegistrationDate == nil {
		return nil
	}

	age := now.Sub(*r.RegistrationDate).Hours() / hoursPerYear
	if age < 0 {
		age = 0
	}

	return &age
}

// Client wraps the openrdap library for registration lookups
type Client struct {
	rdapClient *rdaplib.Client
	server     *url.URL
	timeout    time.Duration
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for RDAP queries
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.rdapClient.HTTP = httpClient
		}
	}
}

// WithTimeout overrides the timeout for RDAP queries
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithServer pins queries to a single RDAP server instead of using bootstrap discovery
func WithServer(server *url.URL) ClientOption {
	return func(c *Client) {
		if server != nil {
			c.server = server
		}
	}
}

// NewClient creates an RDAP client for registration lookups
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		rdapClient: &rdaplib.Client{},
		timeout:    defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Lookup performs an RDAP domain query and returns the registration data
func (c *Client) Lookup(ctx context.Context, domain string) (*Registration, error) {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return nil, ErrEmptyDomain
	}

	req := &rdaplib.Request{
		Type:    rdaplib.DomainRequest,
		Query:   domain,
		Server:  c.server,
		Timeout: c.timeout,
	}

	req = req.WithContext(ctx)

	resp, err := c.rdapClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RDAP query for %s: %w", domain, err)
	}

	domainObj, ok := resp.Object.(*rdaplib.Domain)
	if !ok || domainObj == nil {
		return nil, fmt.Errorf("RDAP query for %s: %w", domain, ErrUnexpectedObject)
	}

	reg := buildRegistration(domain, domainObj)

	return &reg, nil
}

// buildRegistration extracts registration data from the RDAP domain response
func buildRegistration(domain string, d *rdaplib.Domain) Registration {
	reg := Registration{
		Domain: domain,
		Status: d.Status,
	}

	for _, event := range d.Events {
		parsed, err := time.Parse(time.RFC3339, event.Date)
		if err != nil {
			continue
		}

		t := parsed.UTC()
		switch strings.ToLower(event.Action) {
		case "registration":
			reg.RegistrationDate = &t
		case "expiration":
			reg.ExpirationDate = &t
		case "last changed":
			reg.LastChanged = &t
		}
	}

	for _, ns := range d.Nameservers {
		if name := strings.TrimSuffix(strings.ToLower(ns.LDHName), "."); name != "" {
			reg.NameServers = append(reg.NameServers, name)
		}
	}

	for _, entity := range d.Entities {
		for _, role := range entity.Roles {
			switch {
			case strings.EqualFold(role, "registrar") && reg.Registrar == "":
				reg.Registrar = entityName(entity)
			case strings.EqualFold(role, "registrant") && reg.Registrant == "":
				reg.Registrant = entityName(entity)
				if entity.VCard != nil {
					reg.RegistrantCountry = entity.VCard.Country()
				}
			}
		}
	}

	return reg
}

// entityName prefers the vCard full name and falls back to the handle
func entityName(entity rdaplib.Entity) string {
	if entity.VCard != nil {
		if name := entity.VCard.Name(); name != "" {
			return name
		}
	}

	return entity.Handle
}
