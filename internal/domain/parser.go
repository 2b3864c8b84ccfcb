package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Info contains parsed domain information
type Info struct {
	Domain    string `json:"domain"`
	Subdomain string `json:"subdomain,omitempty"`
	TLD       string `json:"tld"`
	SLD       string `json:"sld"`
}

// Parse normalizes a domain, URL or email address into its domain parts
func Parse(input string) (*Info, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	if strings.Contains(input, "@") {
		parts := strings.Split(input, "@")
		if len(parts) != 2 {
			return nil, ErrInvalidEmailFormat
		}

		input = parts[1]
	}

	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidURLFormat, err)
		}

		input = u.Host
	}

	if idx := strings.LastIndex(input, ":"); idx != -1 {
		input = input[:idx]
	}

	input = strings.TrimSuffix(input, ".")

	if input == "" || !strings.Contains(input, ".") || strings.HasPrefix(input, ".") {
		return nil, ErrInvalidDomainFormat
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomainFormat, err)
	}

	tld, _ := publicsuffix.PublicSuffix(input)

	info := &Info{
		Domain: input,
		TLD:    tld,
		SLD:    strings.TrimSuffix(etld1, "."+tld),
	}

	if etld1 != input {
		info.Subdomain = strings.TrimSuffix(input, "."+etld1)
	}

	return info, nil
}
