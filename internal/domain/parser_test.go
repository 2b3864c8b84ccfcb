package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    Info
		wantErr error
	}{
		{name: "simple domain", input: "example.com", want: Info{Domain: "example.com", TLD: "com", SLD: "example"}},
		{name: "subdomain", input: "www.example.com", want: Info{Domain: "www.example.com", Subdomain: "www", TLD: "com", SLD: "example"}},
		{name: "nested subdomain", input: "api.staging.example.com", want: Info{Domain: "api.staging.example.com", Subdomain: "api.staging", TLD: "com", SLD: "example"}},
		{name: "co.jp suffix", input: "shop.example.co.jp", want: Info{Domain: "shop.example.co.jp", Subdomain: "shop", TLD: "co.jp", SLD: "example"}},
		{name: "email address", input: "user@mail.example.com", want: Info{Domain: "mail.example.com", Subdomain: "mail", TLD: "com", SLD: "example"}},
		{name: "url with path", input: "https://example.com/path/to/resource", want: Info{Domain: "example.com", TLD: "com", SLD: "example"}},
		{name: "domain with port", input: "api.example.com:443", want: Info{Domain: "api.example.com", Subdomain: "api", TLD: "com", SLD: "example"}},
		{name: "fqdn trailing dot", input: "example.com.", want: Info{Domain: "example.com", TLD: "com", SLD: "example"}},
		{name: "mixed case and whitespace", input: "  Example.COM ", want: Info{Domain: "example.com", TLD: "com", SLD: "example"}},
		{name: "no tld", input: "example", wantErr: ErrInvalidDomainFormat},
		{name: "empty", input: "", wantErr: ErrInvalidDomainFormat},
		{name: "multiple at signs", input: "user@@example.com", wantErr: ErrInvalidEmailFormat},
		{name: "just tld", input: ".com", wantErr: ErrInvalidDomainFormat},
		{name: "scheme only", input: "http://", wantErr: ErrInvalidDomainFormat},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := Parse(tc.input)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, *info)
		})
	}
}
