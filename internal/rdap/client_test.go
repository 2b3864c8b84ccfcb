package rdap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	rdaplib "github.com/openrdap/rdap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const domainResponse = `{
  "objectClassName": "domain",
  "ldhName": "example.com",
  "status": ["client transfer prohibited"],
  "events": [
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
    {"eventAction": "expiration", "eventDate": "2030-08-13T04:00:00Z"},
    {"eventAction": "last changed", "eventDate": "2024-08-14T07:01:34Z"}
  ],
  "nameservers": [
    {"objectClassName": "nameserver", "ldhName": "A.IANA-SERVERS.NET"},
    {"objectClassName": "nameserver", "ldhName": "b.iana-servers.net."}
  ],
  "entities": [
    {
      "objectClassName": "entity",
      "handle": "376",
      "roles": ["registrar"],
      "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "Example Registrar, Inc."]]]
    },
    {
      "objectClassName": "entity",
      "handle": "REG-1",
      "roles": ["registrant"],
      "vcardArray": ["vcard", [
        ["version", {}, "text", "4.0"],
        ["fn", {}, "text", "Example Holdings"],
        ["adr", {}, "text", ["", "", "1 Main St", "Tokyo", "", "100-0001", "JP"]]
      ]]
    }
  ]
}`

func newTestServer(t *testing.T) *url.URL {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/domain/example.com") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/rdap+json")
		_, _ = w.Write([]byte(domainResponse))
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	return u
}

func TestLookup(t *testing.T) {
	client := NewClient(WithServer(newTestServer(t)), WithTimeout(5*time.Second))

	reg, err := client.Lookup(context.Background(), " Example.COM ")
	require.NoError(t, err)

	assert.Equal(t, "example.com", reg.Domain)
	assert.Equal(t, []string{"client transfer prohibited"}, reg.Status)
	require.NotNil(t, reg.RegistrationDate)
	assert.Equal(t, time.Date(1995, 8, 14, 4, 0, 0, 0, time.UTC), *reg.RegistrationDate)
	require.NotNil(t, reg.ExpirationDate)
	assert.Equal(t, 2030, reg.ExpirationDate.Year())
	require.NotNil(t, reg.LastChanged)
	assert.Equal(t, "Example Registrar, Inc.", reg.Registrar)
	assert.Equal(t, []string{"a.iana-servers.net", "b.iana-servers.net"}, reg.NameServers)
	assert.Equal(t, "Example Holdings", reg.Registrant)
	assert.Equal(t, "JP", reg.RegistrantCountry)
}

func TestLookupNotFound(t *testing.T) {
	client := NewClient(WithServer(newTestServer(t)))

	reg, err := client.Lookup(context.Background(), "missing.example")
	require.Error(t, err)
	assert.Nil(t, reg)
}

func TestLookupEmptyDomain(t *testing.T) {
	client := NewClient()

	for _, input := range []string{"", "   "} {
		_, err := client.Lookup(context.Background(), input)
		assert.ErrorIs(t, err, ErrEmptyDomain)
	}
}

func TestBuildRegistration(t *testing.T) {
	d := &rdaplib.Domain{
		Status: []string{"active"},
		Events: []rdaplib.Event{
			{Action: "Registration", Date: "2020-01-02T03:04:05Z"},
			{Action: "expiration", Date: "not a date"},
		},
		Entities: []rdaplib.Entity{
			{Handle: "HANDLE-ONLY", Roles: []string{"Registrar"}},
			{Handle: "SECOND", Roles: []string{"registrar"}},
		},
	}

	reg := buildRegistration("example.org", d)

	assert.Equal(t, "example.org", reg.Domain)
	require.NotNil(t, reg.RegistrationDate)
	assert.Equal(t, 2020, reg.RegistrationDate.Year())
	assert.Nil(t, reg.ExpirationDate)
	assert.Nil(t, reg.LastChanged)
	assert.Equal(t, "HANDLE-ONLY", reg.Registrar)
	assert.Empty(t, reg.Registrant)
	assert.Empty(t, reg.NameServers)
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unknown registration", func(t *testing.T) {
		assert.Nil(t, Registration{}.AgeYears(now))
	})

	t.Run("ten years", func(t *testing.T) {
		registered := now.Add(-10 * 365.25 * 24 * time.Hour)
		age := Registration{RegistrationDate: &registered}.AgeYears(now)

		require.NotNil(t, age)
		assert.InDelta(t, 10.0, *age, 1e-9)
	})

	t.Run("future registration clamps to zero", func(t *testing.T) {
		registered := now.Add(48 * time.Hour)
		age := Registration{RegistrationDate: &registered}.AgeYears(now)

		require.NotNil(t, age)
		assert.Zero(t, *age)
	})
}
