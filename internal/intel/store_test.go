package intel

import (
	"net"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAdd(t *testing.T) {
	feed := Feed{Name: "phishing_list", Categories: []string{" Phishing ", ""}}
	store := newIndicatorStore()

	assert.True(t, store.add("Bad.Example.com", IndicatorTypeDomain, feed))
	assert.True(t, store.add("203.0.113.10", IndicatorTypeIP, feed))
	assert.True(t, store.add("198.51.100.0/24", IndicatorTypeCIDR, feed))
	assert.False(t, store.add("", IndicatorTypeDomain, feed))
	assert.False(t, store.add("not/a/cidr", IndicatorTypeCIDR, feed))
	assert.False(t, store.add("x@example.com", "email", feed))

	assert.Equal(t, 3, store.total)
	require.Contains(t, store.domain, "bad.example.com")
	assert.Equal(t, map[string]struct{}{"phishing": {}}, store.domain["bad.example.com"].categories)
}

func TestStoreAddRespectsFeedTypes(t *testing.T) {
	feed := Feed{Name: "domains_only", Indicators: []IndicatorType{IndicatorTypeDomain}}
	store := newIndicatorStore()

	assert.True(t, store.add("bad.example.com", IndicatorTypeDomain, feed))
	assert.False(t, store.add("203.0.113.10", IndicatorTypeIP, feed))
	assert.Equal(t, 1, store.total)
}

func TestStoreIngest(t *testing.T) {
	feed := Feed{Name: "mixed", Categories: []string{"malware"}}
	data := strings.Join([]string{
		"# malware hosts",
		"0.0.0.0 dropper.example.com",
		"https://payload.example.org/bin",
		"203.0.113.77",
		"10.0.0.1",
		"",
		"not a domain",
	}, "\n")

	store := newIndicatorStore()
	added, err := store.ingest(strings.NewReader(data), feed)

	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Contains(t, store.domain, "dropper.example.com")
	assert.Contains(t, store.domain, "payload.example.org")
	assert.Contains(t, store.ip, "203.0.113.77")
}

func TestStoreMatchDomain(t *testing.T) {
	store := newIndicatorStore()
	store.add("evil.example", IndicatorTypeDomain, Feed{Name: "a", Categories: []string{"phishing"}})
	store.add("login.evil.example", IndicatorTypeDomain, Feed{Name: "b", Categories: []string{"malware"}})

	t.Run("exact", func(t *testing.T) {
		matches := store.matchDomain("EVIL.example.")

		require.Len(t, matches, 1)
		assert.Equal(t, "evil.example", matches[0].Value)
		assert.Equal(t, "domain evil.example", matches[0].Context)
	})

	t.Run("parent domains", func(t *testing.T) {
		matches := store.matchDomain("sso.login.evil.example")

		require.Len(t, matches, 2)
		assert.Equal(t, "login.evil.example", matches[0].Value)
		assert.Equal(t, []string{"malware"}, matches[0].Categories)
		assert.Equal(t, "evil.example", matches[1].Value)
		assert.Equal(t, "parent domain evil.example of sso.login.evil.example", matches[1].Context)
	})

	t.Run("top-level label is never matched", func(t *testing.T) {
		store.add("example", IndicatorTypeDomain, Feed{Name: "c"})

		assert.Empty(t, store.matchDomain("clean.example"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, store.matchDomain(""))
	})
}

func TestStoreMatchDomainStopsAtPublicSuffix(t *testing.T) {
	store := newIndicatorStore()
	store.add("co.jp", IndicatorTypeDomain, Feed{Name: "noisy"})
	store.add("github.io", IndicatorTypeDomain, Feed{Name: "noisy"})
	store.add("shop.co.jp", IndicatorTypeDomain, Feed{Name: "a", Categories: []string{"phishing"}})

	testCases := []struct {
		domain   string
		expected []string
	}{
		{"other.co.jp", nil},
		{"user.github.io", nil},
		{"www.shop.co.jp", []string{"shop.co.jp"}},
		{"shop.co.jp", []string{"shop.co.jp"}},
		{"co.jp", []string{"co.jp"}},
	}

	for _, tc := range testCases {
		t.Run(tc.domain, func(t *testing.T) {
			matches := store.matchDomain(tc.domain)

			values := lo.Map(matches, func(m Match, _ int) string { return m.Value })
			if tc.expected == nil {
				assert.Empty(t, values)
				return
			}

			assert.Equal(t, tc.expected, values)
		})
	}
}

func TestStoreMatchIP(t *testing.T) {
	store := newIndicatorStore()
	store.add("203.0.113.10", IndicatorTypeIP, Feed{Name: "ips"})
	store.add("203.0.113.0/24", IndicatorTypeCIDR, Feed{Name: "nets"})

	matches := store.matchIP(net.ParseIP("203.0.113.10"))
	require.Len(t, matches, 2)
	assert.Equal(t, IndicatorTypeIP, matches[0].Type)
	assert.Equal(t, IndicatorTypeCIDR, matches[1].Type)

	assert.Len(t, store.matchIP(net.ParseIP("203.0.113.99")), 1)
	assert.Empty(t, store.matchIP(net.ParseIP("198.51.100.1")))
	assert.Nil(t, store.matchIP(nil))
}

func TestStoreMergesFeedsForSameIndicator(t *testing.T) {
	store := newIndicatorStore()
	store.add("bad.example.com", IndicatorTypeDomain, Feed{Name: "feed_b", Categories: []string{"spam"}})
	store.add("bad.example.com", IndicatorTypeDomain, Feed{Name: "feed_a", Categories: []string{"phishing"}})

	matches := store.matchDomain("bad.example.com")

	require.Len(t, matches, 1)
	assert.Equal(t, []string{"feed_a", "feed_b"}, matches[0].Feeds)
	assert.Equal(t, []string{"phishing", "spam"}, matches[0].Categories)
}
