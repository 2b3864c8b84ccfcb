package intel

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/net/publicsuffix"
)

// maxLineBytes bounds a single feed line
const maxLineBytes = 2 * 1024 * 1024

// indicatorStore holds ingested indicators; it is built once per hydration and then only read
type indicatorStore struct {
	ip     map[string]*indicatorRecord
	cidr   []*cidrRecord
	domain map[string]*indicatorRecord
	total  int
}

type indicatorRecord struct {
	value      string
	typ        IndicatorType
	categories map[string]struct{}
	feeds      map[string]struct{}
}

type cidrRecord struct {
	network *net.IPNet
	record  *indicatorRecord
}

func newIndicatorStore() *indicatorStore {
	return &indicatorStore{
		ip:     make(map[string]*indicatorRecord),
		domain: make(map[string]*indicatorRecord),
	}
}

// add records value for the feed, returning false when it is rejected
func (s *indicatorStore) add(value string, typ IndicatorType, feed Feed) bool {
	if value == "" || !feed.allows(typ) {
		return false
	}

	var rec *indicatorRecord

	switch typ {
	case IndicatorTypeIP:
		rec = ensureRecord(s.ip, value, typ)
	case IndicatorTypeDomain:
		rec = ensureRecord(s.domain, strings.ToLower(value), typ)
	case IndicatorTypeCIDR:
		_, network, err := net.ParseCIDR(value)
		if err != nil {
			return false
		}

		rec = newRecord(network.String(), typ)
		s.cidr = append(s.cidr, &cidrRecord{network: network, record: rec})
	default:
		return false
	}

	for _, c := range feed.Categories {
		if c = strings.TrimSpace(strings.ToLower(c)); c != "" {
			rec.categories[c] = struct{}{}
		}
	}

	rec.feeds[feed.Name] = struct{}{}
	s.total++

	return true
}

func newRecord(value string, typ IndicatorType) *indicatorRecord {
	return &indicatorRecord{
		value:      value,
		typ:        typ,
		categories: make(map[string]struct{}),
		feeds:      make(map[string]struct{}),
	}
}

func ensureRecord(m map[string]*indicatorRecord, key string, typ IndicatorType) *indicatorRecord {
	if existing, ok := m[key]; ok {
		return existing
	}

	rec := newRecord(key, typ)
	m[key] = rec

	return rec
}

// ingest reads one indicator per line from r
func (s *indicatorStore) ingest(r io.Reader, feed Feed) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var added int

	for scanner.Scan() {
		value, typ := parseIndicator(scanner.Text())
		if value == "" {
			continue
		}

		if s.add(value, typ, feed) {
			added++
		}
	}

	if err := scanner.Err(); err != nil {
		return added, fmt.Errorf("read feed %s: %w", feed.Name, err)
	}

	return added, nil
}

// matchDomain returns hits for the domain and each parent down to its registrable domain.
// Public suffixes such as co.jp are never matched as parents.
func (s *indicatorStore) matchDomain(domain string) []Match {
	domain = strings.TrimSuffix(strings.ToLower(domain), ".")
	if domain == "" {
		return nil
	}

	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		registrable = domain
	}

	var matches []Match

	for candidate := domain; ; {
		if rec, ok := s.domain[candidate]; ok {
			match := rec.toMatch()
			match.Context = "domain " + domain
			if candidate != domain {
				match.Context = fmt.Sprintf("parent domain %s of %s", candidate, domain)
			}

			matches = append(matches, match)
		}

		if candidate == registrable || !strings.HasSuffix(candidate, "."+registrable) {
			break
		}

		_, candidate, _ = strings.Cut(candidate, ".")
	}

	return matches
}

// matchIP returns hits for an exact address and any containing network
func (s *indicatorStore) matchIP(ip net.IP) []Match {
	if ip == nil {
		return nil
	}

	var matches []Match

	if rec, ok := s.ip[ip.String()]; ok {
		matches = append(matches, rec.toMatch())
	}

	for _, cidr := range s.cidr {
		if cidr.network.Contains(ip) {
			matches = append(matches, cidr.record.toMatch())
		}
	}

	return matches
}

func (r *indicatorRecord) toMatch() Match {
	return Match{
		Value:      r.value,
		Type:       r.typ,
		Categories: sortedKeys(r.categories),
		Feeds:      sortedKeys(r.feeds),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)

	return keys
}
