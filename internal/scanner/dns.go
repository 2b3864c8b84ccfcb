package scanner

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/rs/zerolog/log"

	"github.com/zary0/domainscout/internal/types"
)

// queryTypes maps each record type to its wire type
var queryTypes = map[types.RecordType]uint16{
	types.RecordTypeA:     dns.TypeA,
	types.RecordTypeAAAA:  dns.TypeAAAA,
	types.RecordTypeMX:    dns.TypeMX,
	types.RecordTypeTXT:   dns.TypeTXT,
	types.RecordTypeNS:    dns.TypeNS,
	types.RecordTypeCNAME: dns.TypeCNAME,
}

// DNSProber queries a fixed DNS server for each record type independently
type DNSProber struct {
	client *dns.Client
	server string
}

// NewDNSProber creates a record prober against server with a per-query timeout
func NewDNSProber(server string, timeout time.Duration) *DNSProber {
	if server == "" {
		server = defaultDNSServer
	}

	if timeout <= 0 {
		timeout = defaultDNSTimeout
	}

	return &DNSProber{
		client: &dns.Client{Timeout: timeout},
		server: server,
	}
}

// Records queries every record type; a failing type yields an empty slice
func (p *DNSProber) Records(ctx context.Context, domain string) map[types.RecordType][]string {
	records := make(map[types.RecordType][]string, len(types.RecordTypes))

	for _, recordType := range types.RecordTypes {
		values, err := p.query(ctx, domain, recordType)
		if err != nil {
			log.Debug().Err(err).Str("domain", domain).Str("type", string(recordType)).Msg("dns query failed")

			values = []string{}
		}

		records[recordType] = values
	}

	return records
}

// query performs a single lookup and renders the answers of the requested type
func (p *DNSProber) query(ctx context.Context, domain string, recordType types.RecordType) ([]string, error) {
	qtype := queryTypes[recordType]

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	resp, _, err := p.client.ExchangeContext(ctx, msg, p.server)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(resp.Answer))
	for _, rr := range resp.Answer {
		if rr.Header().Rrtype != qtype {
			continue
		}

		if value := renderRecord(rr); value != "" {
			values = append(values, value)
		}
	}

	return values, nil
}

// renderRecord formats the data portion of a resource record without trailing dots
func renderRecord(rr dns.RR) string {
	switch v := rr.(type) {
	case *dns.A:
		return v.A.String()
	case *dns.AAAA:
		return v.AAAA.String()
	case *dns.MX:
		return strconv.Itoa(int(v.Preference)) + " " + trimDot(v.Mx)
	case *dns.TXT:
		return strings.Join(v.Txt, "")
	case *dns.NS:
		return trimDot(v.Ns)
	case *dns.CNAME:
		return trimDot(v.Target)
	default:
		return ""
	}
}

func trimDot(name string) string {
	return strings.TrimSuffix(name, ".")
}
