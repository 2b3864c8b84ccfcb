package scanner

import (
	"context"
	"math"
	"time"

	"github.com/projectdiscovery/tlsx/pkg/tlsx"
	"github.com/projectdiscovery/tlsx/pkg/tlsx/clients"
	"github.com/rs/zerolog/log"
)

const (
	// tlsPort is the port probed for a certificate
	tlsPort = "443"
	// tlsRetries is the number of retry attempts tlsx makes per connection
	tlsRetries = 1
)

// TLSProber checks that a peer certificate can be obtained; the chain is not verified.
// The underlying tlsx service is built once and shared by concurrent probes.
type TLSProber struct {
	timeout    time.Duration
	port       string
	service    *tlsx.Service
	serviceErr error
}

// NewTLSProber creates a TLS probe bounded by timeout
func NewTLSProber(timeout time.Duration) *TLSProber {
	if timeout <= 0 {
		timeout = defaultTLSTimeout
	}

	service, err := tlsx.New(&clients.Options{
		Timeout:    int(math.Ceil(timeout.Seconds())),
		Retries:    tlsRetries,
		Expired:    true,
		SelfSigned: true,
		MisMatched: true,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create tls client")
	}

	return &TLSProber{
		timeout:    timeout,
		port:       tlsPort,
		service:    service,
		serviceErr: err,
	}
}

// Valid reports whether a TLS handshake on port 443 yielded a certificate
func (p *TLSProber) Valid(ctx context.Context, domain string) bool {
	type outcome struct {
		resp *clients.Response
		err  error
	}

	done := make(chan outcome, 1)

	go func() {
		resp, err := p.connect(domain)
		done <- outcome{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Debug().Err(ctx.Err()).Str("domain", domain).Msg("tls probe cancelled")

		return false
	case res := <-done:
		if res.err != nil {
			log.Debug().Err(res.err).Str("domain", domain).Msg("tls probe failed")

			return false
		}

		if res.resp == nil || res.resp.CertificateResponse == nil {
			log.Debug().Err(ErrNoCertificate).Str("domain", domain).Msg("tls probe failed")

			return false
		}

		return true
	}
}

// connect performs the handshake with the shared tlsx service, accepting any certificate
func (p *TLSProber) connect(host string) (*clients.Response, error) {
	if p.serviceErr != nil {
		return nil, p.serviceErr
	}

	return p.service.Connect(host, "", p.port)
}
