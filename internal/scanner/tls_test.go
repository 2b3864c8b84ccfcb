package scanner

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTLSProberValidCertificate(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	prober := NewTLSProber(2 * time.Second)
	prober.port = u.Port()

	assert.True(t, prober.Valid(context.Background(), u.Hostname()))
}

func TestTLSProberClosedPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	_, port, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	prober := NewTLSProber(time.Second)
	prober.port = port

	assert.False(t, prober.Valid(context.Background(), "127.0.0.1"))
}

func TestTLSProberCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := NewTLSProber(time.Second)
	prober.port = "1"

	assert.False(t, prober.Valid(ctx, "127.0.0.1"))
}

func TestTLSProberReusesService(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	prober := NewTLSProber(2 * time.Second)
	prober.port = u.Port()

	require.NoError(t, prober.serviceErr)
	require.NotNil(t, prober.service)

	service := prober.service

	var wg sync.WaitGroup

	results := make([]bool, 4)
	for i := range results {
		wg.Go(func() {
			results[i] = prober.Valid(context.Background(), u.Hostname())
		})
	}

	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}

	assert.Same(t, service, prober.service)
}
