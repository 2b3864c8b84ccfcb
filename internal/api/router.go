package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// defaultRequestTimeout bounds a request when no timeout is configured
	defaultRequestTimeout = 60 * time.Second
	// defaultMaxBatchSize caps the domains accepted by one batch request
	defaultMaxBatchSize = 50
)

// RouterConfig holds the dependencies and limits for the API router
type RouterConfig struct {
	// Analyzer runs the domain pipeline; required
	Analyzer Analyzer
	// Intel is the optional threat feed manager behind the intel endpoints
	Intel IntelManager
	// Notifier is the optional destination for analysis summaries
	Notifier Notifier
	// MaxBodySize caps request bodies in bytes; zero disables the cap
	MaxBodySize int64
	// MaxBatchSize caps the domains in one batch request
	MaxBatchSize int
	// RequestTimeout bounds the handling of every request
	RequestTimeout time.Duration
}

// NewRouter creates a new chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		analyzer:     cfg.Analyzer,
		intel:        cfg.Intel,
		notifier:     cfg.Notifier,
		maxBodySize:  cfg.MaxBodySize,
		maxBatchSize: cfg.MaxBatchSize,
	}

	if h.maxBatchSize <= 0 {
		h.maxBatchSize = defaultMaxBatchSize
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/analyze", h.handleAnalyze)
		r.Post("/analyze/batch", h.handleAnalyzeBatch)
		r.Post("/extract", h.handleExtract)

		r.Route("/intel", func(r chi.Router) {
			r.Post("/hydrate", h.handleIntelHydrate)
			r.Get("/status", h.handleIntelStatus)
		})
	})

	return r
}

// cors allows browser clients on other origins to call the API
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-Id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
