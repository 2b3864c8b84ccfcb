package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/theopenlane/httpsling"
)

const (
	// defaultStorageDir holds the last good copy of every feed
	defaultStorageDir = "data/intel"
	// defaultDownloadTimeout bounds a single feed download
	defaultDownloadTimeout = 90 * time.Second
	// defaultResolverTimeout bounds resolving a checked domain to addresses
	defaultResolverTimeout = 10 * time.Second
	// maxScore caps the verdict score
	maxScore = 100
)

// categoryWeights are the score contributions of known categories; unknown categories weigh defaultCategoryWeight
var categoryWeights = map[string]int{
	CategoryMalware:  40,
	CategoryPhishing: 40,
	"c2":             30,
	"botnet":         25,
	"suspicious":     20,
	"spam":           15,
}

const defaultCategoryWeight = 10

// Manager downloads blocklist feeds, keeps them in memory and answers domain checks
type Manager struct {
	mu           sync.RWMutex
	hydrating    sync.Mutex
	config       FeedConfig
	store        *indicatorStore
	httpClient   *http.Client
	storageDir   string
	hydrated     bool
	lastHydrated time.Time

	resolver        *net.Resolver
	resolverTimeout time.Duration
	resolveIPs      bool
}

// Option configures the Manager
type Option func(*Manager)

// WithStorageDir overrides the directory used to persist raw feed downloads
func WithStorageDir(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.storageDir = path
		}
	}
}

// WithHTTPClient supplies a custom HTTP client for feed downloads
func WithHTTPClient(client *http.Client) Option {
	return func(m *Manager) {
		if client != nil {
			m.httpClient = client
		}
	}
}

// WithResolvedIPs also checks the addresses a domain resolves to against IP and CIDR indicators
func WithResolvedIPs(enabled bool) Option {
	return func(m *Manager) {
		m.resolveIPs = enabled
	}
}

// WithResolver sets the resolver used when resolved addresses are checked
func WithResolver(resolver *net.Resolver) Option {
	return func(m *Manager) {
		if resolver != nil {
			m.resolver = resolver
		}
	}
}

// WithResolverTimeout bounds address resolution during checks
func WithResolverTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.resolverTimeout = timeout
		}
	}
}

// NewManager creates a manager for the feed configuration
func NewManager(cfg FeedConfig, opts ...Option) (*Manager, error) {
	if len(cfg.Feeds) == 0 {
		return nil, ErrNoFeedsDefined
	}

	for _, feed := range cfg.Feeds {
		if strings.TrimSpace(feed.Name) == "" {
			return nil, ErrFeedNameRequired
		}
	}

	m := &Manager{
		config:          cfg,
		store:           newIndicatorStore(),
		storageDir:      defaultStorageDir,
		httpClient:      &http.Client{Timeout: defaultDownloadTimeout},
		resolver:        net.DefaultResolver,
		resolverTimeout: defaultResolverTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// LoadFeedConfig reads a feed configuration from disk
func LoadFeedConfig(path string) (FeedConfig, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return FeedConfig{}, err
	}
	defer file.Close() //nolint:errcheck // read-only file

	return DecodeFeedConfig(file)
}

// DecodeFeedConfig parses a JSON feed configuration and normalizes indicator types
func DecodeFeedConfig(r io.Reader) (FeedConfig, error) {
	var cfg FeedConfig
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return FeedConfig{}, err
	}

	for i, feed := range cfg.Feeds {
		normalized := make([]IndicatorType, 0, len(feed.Indicators))

		for _, t := range feed.Indicators {
			parsed, err := ParseIndicatorType(string(t))
			if err != nil {
				return FeedConfig{}, fmt.Errorf("feed %s: %w", feed.Name, err)
			}

			normalized = append(normalized, parsed)
		}

		cfg.Feeds[i].Indicators = normalized
	}

	return cfg, nil
}

// Hydrate downloads every feed concurrently and replaces the store when at least one feed produced data.
// A feed whose download fails falls back to its last cached copy.
func (m *Manager) Hydrate(ctx context.Context) (HydrationSummary, error) {
	if !m.hydrating.TryLock() {
		return HydrationSummary{}, ErrHydrationInProgress
	}
	defer m.hydrating.Unlock()

	summary := HydrationSummary{
		StartedAt:  time.Now().UTC(),
		TotalFeeds: len(m.config.Feeds),
		Feeds:      make([]FeedSummary, len(m.config.Feeds)),
	}

	if err := os.MkdirAll(m.storageDir, 0o750); err != nil {
		return summary, fmt.Errorf("create storage dir: %w", err)
	}

	store := newIndicatorStore()

	var (
		storeMu sync.Mutex
		wg      sync.WaitGroup
	)

	for i, feed := range m.config.Feeds {
		wg.Go(func() {
			summary.Feeds[i] = m.hydrateFeed(ctx, feed, store, &storeMu)
		})
	}

	wg.Wait()

	summary.CompletedAt = time.Now().UTC()
	summary.SuccessfulFeeds = lo.CountBy(summary.Feeds, func(f FeedSummary) bool { return f.Downloaded })
	summary.FailedFeeds = summary.TotalFeeds - summary.SuccessfulFeeds
	summary.TotalIndicators = lo.SumBy(summary.Feeds, func(f FeedSummary) int { return f.Indicators })

	if summary.SuccessfulFeeds == 0 {
		return summary, ErrNoUsableFeeds
	}

	m.mu.Lock()
	m.store = store
	m.hydrated = true
	m.lastHydrated = summary.CompletedAt
	m.mu.Unlock()

	log.Info().Int("feeds", summary.SuccessfulFeeds).Int("failed", summary.FailedFeeds).
		Int("indicators", summary.TotalIndicators).Msg("blocklist feeds hydrated")

	return summary, nil
}

// hydrateFeed downloads one feed and ingests it into store
func (m *Manager) hydrateFeed(ctx context.Context, feed Feed, store *indicatorStore, storeMu *sync.Mutex) FeedSummary {
	start := time.Now()
	result := FeedSummary{Name: feed.Name}
	dest := filepath.Join(m.storageDir, feed.Name+".txt")

	if err := m.fetchFeed(ctx, feed, dest); err != nil {
		result.Error = err.Error()

		if _, statErr := os.Stat(dest); statErr != nil {
			log.Warn().Err(err).Str("feed", feed.Name).Msg("feed download failed")

			result.Duration = time.Since(start)

			return result
		}

		log.Warn().Err(err).Str("feed", feed.Name).Msg("feed download failed, using cached copy")

		result.UsedCache = true
	}

	file, err := os.Open(filepath.Clean(dest))
	if err != nil {
		result.Error = err.Error()
		result.Duration = time.Since(start)

		return result
	}
	defer file.Close() //nolint:errcheck // read-only file

	storeMu.Lock()
	added, err := store.ingest(file, feed)
	storeMu.Unlock()

	if err != nil {
		result.Error = err.Error()
	}

	result.Indicators = added
	result.Downloaded = err == nil || added > 0
	result.Duration = time.Since(start)

	return result
}

// fetchFeed downloads a feed into a temporary file and atomically replaces dest
func (m *Manager) fetchFeed(ctx context.Context, feed Feed, dest string) error {
	tmp, err := os.CreateTemp(m.storageDir, feed.Name+"-*.tmp")
	if err != nil {
		return err
	}

	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	requester := httpsling.MustNew(
		httpsling.URL(feed.URL),
		httpsling.Method(http.MethodGet),
		httpsling.WithHTTPClient(m.httpClient),
	)

	resp, _, err := requester.ReceiveTo(ctx, tmp)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", ErrUnexpectedFeedStatus, resp.StatusCode)
	}

	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}

// Check evaluates a domain, its parent domains and optionally its addresses against the store
func (m *Manager) Check(ctx context.Context, domain string) (Verdict, error) {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	verdict := Verdict{Domain: domain}

	m.mu.RLock()
	hydrated, store := m.hydrated, m.store
	m.mu.RUnlock()

	if !hydrated || store == nil {
		return verdict, ErrNotHydrated
	}

	matches := store.matchDomain(domain)

	if m.resolveIPs {
		for _, ip := range m.resolve(ctx, domain) {
			for _, match := range store.matchIP(ip) {
				match.Context = fmt.Sprintf("resolved address %s of %s", ip, domain)
				matches = append(matches, match)
			}
		}
	}

	matches = lo.UniqBy(matches, func(match Match) string {
		return string(match.Type) + "|" + match.Value + "|" + match.Context
	})

	categories := lo.Uniq(lo.FlatMap(matches, func(match Match, _ int) []string { return match.Categories }))
	slices.Sort(categories)

	verdict.Matches = matches
	verdict.Listed = len(matches) > 0
	verdict.Categories = categories
	verdict.Malware = lo.Contains(categories, CategoryMalware)
	verdict.Phishing = lo.Contains(categories, CategoryPhishing)
	verdict.Score = scoreCategories(categories)

	return verdict, nil
}

// resolve returns the addresses for domain, or nil on failure
func (m *Manager) resolve(ctx context.Context, domain string) []net.IP {
	ctx, cancel := context.WithTimeout(ctx, m.resolverTimeout)
	defer cancel()

	addrs, err := m.resolver.LookupIPAddr(ctx, domain)
	if err != nil {
		log.Debug().Err(err).Str("domain", domain).Msg("blocklist address resolution failed")

		return nil
	}

	return lo.Map(addrs, func(addr net.IPAddr, _ int) net.IP { return addr.IP })
}

// Status reports whether the store is hydrated and how many indicators it holds
func (m *Manager) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Status{
		Hydrated:     m.hydrated,
		LastHydrated: m.lastHydrated,
		Indicators:   m.store.total,
		Feeds:        len(m.config.Feeds),
	}
}

// scoreCategories sums the weight of each distinct category, capped at maxScore
func scoreCategories(categories []string) int {
	total := lo.SumBy(categories, func(cat string) int {
		if weight, ok := categoryWeights[cat]; ok {
			return weight
		}

		return defaultCategoryWeight
	})

	return min(total, maxScore)
}
