package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/zary0/domainscout/config"
	"github.com/zary0/domainscout/internal/analyzer"
	"github.com/zary0/domainscout/internal/assess"
	"github.com/zary0/domainscout/internal/intel"
	"github.com/zary0/domainscout/internal/messages"
	"github.com/zary0/domainscout/internal/rdap"
	"github.com/zary0/domainscout/internal/scanner"
	"github.com/zary0/domainscout/internal/slack"
)

// loadConfig reads the config file named by --config and applies the --lang override
func loadConfig() (*config.Config, error) {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if lang := k.String("lang"); lang != "" {
		cfg.Analysis.Language = lang
	}

	return cfg, nil
}

// setupAnalyzer wires the probes and assessors selected by the config; the intel
// manager is nil unless intel is enabled
func setupAnalyzer(cfg *config.Config) (*analyzer.Analyzer, *intel.Manager, error) {
	catalog := messages.ForLanguage(cfg.Analysis.Language)
	rdapClient := rdap.NewClient(rdap.WithTimeout(cfg.Scanner.RDAPTimeout))

	s := scanner.New(
		scanner.WithDNSServer(cfg.Scanner.DNSServer),
		scanner.WithDNSTimeout(cfg.Scanner.DNSTimeout),
		scanner.WithResolverTimeout(cfg.Scanner.ResolverTimeout),
		scanner.WithResolverCacheTTL(cfg.Scanner.ResolverCacheTTL),
		scanner.WithHTTPTimeout(cfg.Scanner.HTTPTimeout),
		scanner.WithTLSTimeout(cfg.Scanner.TLSTimeout),
		scanner.WithCatalog(catalog),
		scanner.WithWhoisLookup(scanner.NewRDAPWhois(rdapClient, catalog)),
	)

	opts := []analyzer.Option{
		analyzer.WithScanner(s),
		analyzer.WithCatalog(catalog),
		analyzer.WithConcurrency(cfg.Analysis.Concurrency),
		analyzer.WithRateLimit(cfg.Analysis.RateLimit, cfg.Analysis.RateBurst),
	}

	var manager *intel.Manager

	if cfg.Intel.Enabled {
		var err error

		manager, err = setupIntel(cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	if cfg.Analysis.Security == config.SecurityBlocklist && manager != nil {
		opts = append(opts, analyzer.WithSecurityAssessor(assess.NewBlocklist(manager)))
	}

	if cfg.Analysis.Value == config.ValueRegistration {
		opts = append(opts, analyzer.WithValueAssessor(assess.NewRegistration(rdapClient)))
	}

	log.Debug().Str("language", cfg.Analysis.Language).Str("security", cfg.Analysis.Security).
		Str("value", cfg.Analysis.Value).Msg("analyzer configured")

	return analyzer.New(opts...), manager, nil
}

// setupIntel initializes the threat intelligence manager from config
func setupIntel(cfg *config.Config) (*intel.Manager, error) {
	feedCfg, err := intel.LoadFeedConfig(cfg.Intel.FeedConfig)
	if err != nil {
		return nil, fmt.Errorf("loading feed config from %s: %w", cfg.Intel.FeedConfig, err)
	}

	manager, err := intel.NewManager(
		feedCfg,
		intel.WithStorageDir(cfg.Intel.StorageDir),
		intel.WithHTTPClient(&http.Client{Timeout: cfg.Intel.RequestTimeout}),
		intel.WithResolvedIPs(cfg.Intel.ResolveIPs),
		intel.WithResolverTimeout(cfg.Intel.ResolverTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing intel manager: %w", err)
	}

	return manager, nil
}

// hydrateIntel downloads the configured feeds and logs the outcome
func hydrateIntel(ctx context.Context, manager *intel.Manager) {
	summary, err := manager.Hydrate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("intel hydration failed")
		return
	}

	log.Info().Int("feeds", summary.SuccessfulFeeds).Int("failed", summary.FailedFeeds).
		Int("indicators", summary.TotalIndicators).Msg("intel hydration complete")
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Debug().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithUsername(cfg.Slack.Username),
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
