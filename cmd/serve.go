package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zary0/domainscout/internal/api"
)

// serveCmd is the cobra command that starts the domainscout API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the domainscout api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve initializes dependencies and starts the domainscout API server
func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, intelManager, err := setupAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("setting up analyzer: %w", err)
	}

	routerCfg := api.RouterConfig{
		Analyzer:       a,
		MaxBodySize:    cfg.Server.MaxBodySize,
		MaxBatchSize:   cfg.Server.MaxBatchSize,
		RequestTimeout: cfg.Server.RequestTimeout,
	}

	// interface fields stay nil unless configured
	if intelManager != nil {
		routerCfg.Intel = intelManager

		if cfg.Intel.AutoHydrate {
			go func() {
				log.Info().Msg("starting automatic intel hydration")
				hydrateIntel(ctx, intelManager)
			}()
		}
	}

	if slackClient := setupSlack(cfg); slackClient != nil {
		routerCfg.Notifier = slackClient
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting domainscout service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}
