package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/investmatch/investmatch/infrastructure/api"
	apimiddleware "github.com/investmatch/investmatch/infrastructure/api/middleware"
	"github.com/investmatch/investmatch/internal/config"
	"github.com/investmatch/investmatch/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Data directory (default: ~/.investmatch)
  DB_URL                       Database URL (default: sqlite:///{data_dir}/investmatch.db)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  SITE_URL                     Frontend origin for redirects (default: http://localhost:3000)
  CORS_ALLOWED_ORIGINS         Comma-separated browser origins (default: SITE_URL)

  IDENTITY_*                   Identity provider
    URL                        Base URL of the GoTrue-compatible auth API
    ANON_KEY                   Public API key
    JWT_SECRET                 Verifies access tokens locally when set

  STORAGE_*                    Pitch deck storage
    URL                        Object storage API; unset stores decks on disk
    SERVICE_KEY                Service key for uploads
    BUCKET                     Bucket name (default: pitch-decks)
    LOCAL_DIR                  Local directory (default: {data_dir}/storage)

  RAZORPAY_KEY_ID              Razorpay public key
  RAZORPAY_KEY_SECRET          Razorpay secret for orders and signatures

  VIEW_CACHE_TTL_SECONDS       Cached view lifetime (default: 30)
  STARTUP_SEARCH_LIMIT         Startup listing row cap (default: 60)
  INVESTOR_SEARCH_LIMIT        Investor listing row cap (default: 120)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	slogger := log.New(cfg)
	slog.SetDefault(slogger)

	client, err := openClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeClient(client, slogger)

	apiServer := api.NewAPIServer(client, cfg.CORSAllowedOrigins(), version)
	router := apiServer.Router()
	apiServer.MountRoutes()

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		apimiddleware.WriteJSON(w, http.StatusOK, map[string]string{
			"name":    "investmatch",
			"version": version,
		})
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := api.NewServer(cfg.Addr(), slogger)
	server.Router().Mount("/", router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slogger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.Error("shutdown error", slog.Any("error", err))
	}
	return <-errCh
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
