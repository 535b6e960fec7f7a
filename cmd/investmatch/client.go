package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/investmatch/investmatch"
	"github.com/investmatch/investmatch/internal/config"
)

// openClient builds a Client from the application config. The client
// migrates the schema on open.
func openClient(cfg config.AppConfig, logger *slog.Logger, extra ...investmatch.Option) (*investmatch.Client, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := append([]investmatch.Option{
		investmatch.WithConfig(cfg),
		investmatch.WithLogger(logger),
	}, extra...)

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "opening investmatch", attrs...)

	client, err := investmatch.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create investmatch client: %w", err)
	}
	return client, nil
}

func closeClient(client *investmatch.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close investmatch client", slog.Any("error", err))
	}
}
