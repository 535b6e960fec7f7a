package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/investmatch/investmatch/infrastructure/persistence"
	"github.com/investmatch/investmatch/internal/log"
)

func seedCmd() *cobra.Command {
	var (
		envFile string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a directory fixture into the database",
		Long: `Load profiles, startups and investors from a YAML fixture. Without
--file the bundled demo directory is loaded. Rows are upserted, so seeding
twice is safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			slogger := log.New(cfg)

			fixture, err := loadFixture(file)
			if err != nil {
				return err
			}

			client, err := openClient(cfg, slogger)
			if err != nil {
				return err
			}
			defer closeClient(client, slogger)

			res, err := client.Seed(context.Background(), fixture)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			slogger.Info("seed complete",
				slog.Int("profiles", res.Profiles),
				slog.Int("startups", res.Startups),
				slog.Int("investors", res.Investors),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture (default: bundled demo directory)")

	return cmd
}

func loadFixture(path string) (persistence.Fixture, error) {
	if path == "" {
		return persistence.DefaultFixture()
	}
	f, err := os.Open(path)
	if err != nil {
		return persistence.Fixture{}, fmt.Errorf("open fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	return persistence.ParseFixture(f)
}
