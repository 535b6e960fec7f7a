package main

import (
	"github.com/spf13/cobra"

	"github.com/investmatch/investmatch/internal/log"
)

func migrateCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update the database schema and check that every table
and column the application needs is present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			slogger := log.New(cfg)

			client, err := openClient(cfg, slogger)
			if err != nil {
				return err
			}
			defer closeClient(client, slogger)

			slogger.Info("database schema is up to date")
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}
