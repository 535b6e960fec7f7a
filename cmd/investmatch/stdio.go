package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/investmatch/investmatch/internal/log"
	"github.com/investmatch/investmatch/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants search the startup and investor directory.
Configuration is loaded from environment variables and .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// stdout carries the protocol.
	slogger := log.NewWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())

	client, err := openClient(cfg, slogger)
	if err != nil {
		return err
	}
	defer closeClient(client, slogger)

	slogger.Info("starting MCP server", slog.String("version", version))
	return mcp.NewServer(client.Directory, version, slogger).ServeStdio()
}
