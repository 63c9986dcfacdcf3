package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/koopa0/segment-mcp/internal/config"
	"github.com/koopa0/segment-mcp/internal/log"
	"github.com/koopa0/segment-mcp/internal/mcp"
	"github.com/koopa0/segment-mcp/internal/segment"
	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe initializes and starts the MCP server on stdio transport.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := log.New(log.Config{
		Level: log.ParseLevel(cfg.LogLevel),
		JSON:  cfg.LogJSON,
	})

	if !cfg.HasCredentials() {
		logger.Warn("no Segment credentials configured; every tool call will fail until SEGMENT_PUBLIC_API_TOKEN or SEGMENT_WRITE_KEY is set")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := segment.New(segment.Config{
		Token:              cfg.PublicAPIToken,
		WriteKey:           cfg.WriteKey,
		PublicAPIBaseURL:   cfg.PublicAPIBaseURL,
		TrackingAPIBaseURL: cfg.TrackingAPIBaseURL,
		Logger:             logger.With("component", "segment"),
	})
	if err != nil {
		return fmt.Errorf("creating segment client: %w", err)
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:    "segment-mcp",
		Version: AppVersion,
		Client:  client,
		Logger:  logger.With("component", "mcp"),
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	logger.Info("MCP server ready",
		"name", "segment-mcp",
		"version", AppVersion,
		"transport", "stdio",
		"public_api", cfg.PublicAPIToken != "",
		"tracking_api", cfg.WriteKey != "")

	if err := server.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	logger.Info("MCP server shut down gracefully")
	return nil
}
