// Package cmd wires the CLI surface: the root command runs the MCP
// server on stdio, plus a version subcommand. All application logic
// lives here so main.go stays a minimal entry point.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "segment-mcp",
	Short: "MCP server for the Segment API",
	Long: `segment-mcp exposes the Segment Public API and Tracking API as
Model Context Protocol tools over stdio.

Credentials come from the environment or ~/.segment-mcp/config.yaml:
  SEGMENT_PUBLIC_API_TOKEN  bearer token for the Public (management) API
  SEGMENT_WRITE_KEY         write key for the Tracking API`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() error {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
