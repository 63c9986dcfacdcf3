package mcp

import (
	"context"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TestConnectionInput defines parameters for the test_connection tool.
type TestConnectionInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

func (s *Server) registerConnectionTools() error {
	return addTool(s, "test_connection",
		"Probe every Segment API surface a credential is configured for and report each outcome.",
		s.testConnection)
}

func (s *Server) testConnection(ctx context.Context, _ *mcp.CallToolRequest, in TestConnectionInput) (*mcp.CallToolResult, any, error) {
	statuses := s.client.TestConnection(ctx)
	return textResult(render.Render(statuses, render.ParseMode(in.Format), "connections")), nil, nil
}
