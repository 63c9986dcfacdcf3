package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/koopa0/segment-mcp/internal/log"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server around a Segment API client.
type Server struct {
	mcpServer *mcp.Server
	client    *segment.Client
	logger    log.Logger
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string
	Client  *segment.Client
	Logger  log.Logger
}

// NewServer creates the server and registers all tools.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Client == nil {
		return nil, fmt.Errorf("segment client is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    cfg.Name,
			Version: cfg.Version,
		}, nil),
		client: cfg.Client,
		logger: logger,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}
	return s, nil
}

func (s *Server) registerTools() error {
	for _, register := range []func() error{
		s.registerSourceTools,
		s.registerDestinationTools,
		s.registerWarehouseTools,
		s.registerSpaceTools,
		s.registerTrackingPlanTools,
		s.registerEventTools,
		s.registerConnectionTools,
	} {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the MCP server on the given transport. Blocking; it handles
// all protocol communication until the context is canceled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}

// addTool infers the input schema from In and registers one tool.
func addTool[In any](s *Server, name, description string, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, any, error)) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", name, err)
	}
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}, handler)
	return nil
}
