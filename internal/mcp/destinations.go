package mcp

import (
	"context"
	"fmt"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListDestinationsInput defines parameters for the list_destinations tool.
type ListDestinationsInput struct {
	Count  int    `json:"count,omitempty" jsonschema:"Number of items per page (default 10)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Pagination cursor from a previous response"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// GetDestinationInput defines parameters for the get_destination tool.
type GetDestinationInput struct {
	ID     string `json:"id" jsonschema:"Destination ID"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// CreateDestinationInput defines parameters for the create_destination tool.
type CreateDestinationInput struct {
	SourceID   string         `json:"sourceId" jsonschema:"ID of the source to connect the destination to"`
	MetadataID string         `json:"metadataId" jsonschema:"Catalog metadata ID of the destination type"`
	Name       string         `json:"name,omitempty" jsonschema:"Display name"`
	Enabled    *bool          `json:"enabled,omitempty" jsonschema:"Whether the destination starts enabled"`
	Settings   map[string]any `json:"settings,omitempty" jsonschema:"Destination settings, for example API keys"`
	Format     string         `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// UpdateDestinationInput defines parameters for the update_destination tool.
type UpdateDestinationInput struct {
	ID       string         `json:"id" jsonschema:"Destination ID"`
	Name     string         `json:"name,omitempty" jsonschema:"New display name"`
	Enabled  *bool          `json:"enabled,omitempty" jsonschema:"Enable or disable the destination"`
	Settings map[string]any `json:"settings,omitempty" jsonschema:"Settings to merge into the destination"`
	Format   string         `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// DeleteDestinationInput defines parameters for the delete_destination tool.
type DeleteDestinationInput struct {
	ID string `json:"id" jsonschema:"Destination ID"`
}

func (s *Server) registerDestinationTools() error {
	if err := addTool(s, "list_destinations",
		"List destinations in the workspace. Supports pagination via count and cursor.",
		s.listDestinations); err != nil {
		return err
	}
	if err := addTool(s, "get_destination",
		"Get a single destination by ID.",
		s.getDestination); err != nil {
		return err
	}
	if err := addTool(s, "create_destination",
		"Create a destination connected to a source. Requires the source ID and the catalog metadata ID of the destination type.",
		s.createDestination); err != nil {
		return err
	}
	if err := addTool(s, "update_destination",
		"Update a destination's name, enabled state, or settings.",
		s.updateDestination); err != nil {
		return err
	}
	return addTool(s, "delete_destination",
		"Delete a destination by ID. This cannot be undone.",
		s.deleteDestination)
}

func (s *Server) listDestinations(ctx context.Context, _ *mcp.CallToolRequest, in ListDestinationsInput) (*mcp.CallToolResult, any, error) {
	page, err := s.client.ListDestinations(ctx, segment.PageOptions{Count: in.Count, Cursor: in.Cursor})
	if err != nil {
		return s.errorResult("list_destinations", err), nil, nil
	}
	return textResult(render.Render(page, render.ParseMode(in.Format), "destinations")), nil, nil
}

func (s *Server) getDestination(ctx context.Context, _ *mcp.CallToolRequest, in GetDestinationInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("get_destination", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	raw, err := s.client.GetDestination(ctx, in.ID)
	if err != nil {
		return s.errorResult("get_destination", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "destination")), nil, nil
}

func (s *Server) createDestination(ctx context.Context, _ *mcp.CallToolRequest, in CreateDestinationInput) (*mcp.CallToolResult, any, error) {
	details := map[string][]string{}
	if in.SourceID == "" {
		details["sourceId"] = []string{"sourceId is required"}
	}
	if in.MetadataID == "" {
		details["metadataId"] = []string{"metadataId is required"}
	}
	if len(details) > 0 {
		return s.errorResult("create_destination", segment.NewInvalidInput("invalid destination parameters", details)), nil, nil
	}

	fields := map[string]any{
		"sourceId":   in.SourceID,
		"metadataId": in.MetadataID,
	}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Enabled != nil {
		fields["enabled"] = *in.Enabled
	}
	if len(in.Settings) > 0 {
		fields["settings"] = in.Settings
	}

	raw, err := s.client.CreateDestination(ctx, fields)
	if err != nil {
		return s.errorResult("create_destination", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "destination")), nil, nil
}

func (s *Server) updateDestination(ctx context.Context, _ *mcp.CallToolRequest, in UpdateDestinationInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("update_destination", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	fields := map[string]any{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Enabled != nil {
		fields["enabled"] = *in.Enabled
	}
	if len(in.Settings) > 0 {
		fields["settings"] = in.Settings
	}
	if len(fields) == 0 {
		return s.errorResult("update_destination", segment.NewInvalidInput("at least one of name, enabled, or settings is required", nil)), nil, nil
	}

	raw, err := s.client.UpdateDestination(ctx, in.ID, fields)
	if err != nil {
		return s.errorResult("update_destination", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "destination")), nil, nil
}

func (s *Server) deleteDestination(ctx context.Context, _ *mcp.CallToolRequest, in DeleteDestinationInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("delete_destination", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	if err := s.client.DeleteDestination(ctx, in.ID); err != nil {
		return s.errorResult("delete_destination", err), nil, nil
	}
	return textResult(fmt.Sprintf("Destination '%s' deleted.", in.ID)), nil, nil
}
