package mcp

import (
	"context"
	"fmt"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListSourcesInput defines parameters for the list_sources tool.
type ListSourcesInput struct {
	Count  int    `json:"count,omitempty" jsonschema:"Number of items per page (default 10)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Pagination cursor from a previous response"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// GetSourceInput defines parameters for the get_source tool.
type GetSourceInput struct {
	ID     string `json:"id" jsonschema:"Source ID"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// CreateSourceInput defines parameters for the create_source tool.
type CreateSourceInput struct {
	Slug       string `json:"slug" jsonschema:"URL-friendly slug, unique within the workspace"`
	MetadataID string `json:"metadataId" jsonschema:"Catalog metadata ID of the source type"`
	Name       string `json:"name,omitempty" jsonschema:"Display name"`
	Enabled    *bool  `json:"enabled,omitempty" jsonschema:"Whether the source starts enabled"`
	Format     string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// UpdateSourceInput defines parameters for the update_source tool.
type UpdateSourceInput struct {
	ID      string `json:"id" jsonschema:"Source ID"`
	Name    string `json:"name,omitempty" jsonschema:"New display name"`
	Slug    string `json:"slug,omitempty" jsonschema:"New slug"`
	Enabled *bool  `json:"enabled,omitempty" jsonschema:"Enable or disable the source"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// DeleteSourceInput defines parameters for the delete_source tool.
type DeleteSourceInput struct {
	ID string `json:"id" jsonschema:"Source ID"`
}

func (s *Server) registerSourceTools() error {
	if err := addTool(s, "list_sources",
		"List sources in the workspace. Supports pagination via count and cursor.",
		s.listSources); err != nil {
		return err
	}
	if err := addTool(s, "get_source",
		"Get a single source by ID.",
		s.getSource); err != nil {
		return err
	}
	if err := addTool(s, "create_source",
		"Create a source. Requires a slug and the catalog metadata ID of the source type.",
		s.createSource); err != nil {
		return err
	}
	if err := addTool(s, "update_source",
		"Update a source's name, slug, or enabled state.",
		s.updateSource); err != nil {
		return err
	}
	return addTool(s, "delete_source",
		"Delete a source by ID. This cannot be undone.",
		s.deleteSource)
}

func (s *Server) listSources(ctx context.Context, _ *mcp.CallToolRequest, in ListSourcesInput) (*mcp.CallToolResult, any, error) {
	page, err := s.client.ListSources(ctx, segment.PageOptions{Count: in.Count, Cursor: in.Cursor})
	if err != nil {
		return s.errorResult("list_sources", err), nil, nil
	}
	return textResult(render.Render(page, render.ParseMode(in.Format), "sources")), nil, nil
}

func (s *Server) getSource(ctx context.Context, _ *mcp.CallToolRequest, in GetSourceInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("get_source", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	raw, err := s.client.GetSource(ctx, in.ID)
	if err != nil {
		return s.errorResult("get_source", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "source")), nil, nil
}

func (s *Server) createSource(ctx context.Context, _ *mcp.CallToolRequest, in CreateSourceInput) (*mcp.CallToolResult, any, error) {
	details := map[string][]string{}
	if in.Slug == "" {
		details["slug"] = []string{"slug is required"}
	}
	if in.MetadataID == "" {
		details["metadataId"] = []string{"metadataId is required"}
	}
	if len(details) > 0 {
		return s.errorResult("create_source", segment.NewInvalidInput("invalid source parameters", details)), nil, nil
	}

	fields := map[string]any{
		"slug":       in.Slug,
		"metadataId": in.MetadataID,
	}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Enabled != nil {
		fields["enabled"] = *in.Enabled
	}

	raw, err := s.client.CreateSource(ctx, fields)
	if err != nil {
		return s.errorResult("create_source", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "source")), nil, nil
}

func (s *Server) updateSource(ctx context.Context, _ *mcp.CallToolRequest, in UpdateSourceInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("update_source", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	fields := map[string]any{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Slug != "" {
		fields["slug"] = in.Slug
	}
	if in.Enabled != nil {
		fields["enabled"] = *in.Enabled
	}
	if len(fields) == 0 {
		return s.errorResult("update_source", segment.NewInvalidInput("at least one of name, slug, or enabled is required", nil)), nil, nil
	}

	raw, err := s.client.UpdateSource(ctx, in.ID, fields)
	if err != nil {
		return s.errorResult("update_source", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "source")), nil, nil
}

func (s *Server) deleteSource(ctx context.Context, _ *mcp.CallToolRequest, in DeleteSourceInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("delete_source", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	if err := s.client.DeleteSource(ctx, in.ID); err != nil {
		return s.errorResult("delete_source", err), nil, nil
	}
	return textResult(fmt.Sprintf("Source '%s' deleted.", in.ID)), nil, nil
}
