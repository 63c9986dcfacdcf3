package mcp

import (
	"context"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListSpacesInput defines parameters for the list_spaces tool.
type ListSpacesInput struct {
	Count  int    `json:"count,omitempty" jsonschema:"Number of items per page (default 10)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Pagination cursor from a previous response"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// GetSpaceInput defines parameters for the get_space tool.
type GetSpaceInput struct {
	ID     string `json:"id" jsonschema:"Space ID"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// ListAudiencesInput defines parameters for the list_audiences tool.
type ListAudiencesInput struct {
	SpaceID string `json:"spaceId" jsonschema:"ID of the Engage space"`
	Count   int    `json:"count,omitempty" jsonschema:"Number of items per page (default 10)"`
	Cursor  string `json:"cursor,omitempty" jsonschema:"Pagination cursor from a previous response"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// GetAudienceInput defines parameters for the get_audience tool.
type GetAudienceInput struct {
	SpaceID string `json:"spaceId" jsonschema:"ID of the Engage space"`
	ID      string `json:"id" jsonschema:"Audience ID"`
	Format  string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

func (s *Server) registerSpaceTools() error {
	if err := addTool(s, "list_spaces",
		"List Engage spaces in the workspace. Supports pagination via count and cursor.",
		s.listSpaces); err != nil {
		return err
	}
	if err := addTool(s, "get_space",
		"Get a single Engage space by ID.",
		s.getSpace); err != nil {
		return err
	}
	if err := addTool(s, "list_audiences",
		"List audiences within an Engage space. Supports pagination via count and cursor.",
		s.listAudiences); err != nil {
		return err
	}
	return addTool(s, "get_audience",
		"Get a single audience by ID within an Engage space.",
		s.getAudience)
}

func (s *Server) listSpaces(ctx context.Context, _ *mcp.CallToolRequest, in ListSpacesInput) (*mcp.CallToolResult, any, error) {
	page, err := s.client.ListSpaces(ctx, segment.PageOptions{Count: in.Count, Cursor: in.Cursor})
	if err != nil {
		return s.errorResult("list_spaces", err), nil, nil
	}
	return textResult(render.Render(page, render.ParseMode(in.Format), "spaces")), nil, nil
}

func (s *Server) getSpace(ctx context.Context, _ *mcp.CallToolRequest, in GetSpaceInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("get_space", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	raw, err := s.client.GetSpace(ctx, in.ID)
	if err != nil {
		return s.errorResult("get_space", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "space")), nil, nil
}

func (s *Server) listAudiences(ctx context.Context, _ *mcp.CallToolRequest, in ListAudiencesInput) (*mcp.CallToolResult, any, error) {
	if in.SpaceID == "" {
		return s.errorResult("list_audiences", segment.NewInvalidInput("spaceId is required", nil)), nil, nil
	}
	page, err := s.client.ListAudiences(ctx, in.SpaceID, segment.PageOptions{Count: in.Count, Cursor: in.Cursor})
	if err != nil {
		return s.errorResult("list_audiences", err), nil, nil
	}
	return textResult(render.Render(page, render.ParseMode(in.Format), "audiences")), nil, nil
}

func (s *Server) getAudience(ctx context.Context, _ *mcp.CallToolRequest, in GetAudienceInput) (*mcp.CallToolResult, any, error) {
	details := map[string][]string{}
	if in.SpaceID == "" {
		details["spaceId"] = []string{"spaceId is required"}
	}
	if in.ID == "" {
		details["id"] = []string{"id is required"}
	}
	if len(details) > 0 {
		return s.errorResult("get_audience", segment.NewInvalidInput("invalid audience parameters", details)), nil, nil
	}
	raw, err := s.client.GetAudience(ctx, in.SpaceID, in.ID)
	if err != nil {
		return s.errorResult("get_audience", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "audience")), nil, nil
}
