package mcp

import (
	"context"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListTrackingPlansInput defines parameters for the list_tracking_plans tool.
type ListTrackingPlansInput struct {
	Count  int    `json:"count,omitempty" jsonschema:"Number of items per page (default 10)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Pagination cursor from a previous response"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// GetTrackingPlanInput defines parameters for the get_tracking_plan tool.
type GetTrackingPlanInput struct {
	ID     string `json:"id" jsonschema:"Tracking plan ID"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

func (s *Server) registerTrackingPlanTools() error {
	if err := addTool(s, "list_tracking_plans",
		"List tracking plans in the workspace. Supports pagination via count and cursor.",
		s.listTrackingPlans); err != nil {
		return err
	}
	return addTool(s, "get_tracking_plan",
		"Get a single tracking plan by ID.",
		s.getTrackingPlan)
}

func (s *Server) listTrackingPlans(ctx context.Context, _ *mcp.CallToolRequest, in ListTrackingPlansInput) (*mcp.CallToolResult, any, error) {
	page, err := s.client.ListTrackingPlans(ctx, segment.PageOptions{Count: in.Count, Cursor: in.Cursor})
	if err != nil {
		return s.errorResult("list_tracking_plans", err), nil, nil
	}
	return textResult(render.Render(page, render.ParseMode(in.Format), "tracking-plans")), nil, nil
}

func (s *Server) getTrackingPlan(ctx context.Context, _ *mcp.CallToolRequest, in GetTrackingPlanInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("get_tracking_plan", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	raw, err := s.client.GetTrackingPlan(ctx, in.ID)
	if err != nil {
		return s.errorResult("get_tracking_plan", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "tracking-plan")), nil, nil
}
