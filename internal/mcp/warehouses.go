package mcp

import (
	"context"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListWarehousesInput defines parameters for the list_warehouses tool.
type ListWarehousesInput struct {
	Count  int    `json:"count,omitempty" jsonschema:"Number of items per page (default 10)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Pagination cursor from a previous response"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

// GetWarehouseInput defines parameters for the get_warehouse tool.
type GetWarehouseInput struct {
	ID     string `json:"id" jsonschema:"Warehouse ID"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json (default) or table"`
}

func (s *Server) registerWarehouseTools() error {
	if err := addTool(s, "list_warehouses",
		"List warehouses in the workspace. Supports pagination via count and cursor.",
		s.listWarehouses); err != nil {
		return err
	}
	return addTool(s, "get_warehouse",
		"Get a single warehouse by ID.",
		s.getWarehouse)
}

func (s *Server) listWarehouses(ctx context.Context, _ *mcp.CallToolRequest, in ListWarehousesInput) (*mcp.CallToolResult, any, error) {
	page, err := s.client.ListWarehouses(ctx, segment.PageOptions{Count: in.Count, Cursor: in.Cursor})
	if err != nil {
		return s.errorResult("list_warehouses", err), nil, nil
	}
	return textResult(render.Render(page, render.ParseMode(in.Format), "warehouses")), nil, nil
}

func (s *Server) getWarehouse(ctx context.Context, _ *mcp.CallToolRequest, in GetWarehouseInput) (*mcp.CallToolResult, any, error) {
	if in.ID == "" {
		return s.errorResult("get_warehouse", segment.NewInvalidInput("id is required", nil)), nil, nil
	}
	raw, err := s.client.GetWarehouse(ctx, in.ID)
	if err != nil {
		return s.errorResult("get_warehouse", err), nil, nil
	}
	return textResult(render.Render(raw, render.ParseMode(in.Format), "warehouse")), nil, nil
}
