package mcp

import (
	"context"

	"github.com/koopa0/segment-mcp/internal/render"
	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TrackInput defines parameters for the track tool.
type TrackInput struct {
	UserID      string         `json:"userId,omitempty" jsonschema:"ID of the known user. Either userId or anonymousId is required"`
	AnonymousID string         `json:"anonymousId,omitempty" jsonschema:"ID of the anonymous user. Either userId or anonymousId is required"`
	Event       string         `json:"event" jsonschema:"Name of the action the user performed"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"Attributes of the event"`
	Timestamp   string         `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp when replaying history. Defaults to now"`
}

// IdentifyInput defines parameters for the identify tool.
type IdentifyInput struct {
	UserID      string         `json:"userId,omitempty" jsonschema:"ID of the known user. Either userId or anonymousId is required"`
	AnonymousID string         `json:"anonymousId,omitempty" jsonschema:"ID of the anonymous user. Either userId or anonymousId is required"`
	Traits      map[string]any `json:"traits,omitempty" jsonschema:"Traits about the user, for example name or email"`
	Timestamp   string         `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp when replaying history. Defaults to now"`
}

// PageInput defines parameters for the page tool.
type PageInput struct {
	UserID      string         `json:"userId,omitempty" jsonschema:"ID of the known user. Either userId or anonymousId is required"`
	AnonymousID string         `json:"anonymousId,omitempty" jsonschema:"ID of the anonymous user. Either userId or anonymousId is required"`
	Name        string         `json:"name,omitempty" jsonschema:"Name of the page"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"Attributes of the page view"`
	Timestamp   string         `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp when replaying history. Defaults to now"`
}

// ScreenInput defines parameters for the screen tool.
type ScreenInput struct {
	UserID      string         `json:"userId,omitempty" jsonschema:"ID of the known user. Either userId or anonymousId is required"`
	AnonymousID string         `json:"anonymousId,omitempty" jsonschema:"ID of the anonymous user. Either userId or anonymousId is required"`
	Name        string         `json:"name,omitempty" jsonschema:"Name of the screen"`
	Properties  map[string]any `json:"properties,omitempty" jsonschema:"Attributes of the screen view"`
	Timestamp   string         `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp when replaying history. Defaults to now"`
}

// GroupInput defines parameters for the group tool.
type GroupInput struct {
	UserID      string         `json:"userId,omitempty" jsonschema:"ID of the known user. Either userId or anonymousId is required"`
	AnonymousID string         `json:"anonymousId,omitempty" jsonschema:"ID of the anonymous user. Either userId or anonymousId is required"`
	GroupID     string         `json:"groupId" jsonschema:"ID of the group to associate the user with"`
	Traits      map[string]any `json:"traits,omitempty" jsonschema:"Traits about the group, for example name or industry"`
	Timestamp   string         `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp when replaying history. Defaults to now"`
}

// AliasInput defines parameters for the alias tool.
type AliasInput struct {
	UserID     string `json:"userId" jsonschema:"New ID of the user"`
	PreviousID string `json:"previousId" jsonschema:"Previous ID the user was known by"`
	Timestamp  string `json:"timestamp,omitempty" jsonschema:"RFC 3339 timestamp when replaying history. Defaults to now"`
}

func (s *Server) registerEventTools() error {
	if err := addTool(s, "track",
		"Record an action a user performed, with optional properties.",
		s.track); err != nil {
		return err
	}
	if err := addTool(s, "identify",
		"Associate traits with a user, for example name or email.",
		s.identify); err != nil {
		return err
	}
	if err := addTool(s, "page",
		"Record a web page view.",
		s.page); err != nil {
		return err
	}
	if err := addTool(s, "screen",
		"Record a mobile screen view.",
		s.screen); err != nil {
		return err
	}
	if err := addTool(s, "group",
		"Associate a user with a group, for example a company or team.",
		s.group); err != nil {
		return err
	}
	return addTool(s, "alias",
		"Merge two user identities by linking a previous ID to a new one.",
		s.alias)
}

// sendEvent funnels every event tool through one path: deliver, then
// render the upstream acknowledgement.
func (s *Server) sendEvent(ctx context.Context, tool string, event segment.Event) (*mcp.CallToolResult, any, error) {
	raw, err := s.client.SendEvent(ctx, event)
	if err != nil {
		return s.errorResult(tool, err), nil, nil
	}
	return textResult(render.Render(raw, render.ModeStructured, "")), nil, nil
}

func (s *Server) track(ctx context.Context, _ *mcp.CallToolRequest, in TrackInput) (*mcp.CallToolResult, any, error) {
	return s.sendEvent(ctx, "track", segment.Event{
		Type:        "track",
		UserID:      in.UserID,
		AnonymousID: in.AnonymousID,
		Event:       in.Event,
		Properties:  in.Properties,
		Timestamp:   in.Timestamp,
	})
}

func (s *Server) identify(ctx context.Context, _ *mcp.CallToolRequest, in IdentifyInput) (*mcp.CallToolResult, any, error) {
	return s.sendEvent(ctx, "identify", segment.Event{
		Type:        "identify",
		UserID:      in.UserID,
		AnonymousID: in.AnonymousID,
		Traits:      in.Traits,
		Timestamp:   in.Timestamp,
	})
}

func (s *Server) page(ctx context.Context, _ *mcp.CallToolRequest, in PageInput) (*mcp.CallToolResult, any, error) {
	return s.sendEvent(ctx, "page", segment.Event{
		Type:        "page",
		UserID:      in.UserID,
		AnonymousID: in.AnonymousID,
		Name:        in.Name,
		Properties:  in.Properties,
		Timestamp:   in.Timestamp,
	})
}

func (s *Server) screen(ctx context.Context, _ *mcp.CallToolRequest, in ScreenInput) (*mcp.CallToolResult, any, error) {
	return s.sendEvent(ctx, "screen", segment.Event{
		Type:        "screen",
		UserID:      in.UserID,
		AnonymousID: in.AnonymousID,
		Name:        in.Name,
		Properties:  in.Properties,
		Timestamp:   in.Timestamp,
	})
}

func (s *Server) group(ctx context.Context, _ *mcp.CallToolRequest, in GroupInput) (*mcp.CallToolResult, any, error) {
	return s.sendEvent(ctx, "group", segment.Event{
		Type:        "group",
		UserID:      in.UserID,
		AnonymousID: in.AnonymousID,
		GroupID:     in.GroupID,
		Traits:      in.Traits,
		Timestamp:   in.Timestamp,
	})
}

func (s *Server) alias(ctx context.Context, _ *mcp.CallToolRequest, in AliasInput) (*mcp.CallToolResult, any, error) {
	return s.sendEvent(ctx, "alias", segment.Event{
		Type:       "alias",
		UserID:     in.UserID,
		PreviousID: in.PreviousID,
		Timestamp:  in.Timestamp,
	})
}
