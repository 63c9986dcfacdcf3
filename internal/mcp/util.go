package mcp

import (
	"encoding/json"
	"errors"

	"github.com/koopa0/segment-mcp/internal/segment"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// textResult wraps rendered text in a successful MCP result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult converts a failure into a normal tool result with IsError
// set. The text is a JSON envelope: a human-readable "error" message
// (prefixed "Error: ", suffixed " (retryable)" when applicable) plus the
// structured "details" log record. Nothing here retries; retryability is
// advisory for the caller.
func (s *Server) errorResult(tool string, err error) *mcp.CallToolResult {
	msg := "Error: " + err.Error()
	if segment.IsRetryable(err) {
		msg += " (retryable)"
	}

	var details map[string]any
	var apiErr *segment.APIError
	if errors.As(err, &apiErr) {
		details = apiErr.LogRecord()
	} else {
		details = map[string]any{
			"name":      "TransportError",
			"message":   err.Error(),
			"code":      "TRANSPORT_ERROR",
			"retryable": segment.IsRetryable(err),
		}
	}

	s.logger.Error("tool call failed", "tool", tool, "error", err)

	envelope := map[string]any{
		"error":   msg,
		"details": details,
	}
	data, mErr := json.MarshalIndent(envelope, "", "  ")
	if mErr != nil {
		data = []byte(msg)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
