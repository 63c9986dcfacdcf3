// Package mcp exposes the Segment API client as Model Context Protocol
// tools over the official MCP Go SDK.
//
// Every tool follows the same pipeline: validate parameters, issue one
// API request through internal/segment, and render the outcome with
// internal/render. Classified failures come back as normal tool results
// with IsError set and a JSON envelope {"error": ..., "details": ...};
// they are never surfaced as protocol errors.
package mcp
