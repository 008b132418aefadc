// Package mcp provides an MCP (Model Context Protocol) server adapter for metro.
// It lets AI assistants plan routes and inspect the line network.
package mcp

import "errors"

// ErrMissingPathService is returned when the path service is not provided.
var ErrMissingPathService = errors.New("mcp: path service is required")
