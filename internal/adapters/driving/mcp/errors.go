// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It enables AI assistants like Claude to analyze emotions and generate
// memory-fragment stories through the engine.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
