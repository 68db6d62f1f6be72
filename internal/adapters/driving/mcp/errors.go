// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Docsift. It lets AI assistants query the currently ingested document and
// inspect pipeline state.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
