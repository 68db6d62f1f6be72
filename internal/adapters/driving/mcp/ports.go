package mcp

import (
	"github.com/docsift-labs/docsift-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers queries against the ingested document.
	Retrieval driving.RetrievalService

	// Ingest ingests documents. Optional; when nil the ingest tool is
	// not registered.
	Ingest driving.IngestService

	// Status reports pipeline state. Optional; when nil the status and
	// history resources return empty documents.
	Status driving.StatusService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Ingest and Status are optional
	return nil
}
