package mcp

import (
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis scores emotions in short texts.
	Analysis driving.AnalysisService

	// Story generates stories from memory fragments.
	Story driving.StoryService

	// History records and retrieves past results.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	// Story and History are optional; their tools are only registered
	// when the services are wired.
	return nil
}
