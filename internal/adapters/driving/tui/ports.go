// Package tui provides an interactive terminal user interface.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"errors"

	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
)

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Analysis scores emotions in short texts.
	Analysis driving.AnalysisService

	// History records analysis runs. Optional; recording is skipped
	// when nil.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
