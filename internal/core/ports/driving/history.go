package driving

import (
	"context"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

// ExportFormat selects the output format for history export.
type ExportFormat string

// Supported export formats.
const (
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
)

// HistoryService records and retrieves past analysis and story runs.
type HistoryService interface {
	// RecordAnalysis saves an analysis run and returns the stored entry.
	RecordAnalysis(ctx context.Context, inputText string, result *domain.AnalysisResult) (domain.HistoryEntry, error)

	// RecordStory saves a generated story and returns the stored entry.
	RecordStory(ctx context.Context, story *domain.Story) (domain.HistoryEntry, error)

	// List returns entries newest-first, optionally filtered by kind.
	List(ctx context.Context, kind domain.EntryKind, limit int) ([]domain.HistoryEntry, error)

	// Get returns one entry by ID.
	Get(ctx context.Context, id string) (domain.HistoryEntry, error)

	// Export renders one entry in the requested format.
	Export(ctx context.Context, id string, format ExportFormat) (string, error)

	// Delete removes one entry by ID.
	Delete(ctx context.Context, id string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
