package driving

import (
	"context"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

// AnalysisService analyses the emotional spectrum of short Chinese texts.
//
// Analysis is stateless across calls: each invocation touches only the
// immutable lexicon and request-local accumulators, so the service is
// safe for concurrent use.
type AnalysisService interface {
	// Analyze runs the full pipeline (tokenize, match, aggregate,
	// attribute) over the text. Empty or whitespace-only input yields a
	// result with all fields empty/zero, not an error.
	Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error)

	// Summarize renders a human-readable summary sentence for a result.
	Summarize(result *domain.AnalysisResult) string
}
