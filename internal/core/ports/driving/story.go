package driving

import (
	"context"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
)

// StoryService turns memory fragments into generated stories.
//
// All operations call the external generation backend; failures there
// are returned as errors and never affect emotion analysis.
type StoryService interface {
	// BuildPrompt constructs the creation prompt for a request without
	// calling the backend. Useful for preview and testing.
	BuildPrompt(req domain.StoryRequest) (string, error)

	// Generate produces a single story for the request.
	Generate(ctx context.Context, req domain.StoryRequest) (*domain.Story, error)

	// GenerateVersions produces up to n story versions sequentially,
	// pacing calls to respect backend rate limits. Versions that fail are
	// skipped; an error is returned only when every version failed.
	GenerateVersions(ctx context.Context, req domain.StoryRequest, n int) ([]*domain.Story, error)

	// Enhance rewrites an existing story according to the enhancement kind.
	Enhance(ctx context.Context, storyText string, kind domain.EnhancementKind) (*domain.Story, error)
}
