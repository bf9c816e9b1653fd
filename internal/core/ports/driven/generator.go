package driven

import "context"

// TextGenerator produces natural-language text from a prompt via an
// external generation API.
//
// Implementations may include:
//   - Pollinations (free GET-based text API, the default)
//   - Any OpenAI-compatible chat completions endpoint
type TextGenerator interface {
	// Generate produces text for the prompt. A non-2xx response or
	// transport failure is returned as an error; the caller decides
	// whether to retry.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the backend model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures one generation call.
type GenerateOptions struct {
	// System is the system prompt, if the backend supports one.
	System string

	// Seed selects the generation seed; 0 lets the backend choose.
	Seed int

	// Temperature controls randomness (0.0 = deterministic). Ignored by
	// backends that do not support it.
	Temperature float64

	// MaxTokens caps the generated length; 0 means backend default.
	MaxTokens int
}
