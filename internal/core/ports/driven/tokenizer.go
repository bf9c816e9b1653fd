package driven

// Tokenizer segments raw text into candidate words for emotion matching.
//
// Implementations must be deterministic: identical input always yields
// the identical token sequence. The contract mirrors the engine's
// preprocessing rules: characters outside the CJK/alphanumeric set are
// stripped before segmentation, and tokens that trim to empty, are
// shorter than two runes, or are stopwords are dropped.
type Tokenizer interface {
	// Tokenize returns the token sequence for the text.
	// Empty or whitespace-only input yields an empty sequence, never an error.
	Tokenize(text string) []string
}
