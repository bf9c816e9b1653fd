package driven

// PromptStore provides access to generation prompt templates.
// Implementations may load prompts from user-editable files, embed them
// in the binary, or both.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Implementations fall back to an embedded default when the user has
	// not customised the prompt.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptStory is the story creation template. Placeholders, in order:
	// style, joined fragments, style again, tone description, length guide.
	PromptStory = "story"

	// PromptStorySystem is the system prompt for story generation.
	// No placeholders.
	PromptStorySystem = "story_system"

	// PromptEnhance is the story enhancement template. Placeholders:
	// original story text, enhancement instruction.
	PromptEnhance = "enhance"

	// PromptEnhanceSystem is the system prompt for story enhancement.
	// No placeholders.
	PromptEnhanceSystem = "enhance_system"
)
