package driven

// Well-known configuration keys.
const (
	// ConfigGeneratorProvider selects the generation backend:
	// "pollinations" (default) or "openai".
	ConfigGeneratorProvider = "generator.provider"

	// ConfigGeneratorBaseURL overrides the backend base URL.
	ConfigGeneratorBaseURL = "generator.base_url"

	// ConfigGeneratorModel overrides the backend model name.
	ConfigGeneratorModel = "generator.model"

	// ConfigGeneratorAPIKey is the API key for backends that need one.
	ConfigGeneratorAPIKey = "generator.api_key"

	// ConfigDefaultStyle is the default story style for new requests.
	ConfigDefaultStyle = "story.style"

	// ConfigDefaultTone is the default emotional tone for new requests.
	ConfigDefaultTone = "story.tone"

	// ConfigDefaultLength is the default story length band.
	ConfigDefaultLength = "story.length"

	// ConfigHistoryDisabled turns off history recording when true.
	ConfigHistoryDisabled = "history.disabled"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Keys returns every defined key, sorted.
	Keys() []string

	// Path returns the configuration file path.
	Path() string
}
