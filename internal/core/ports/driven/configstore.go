package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation mirroring TOML tables ("endpoint.base_url").
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if missing or not an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false if missing or not a boolean.
	GetBool(key string) bool

	// GetStringSlice retrieves a string slice value, or nil if missing.
	GetStringSlice(key string) []string

	// Set stores a configuration value and persists it immediately.
	Set(key string, value any) error

	// Delete removes a key and persists immediately. Missing keys are ignored.
	Delete(key string) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
