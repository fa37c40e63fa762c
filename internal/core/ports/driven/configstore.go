package driven

// ConfigStore provides access to application configuration.
// Keys use dot notation matching the TOML table layout, e.g. "site.url".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString returns "" if key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 if key is missing or not an integer.
	GetInt(key string) int

	// GetBool returns false if key is missing or not a boolean.
	GetBool(key string) bool

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Delete removes a key and persists the change.
	Delete(key string) error

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the backing file path, or "" for non-file stores.
	Path() string
}
