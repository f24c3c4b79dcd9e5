package driven

// Well-known configuration keys.
const (
	// KeyBaseURL is the document API root, for example
	// http://localhost:5000/api.
	KeyBaseURL = "api.base_url"

	// KeyVariant selects the backend variant: "blob" or "sharepoint".
	KeyVariant = "api.variant"

	// KeyFolder is the folder scope sent with every file request. The
	// blob storage backend ignores it.
	KeyFolder = "api.folder"

	// KeyToken is the session token obtained through login.
	KeyToken = "auth.token"

	// KeyUsername is the logged-in user, kept for status display.
	KeyUsername = "auth.username"
)

// ConfigStore persists CLI configuration across sessions.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value, or "" when the
	// key is absent or not a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value and persists immediately.
	Set(key string, value any) error

	// Delete removes a configuration value and persists immediately.
	Delete(key string) error

	// Load reads configuration from the backing store.
	Load() error

	// Path returns the backing store location for display.
	Path() string
}
