package wxclip

// Settings holds the persisted front-end preferences.
type Settings struct {
	// DefaultOutdir is the output directory offered when a request
	// does not name one. Relative paths are resolved under the web
	// server's output base.
	DefaultOutdir string `yaml:"default_outdir"`
}

// SettingsService loads and stores settings.
type SettingsService interface {
	// Load returns the stored settings, or defaults when nothing has
	// been stored yet.
	Load() (*Settings, error)

	// Save persists the settings.
	Save(settings *Settings) error
}
