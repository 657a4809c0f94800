package fs

import (
	"os"
	"path/filepath"

	"github.com/wxclip/wxclip"
	"gopkg.in/yaml.v3"
)

// Ensure SettingsService implements wxclip.SettingsService at compile time.
var _ wxclip.SettingsService = (*SettingsService)(nil)

// DefaultSettingsPath returns the settings file location. The
// WXCLIP_CONFIG environment variable overrides the default of
// ~/.wxclip/config.yaml.
func DefaultSettingsPath() (string, error) {
	if p := os.Getenv("WXCLIP_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", wxclip.Errorf(wxclip.EINTERNAL, "cannot determine home directory: %s", err)
	}
	return filepath.Join(home, ".wxclip", "config.yaml"), nil
}

// SettingsService persists settings as a YAML file.
type SettingsService struct {
	path string
}

// NewSettingsService creates a SettingsService backed by the file at path.
func NewSettingsService(path string) *SettingsService {
	return &SettingsService{path: path}
}

// Load reads settings from disk. A missing file yields defaults rather
// than an error so first runs work without any setup.
func (s *SettingsService) Load() (*wxclip.Settings, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &wxclip.Settings{}, nil
	}
	if err != nil {
		return nil, wxclip.Errorf(wxclip.EINTERNAL, "read settings %s: %s", s.path, err)
	}

	var settings wxclip.Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, wxclip.Errorf(wxclip.EINVALID, "parse settings %s: %s", s.path, err)
	}
	return &settings, nil
}

// Save writes settings to disk, creating the parent directory if needed.
func (s *SettingsService) Save(settings *wxclip.Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "marshal settings: %s", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "create settings directory: %s", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return wxclip.Errorf(wxclip.EINTERNAL, "write settings %s: %s", s.path, err)
	}
	return nil
}
