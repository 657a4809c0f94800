package mock

import (
	"github.com/wxclip/wxclip"
)

var _ wxclip.SettingsService = (*SettingsService)(nil)

// SettingsService is a mock implementation of wxclip.SettingsService.
type SettingsService struct {
	LoadFn func() (*wxclip.Settings, error)
	SaveFn func(settings *wxclip.Settings) error
}

func (s *SettingsService) Load() (*wxclip.Settings, error) {
	return s.LoadFn()
}

func (s *SettingsService) Save(settings *wxclip.Settings) error {
	return s.SaveFn(settings)
}
