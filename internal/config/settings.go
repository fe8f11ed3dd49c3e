package config

import (
	"strconv"

	"github.com/ytget/tunevault/internal/catalog"
	"github.com/ytget/tunevault/internal/model"
	"github.com/ytget/tunevault/internal/platform"
	"github.com/ytget/tunevault/internal/util"
)

// Concurrency bounds for user settings
const (
	MinConcurrent = 1
	MaxConcurrent = 10
)

// SettingsStore is the slice of the catalog the settings manager needs
type SettingsStore interface {
	GetSettings() (model.Settings, error)
	UpdateSetting(key, value string) error
}

// Settings manages user configuration persisted in the catalog
type Settings struct {
	store SettingsStore
}

// NewSettings creates a new settings manager
func NewSettings(store SettingsStore) *Settings {
	return &Settings{store: store}
}

// Current returns the full settings record with defaults applied
func (s *Settings) Current() (model.Settings, error) {
	return s.store.GetSettings()
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	settings, err := s.store.GetSettings()
	if err != nil || settings.DownloadDir == "" {
		defaultDir, dirErr := platform.DefaultDownloadDir()
		if dirErr != nil {
			return "./downloads"
		}
		return defaultDir
	}
	return settings.DownloadDir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) error {
	return s.store.UpdateSetting(catalog.KeyDownloadDir, dir)
}

// GetCodec returns the preferred audio codec
func (s *Settings) GetCodec() string {
	settings, err := s.store.GetSettings()
	if err != nil || settings.Codec == "" {
		return model.DefaultCodec
	}
	return settings.Codec
}

// SetCodec sets the preferred audio codec
func (s *Settings) SetCodec(codec string) error {
	if codec == "" {
		codec = model.DefaultCodec
	}
	return s.store.UpdateSetting(catalog.KeyCodec, codec)
}

// GetQuality returns the preferred audio quality (kbit/s as a string)
func (s *Settings) GetQuality() string {
	settings, err := s.store.GetSettings()
	if err != nil || settings.Quality == "" {
		return model.DefaultQuality
	}
	return settings.Quality
}

// SetQuality sets the preferred audio quality
func (s *Settings) SetQuality(quality string) error {
	if quality == "" {
		quality = model.DefaultQuality
	}
	return s.store.UpdateSetting(catalog.KeyQuality, quality)
}

// GetMaxConcurrentDownloads returns the concurrency limit
func (s *Settings) GetMaxConcurrentDownloads() int {
	settings, err := s.store.GetSettings()
	if err != nil || settings.MaxConcurrent <= 0 {
		return model.DefaultMaxConcurrent
	}
	return settings.MaxConcurrent
}

// SetMaxConcurrentDownloads sets the concurrency limit, clamped to sane bounds
func (s *Settings) SetMaxConcurrentDownloads(count int) error {
	if count < MinConcurrent {
		count = MinConcurrent
	}
	if count > MaxConcurrent {
		count = MaxConcurrent
	}
	return s.store.UpdateSetting(catalog.KeyMaxConcurrent, strconv.Itoa(count))
}

// Update writes one settings key after validating it
func (s *Settings) Update(key, value string) error {
	switch key {
	case catalog.KeyDownloadDir:
		return s.SetDownloadDirectory(value)
	case catalog.KeyCodec:
		return s.SetCodec(value)
	case catalog.KeyQuality:
		return s.SetQuality(value)
	case catalog.KeyMaxConcurrent:
		n, err := strconv.Atoi(value)
		if err != nil {
			return util.ErrInvalidConfig
		}
		return s.SetMaxConcurrentDownloads(n)
	default:
		return util.ErrInvalidConfig
	}
}
