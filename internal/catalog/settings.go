package catalog

import (
	"fmt"
	"strconv"

	"github.com/ytget/tunevault/internal/model"
	"github.com/ytget/tunevault/internal/platform"
)

// Settings keys
const (
	KeyDownloadDir   = "download_directory"
	KeyCodec         = "preferred_codec"
	KeyQuality       = "preferred_quality"
	KeyMaxConcurrent = "max_concurrent_downloads"
)

// GetSettings loads the settings record, merging stored values over
// defaults so a fresh catalog is immediately usable
func (s *Store) GetSettings() (model.Settings, error) {
	defaultDir, err := platform.DefaultDownloadDir()
	if err != nil {
		defaultDir = "./downloads"
	}
	settings := model.DefaultSettings(defaultDir)

	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return settings, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case KeyDownloadDir:
			settings.DownloadDir = value
		case KeyCodec:
			settings.Codec = value
		case KeyQuality:
			settings.Quality = value
		case KeyMaxConcurrent:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				settings.MaxConcurrent = n
			}
		}
	}
	return settings, rows.Err()
}

// UpdateSetting writes one settings key
func (s *Store) UpdateSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to update setting %q: %w", key, err)
	}
	return nil
}
