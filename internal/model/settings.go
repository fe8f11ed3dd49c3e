package model

// Settings is the flat user-settings record held in the catalog.
// It is loaded at startup and written on explicit save.
type Settings struct {
	DownloadDir   string `json:"download_directory"`
	Codec         string `json:"preferred_codec"`
	Quality       string `json:"preferred_quality"`
	MaxConcurrent int    `json:"max_concurrent_downloads"`
}

// Default values
const (
	DefaultCodec         = "mp3"
	DefaultQuality       = "192"
	DefaultMaxConcurrent = 3
)

// DefaultSettings returns the settings used before the user saves anything.
// The download directory default is resolved by the caller since it depends
// on the host platform.
func DefaultSettings(downloadDir string) Settings {
	return Settings{
		DownloadDir:   downloadDir,
		Codec:         DefaultCodec,
		Quality:       DefaultQuality,
		MaxConcurrent: DefaultMaxConcurrent,
	}
}
