package model

import (
	"time"
)

// TrackInfo represents a single track in a playlist download session.
// The json tags match the wire shape emitted by the downloader's
// playlist_info message; the remaining fields are filled in locally as
// progress and track_status events arrive.
type TrackInfo struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Artist        string         `json:"artist,omitempty"`
	DurationSec   int            `json:"duration,omitempty"`
	URL           string         `json:"url"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	Status        DownloadStatus `json:"download_status"`
	Progress      float64        `json:"progress"` // 0 to 100
	Error         string         `json:"error,omitempty"`
	FilePath      string         `json:"file_path,omitempty"`      // relative to the download directory
	ThumbnailPath string         `json:"thumbnail_path,omitempty"` // relative to the download directory
	IsFavorite    bool           `json:"is_favorite,omitempty"`
	CreatedAt     time.Time      `json:"created_at,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at,omitempty"`
}

// MarkDownloading records a progress update for the track
func (t *TrackInfo) MarkDownloading(progress float64) {
	t.Status = StatusDownloading
	t.Progress = progress
	t.UpdatedAt = time.Now()
}

// MarkCompleted records a successful terminal state and clears any prior error
func (t *TrackInfo) MarkCompleted(filePath, thumbnailPath string) {
	t.Status = StatusCompleted
	t.Error = ""
	t.FilePath = filePath
	t.ThumbnailPath = thumbnailPath
	t.UpdatedAt = time.Now()
}

// MarkFailed records a failed terminal state, preserving the supplied error
func (t *TrackInfo) MarkFailed(errMsg string) {
	t.Status = StatusFailed
	t.Error = errMsg
	t.UpdatedAt = time.Now()
}

// DurationString returns the duration formatted as mm:ss or hh:mm:ss,
// or "—" if unknown
func (t *TrackInfo) DurationString() string {
	if t.DurationSec <= 0 {
		return "—"
	}
	return formatSeconds(t.DurationSec)
}
