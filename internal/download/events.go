package download

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ytget/tunevault/internal/model"
)

// EventKind identifies the type of a download event
type EventKind string

const (
	// KindPlaylistInfo carries playlist metadata and the track list
	KindPlaylistInfo EventKind = "playlist_info"

	// KindProgress carries a per-track progress update
	KindProgress EventKind = "progress"

	// KindTrackStatus carries a per-track terminal status
	KindTrackStatus EventKind = "track_status"

	// KindTrackComplete signals that a track's transfer finished, ahead of
	// the post-processed track_status message
	KindTrackComplete EventKind = "track_complete"

	// KindDownloadError carries raw stderr output from the downloader
	KindDownloadError EventKind = "download-error"

	// KindError carries a structured error reported by the downloader
	KindError EventKind = "error"

	// KindComplete signals downloader process exit
	KindComplete EventKind = "download-complete"
)

// Recognized stdout line prefixes
const (
	prefixPlaylistInfo  = "playlist_info:"
	prefixProgress      = "progress:"
	prefixTrackStatus   = "track_status:"
	prefixTrackComplete = "track_complete:"
	prefixError         = "error:"
)

// Downloader-reported track outcome values
const (
	TrackOutcomeSuccess = "success"
)

// ProgressPayload is the wire shape of a progress message
type ProgressPayload struct {
	TrackID    string  `json:"track_id"`
	Progress   float64 `json:"progress"`
	Downloaded int64   `json:"downloaded"`
	Total      int64   `json:"total"`
	Speed      float64 `json:"speed"`
	ETASec     float64 `json:"eta"`
}

// TrackStatusPayload is the wire shape of a track_status message
type TrackStatusPayload struct {
	TrackID       string  `json:"track_id"`
	Status        string  `json:"status"`
	FilePath      string  `json:"file_path"`
	ThumbnailPath string  `json:"thumbnail_path"`
	Title         string  `json:"title"`
	DurationSec   float64 `json:"duration"`
	Error         string  `json:"error"`
}

// TrackCompletePayload is the wire shape of a track_complete message
type TrackCompletePayload struct {
	TrackID string `json:"track_id"`
}

// ErrorPayload is the wire shape of a structured error message
type ErrorPayload struct {
	TrackID        string `json:"track_id,omitempty"`
	Type           string `json:"type,omitempty"`
	Message        string `json:"message,omitempty"`
	ThumbnailError string `json:"thumbnail_error,omitempty"`
}

// Event is the tagged-union envelope produced at the process boundary.
// Exactly one payload field matching Kind is set.
type Event struct {
	Kind          EventKind             `json:"kind"`
	Playlist      *model.PlaylistInfo   `json:"playlist,omitempty"`
	Progress      *ProgressPayload      `json:"progress,omitempty"`
	TrackStatus   *TrackStatusPayload   `json:"track_status,omitempty"`
	TrackComplete *TrackCompletePayload `json:"track_complete,omitempty"`
	Err           *ErrorPayload         `json:"error,omitempty"`
	Message       string                `json:"message,omitempty"` // raw stderr text
	Success       bool                  `json:"success,omitempty"` // for download-complete
}

// ParseLine parses one stdout line into an Event. A nil event with a nil
// error means the line is blank or carries no recognized prefix and should
// be ignored. A non-nil error means the prefix was recognized but the JSON
// after it is malformed; the caller logs and drops the line.
func ParseLine(line string) (*Event, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(line, prefixPlaylistInfo):
		var playlist model.PlaylistInfo
		if err := json.Unmarshal([]byte(line[len(prefixPlaylistInfo):]), &playlist); err != nil {
			return nil, fmt.Errorf("malformed playlist_info payload: %w", err)
		}
		if playlist.PlaylistID == "" {
			return nil, fmt.Errorf("playlist_info payload missing playlist_id")
		}
		return &Event{Kind: KindPlaylistInfo, Playlist: &playlist}, nil

	case strings.HasPrefix(line, prefixProgress):
		var progress ProgressPayload
		if err := json.Unmarshal([]byte(line[len(prefixProgress):]), &progress); err != nil {
			return nil, fmt.Errorf("malformed progress payload: %w", err)
		}
		return &Event{Kind: KindProgress, Progress: &progress}, nil

	case strings.HasPrefix(line, prefixTrackStatus):
		var status TrackStatusPayload
		if err := json.Unmarshal([]byte(line[len(prefixTrackStatus):]), &status); err != nil {
			return nil, fmt.Errorf("malformed track_status payload: %w", err)
		}
		return &Event{Kind: KindTrackStatus, TrackStatus: &status}, nil

	case strings.HasPrefix(line, prefixTrackComplete):
		var complete TrackCompletePayload
		if err := json.Unmarshal([]byte(line[len(prefixTrackComplete):]), &complete); err != nil {
			return nil, fmt.Errorf("malformed track_complete payload: %w", err)
		}
		return &Event{Kind: KindTrackComplete, TrackComplete: &complete}, nil

	case strings.HasPrefix(line, prefixError):
		var payload ErrorPayload
		if err := json.Unmarshal([]byte(line[len(prefixError):]), &payload); err != nil {
			// The downloader also prints bare "error:<text>" lines
			payload = ErrorPayload{Message: strings.TrimSpace(line[len(prefixError):])}
		}
		return &Event{Kind: KindError, Err: &payload}, nil
	}

	return nil, nil
}
