package download

import (
	"context"

	"github.com/ytget/tunevault/internal/model"
)

// Runner abstracts the process supervisor so the service can be tested with
// scripted event streams.
type Runner interface {
	Start(ctx context.Context, cfg Config) (<-chan Event, error)
}

// Catalog is the persistence surface the session reconciler writes through.
// Every call is an independent atomic record operation; a rejected write is
// logged and surfaced but never rolls back in-memory state.
type Catalog interface {
	AddPlaylist(playlist *model.PlaylistInfo) (int64, error)
	UpdateTrackProgress(playlistID, trackID string, status model.DownloadStatus, progress float64) error
	UpdateTrackStatus(playlistID, trackID string, status model.DownloadStatus, filePath, thumbnailPath, errMsg string) error
	UpdateTrackMeta(playlistID, trackID, artist string, durationSec int) error
	GetSettings() (model.Settings, error)
}

// MetaProber reads tags from a finished audio file. Probe failures are
// logged and never fail the track.
type MetaProber interface {
	Probe(path string) (artist, title string, err error)
}
