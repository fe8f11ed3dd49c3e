package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ytget/tunevault/internal/model"
	"github.com/ytget/tunevault/internal/util"
)

// Track is a durable track record
type Track struct {
	ID            int64
	PlaylistID    string
	TrackID       string
	Title         string
	Artist        string
	DurationSec   int
	URL           string
	Status        model.DownloadStatus
	Progress      float64
	Error         string
	FilePath      string
	ThumbnailPath string
	IsFavorite    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const trackColumns = `
	id, playlist_id, track_id, title, COALESCE(artist, ''), duration_sec, url,
	status, progress, COALESCE(error, ''), COALESCE(file_path, ''),
	COALESCE(thumbnail_path, ''), is_favorite, created_at, updated_at
`

func scanTrack(row interface{ Scan(...any) error }) (*Track, error) {
	t := &Track{}
	err := row.Scan(
		&t.ID, &t.PlaylistID, &t.TrackID, &t.Title, &t.Artist, &t.DurationSec, &t.URL,
		&t.Status, &t.Progress, &t.Error, &t.FilePath,
		&t.ThumbnailPath, &t.IsFavorite, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) queryTracks(query string, args ...any) ([]*Track, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// GetTracksByPlaylistID returns all tracks of a playlist in insertion order
func (s *Store) GetTracksByPlaylistID(playlistID string) ([]*Track, error) {
	return s.queryTracks(
		"SELECT "+trackColumns+" FROM tracks WHERE playlist_id = ? ORDER BY id",
		playlistID,
	)
}

// GetAllTracks returns every track in the catalog
func (s *Store) GetAllTracks() ([]*Track, error) {
	return s.queryTracks("SELECT " + trackColumns + " FROM tracks ORDER BY id")
}

// GetFavorites returns all tracks marked as favorite
func (s *Store) GetFavorites() ([]*Track, error) {
	return s.queryTracks("SELECT " + trackColumns + " FROM tracks WHERE is_favorite = 1 ORDER BY id")
}

// UpdateTrackProgress overwrites the status and progress of a track
func (s *Store) UpdateTrackProgress(playlistID, trackID string, status model.DownloadStatus, progress float64) error {
	_, err := s.db.Exec(`
		UPDATE tracks SET status = ?, progress = ?, updated_at = ?
		WHERE playlist_id = ? AND track_id = ?
	`, status, progress, time.Now(), playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to update track progress: %w", err)
	}
	return nil
}

// UpdateTrackStatus overwrites a track's terminal state. A completed track
// has its error cleared; a failed one keeps the supplied error.
func (s *Store) UpdateTrackStatus(playlistID, trackID string, status model.DownloadStatus, filePath, thumbnailPath, errMsg string) error {
	if status == model.StatusCompleted {
		errMsg = ""
	}
	_, err := s.db.Exec(`
		UPDATE tracks SET status = ?, error = ?, file_path = ?, thumbnail_path = ?, updated_at = ?
		WHERE playlist_id = ? AND track_id = ?
	`, status, errMsg, filePath, thumbnailPath, time.Now(), playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to update track status: %w", err)
	}
	return nil
}

// UpdateTrackMeta records tag-probe results for a track
func (s *Store) UpdateTrackMeta(playlistID, trackID, artist string, durationSec int) error {
	_, err := s.db.Exec(`
		UPDATE tracks SET artist = ?, duration_sec = ?, updated_at = ?
		WHERE playlist_id = ? AND track_id = ?
	`, artist, durationSec, time.Now(), playlistID, trackID)
	if err != nil {
		return fmt.Errorf("failed to update track meta: %w", err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag of a track by its row id
func (s *Store) ToggleFavorite(id int64) error {
	result, err := s.db.Exec(`
		UPDATE tracks SET is_favorite = 1 - is_favorite, updated_at = ?
		WHERE id = ?
	`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check favorite toggle: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("track %d: %w", id, util.ErrNotFound)
	}
	return nil
}

// GetTrackByID returns a track by its row id, or nil if absent
func (s *Store) GetTrackByID(id int64) (*Track, error) {
	t, err := scanTrack(s.db.QueryRow("SELECT "+trackColumns+" FROM tracks WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}
	return t, nil
}

// MarkTrackFileMissing clears the file path of whichever track referenced
// the given (relative) path. Used by the library watcher when a downloaded
// file disappears from disk.
func (s *Store) MarkTrackFileMissing(filePath string) error {
	_, err := s.db.Exec(`
		UPDATE tracks SET file_path = '', updated_at = ?
		WHERE file_path = ?
	`, time.Now(), filePath)
	if err != nil {
		return fmt.Errorf("failed to mark track file missing: %w", err)
	}
	return nil
}
