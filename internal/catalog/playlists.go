package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ytget/tunevault/internal/model"
)

// Playlist is a durable playlist record
type Playlist struct {
	ID         int64
	PlaylistID string
	Title      string
	Uploader   string
	TrackCount int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AddPlaylist inserts a playlist and seeds its track records in a single
// transaction. The operation is idempotent on playlist_id: re-delivering the
// same playlist returns the existing row id and leaves existing tracks
// untouched.
func (s *Store) AddPlaylist(playlist *model.PlaylistInfo) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow("SELECT id FROM playlists WHERE playlist_id = ?", playlist.PlaylistID).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		result, err := tx.Exec(`
			INSERT INTO playlists (playlist_id, title, uploader)
			VALUES (?, ?, ?)
		`, playlist.PlaylistID, playlist.Title, playlist.Uploader)
		if err != nil {
			return 0, fmt.Errorf("failed to insert playlist: %w", err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get playlist id: %w", err)
		}
	case err != nil:
		return 0, fmt.Errorf("failed to look up playlist: %w", err)
	}

	for _, track := range playlist.Tracks {
		_, err := tx.Exec(`
			INSERT INTO tracks (playlist_id, track_id, title, duration_sec, url, status, progress)
			VALUES (?, ?, ?, ?, ?, ?, 0)
			ON CONFLICT(playlist_id, track_id) DO NOTHING
		`, playlist.PlaylistID, track.ID, track.Title, track.DurationSec, track.URL, model.StatusPending)
		if err != nil {
			return 0, fmt.Errorf("failed to seed track %s: %w", track.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit playlist: %w", err)
	}

	return id, nil
}

// GetAllPlaylists returns all playlists with their track counts
func (s *Store) GetAllPlaylists() ([]*Playlist, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.playlist_id, p.title, COALESCE(p.uploader, ''),
		       (SELECT COUNT(*) FROM tracks t WHERE t.playlist_id = p.playlist_id),
		       p.created_at, p.updated_at
		FROM playlists p
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*Playlist
	for rows.Next() {
		p := &Playlist{}
		if err := rows.Scan(&p.ID, &p.PlaylistID, &p.Title, &p.Uploader, &p.TrackCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	return playlists, rows.Err()
}

// GetPlaylistByNaturalID returns the playlist with the given natural key,
// or nil if absent
func (s *Store) GetPlaylistByNaturalID(playlistID string) (*Playlist, error) {
	p := &Playlist{}
	err := s.db.QueryRow(`
		SELECT id, playlist_id, title, COALESCE(uploader, ''),
		       (SELECT COUNT(*) FROM tracks t WHERE t.playlist_id = playlists.playlist_id),
		       created_at, updated_at
		FROM playlists WHERE playlist_id = ?
	`, playlistID).Scan(&p.ID, &p.PlaylistID, &p.Title, &p.Uploader, &p.TrackCount, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return p, nil
}
