package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/tunevault/internal/model"
	"github.com/ytget/tunevault/internal/util"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testPlaylist(id string, trackIDs ...string) *model.PlaylistInfo {
	playlist := &model.PlaylistInfo{PlaylistID: id, Title: "Mix", Uploader: "Alice"}
	for _, trackID := range trackIDs {
		playlist.Tracks = append(playlist.Tracks, &model.TrackInfo{
			ID:    trackID,
			Title: "Track " + trackID,
			URL:   "https://www.youtube.com/watch?v=" + trackID,
		})
	}
	return playlist
}

func TestOpen_WALEnabled(t *testing.T) {
	store := openTestStore(t)

	var mode string
	if err := store.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode = %q, expected wal", mode)
	}
}

func TestOpen_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if _, err := store.AddPlaylist(testPlaylist("PL1", "t1")); err != nil {
		t.Fatalf("AddPlaylist: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer store.Close()

	playlists, err := store.GetAllPlaylists()
	if err != nil {
		t.Fatalf("GetAllPlaylists: %v", err)
	}
	if len(playlists) != 1 {
		t.Errorf("got %d playlists after reopen, expected 1", len(playlists))
	}
}

func TestAddPlaylist_Idempotent(t *testing.T) {
	store := openTestStore(t)

	first, err := store.AddPlaylist(testPlaylist("PL1", "t1", "t2"))
	if err != nil {
		t.Fatalf("first AddPlaylist: %v", err)
	}

	// Mark a track so a re-delivery would be visible as a reset
	if err := store.UpdateTrackProgress("PL1", "t1", model.StatusDownloading, 40); err != nil {
		t.Fatalf("UpdateTrackProgress: %v", err)
	}

	second, err := store.AddPlaylist(testPlaylist("PL1", "t1", "t2"))
	if err != nil {
		t.Fatalf("second AddPlaylist: %v", err)
	}
	if first != second {
		t.Errorf("row ids differ across re-delivery: %d vs %d", first, second)
	}

	tracks, err := store.GetTracksByPlaylistID("PL1")
	if err != nil {
		t.Fatalf("GetTracksByPlaylistID: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("got %d tracks, expected 2", len(tracks))
	}
	if tracks[0].Status != model.StatusDownloading || tracks[0].Progress != 40 {
		t.Errorf("t1 reset by re-delivery: %s/%v", tracks[0].Status, tracks[0].Progress)
	}
	if tracks[1].Status != model.StatusPending {
		t.Errorf("t2 status = %s, expected %s", tracks[1].Status, model.StatusPending)
	}
}

func TestGetPlaylistByNaturalID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddPlaylist(testPlaylist("PL1", "t1")); err != nil {
		t.Fatalf("AddPlaylist: %v", err)
	}

	p, err := store.GetPlaylistByNaturalID("PL1")
	if err != nil {
		t.Fatalf("GetPlaylistByNaturalID: %v", err)
	}
	if p == nil || p.Title != "Mix" || p.Uploader != "Alice" || p.TrackCount != 1 {
		t.Errorf("unexpected playlist: %+v", p)
	}

	missing, err := store.GetPlaylistByNaturalID("nope")
	if err != nil {
		t.Fatalf("GetPlaylistByNaturalID(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for a missing playlist, got %+v", missing)
	}
}

func TestUpdateTrackStatus(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddPlaylist(testPlaylist("PL1", "t1")); err != nil {
		t.Fatalf("AddPlaylist: %v", err)
	}

	if err := store.UpdateTrackStatus("PL1", "t1", model.StatusFailed, "", "", "timeout"); err != nil {
		t.Fatalf("UpdateTrackStatus(failed): %v", err)
	}
	tracks, _ := store.GetTracksByPlaylistID("PL1")
	if tracks[0].Status != model.StatusFailed || tracks[0].Error != "timeout" {
		t.Errorf("after failure: %s/%q", tracks[0].Status, tracks[0].Error)
	}

	// A later success clears the stored error
	if err := store.UpdateTrackStatus("PL1", "t1", model.StatusCompleted, "One.mp3", "thumbnails/t1.jpg", "timeout"); err != nil {
		t.Fatalf("UpdateTrackStatus(completed): %v", err)
	}
	tracks, _ = store.GetTracksByPlaylistID("PL1")
	track := tracks[0]
	if track.Status != model.StatusCompleted {
		t.Errorf("status = %s, expected %s", track.Status, model.StatusCompleted)
	}
	if track.Error != "" {
		t.Errorf("error = %q, expected it cleared", track.Error)
	}
	if track.FilePath != "One.mp3" || track.ThumbnailPath != "thumbnails/t1.jpg" {
		t.Errorf("paths = %q / %q", track.FilePath, track.ThumbnailPath)
	}
}

func TestUpdateTrackMeta(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddPlaylist(testPlaylist("PL1", "t1")); err != nil {
		t.Fatalf("AddPlaylist: %v", err)
	}

	if err := store.UpdateTrackMeta("PL1", "t1", "Some Band", 215); err != nil {
		t.Fatalf("UpdateTrackMeta: %v", err)
	}

	tracks, _ := store.GetTracksByPlaylistID("PL1")
	if tracks[0].Artist != "Some Band" || tracks[0].DurationSec != 215 {
		t.Errorf("meta = %q/%d", tracks[0].Artist, tracks[0].DurationSec)
	}
}

func TestToggleFavorite(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddPlaylist(testPlaylist("PL1", "t1")); err != nil {
		t.Fatalf("AddPlaylist: %v", err)
	}
	tracks, _ := store.GetTracksByPlaylistID("PL1")
	id := tracks[0].ID

	if err := store.ToggleFavorite(id); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	favorites, err := store.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites: %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != id {
		t.Errorf("unexpected favorites: %+v", favorites)
	}

	if err := store.ToggleFavorite(id); err != nil {
		t.Fatalf("second ToggleFavorite: %v", err)
	}
	favorites, _ = store.GetFavorites()
	if len(favorites) != 0 {
		t.Errorf("expected no favorites after toggling back, got %d", len(favorites))
	}

	err = store.ToggleFavorite(99999)
	if !errors.Is(err, util.ErrNotFound) {
		t.Errorf("ToggleFavorite(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestMarkTrackFileMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.AddPlaylist(testPlaylist("PL1", "t1")); err != nil {
		t.Fatalf("AddPlaylist: %v", err)
	}
	if err := store.UpdateTrackStatus("PL1", "t1", model.StatusCompleted, "One.mp3", "", ""); err != nil {
		t.Fatalf("UpdateTrackStatus: %v", err)
	}

	if err := store.MarkTrackFileMissing("One.mp3"); err != nil {
		t.Fatalf("MarkTrackFileMissing: %v", err)
	}

	tracks, _ := store.GetTracksByPlaylistID("PL1")
	if tracks[0].FilePath != "" {
		t.Errorf("file path = %q, expected it cleared", tracks[0].FilePath)
	}
}

func TestSettings_RoundTripAndDefaults(t *testing.T) {
	store := openTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.Codec != model.DefaultCodec || settings.Quality != model.DefaultQuality {
		t.Errorf("fresh defaults = %s/%s", settings.Codec, settings.Quality)
	}
	if settings.MaxConcurrent != model.DefaultMaxConcurrent {
		t.Errorf("fresh max concurrent = %d", settings.MaxConcurrent)
	}
	if settings.DownloadDir == "" {
		t.Error("expected a non-empty default download directory")
	}

	if err := store.UpdateSetting(KeyCodec, "opus"); err != nil {
		t.Fatalf("UpdateSetting: %v", err)
	}
	if err := store.UpdateSetting(KeyCodec, "m4a"); err != nil {
		t.Fatalf("second UpdateSetting: %v", err)
	}
	if err := store.UpdateSetting(KeyMaxConcurrent, "6"); err != nil {
		t.Fatalf("UpdateSetting(max): %v", err)
	}
	if err := store.UpdateSetting(KeyMaxConcurrent, "junk"); err != nil {
		t.Fatalf("UpdateSetting(junk): %v", err)
	}

	settings, err = store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings after writes: %v", err)
	}
	if settings.Codec != "m4a" {
		t.Errorf("codec = %q, expected the last write", settings.Codec)
	}
	// Unparseable stored value falls back to the default
	if settings.MaxConcurrent != model.DefaultMaxConcurrent {
		t.Errorf("max concurrent = %d, expected %d", settings.MaxConcurrent, model.DefaultMaxConcurrent)
	}
}
