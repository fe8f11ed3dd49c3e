package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ytget/tunevault/internal/catalog"
	"github.com/ytget/tunevault/internal/config"
	"github.com/ytget/tunevault/internal/download"
	"github.com/ytget/tunevault/internal/util"
)

// Handlers bundles the services the HTTP surface exposes
type Handlers struct {
	base      context.Context
	store     *catalog.Store
	downloads *download.Service
	settings  *config.Settings
	hub       *Hub
}

// NewHandlers creates the handler set. base is the server's lifecycle
// context: download sessions started over HTTP must outlive the request
// that triggered them, so they are bound to base instead of r.Context().
func NewHandlers(base context.Context, store *catalog.Store, downloads *download.Service, settings *config.Settings, hub *Hub) *Handlers {
	return &Handlers{base: base, store: store, downloads: downloads, settings: settings, hub: hub}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		util.WarnLog("[http] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// GetPlaylists returns all playlists in the catalog
func (h *Handlers) GetPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.store.GetAllPlaylists()
	if err != nil {
		util.ErrorLog("[http] list playlists: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load playlists")
		return
	}
	if playlists == nil {
		playlists = []*catalog.Playlist{}
	}
	writeJSON(w, http.StatusOK, playlists)
}

// GetPlaylistTracks returns the tracks of one playlist
func (h *Handlers) GetPlaylistTracks(w http.ResponseWriter, r *http.Request) {
	playlistID := chi.URLParam(r, "playlistID")

	playlist, err := h.store.GetPlaylistByNaturalID(playlistID)
	if err != nil {
		util.ErrorLog("[http] get playlist %s: %v", playlistID, err)
		writeError(w, http.StatusInternalServerError, "failed to load playlist")
		return
	}
	if playlist == nil {
		writeError(w, http.StatusNotFound, "playlist not found")
		return
	}

	tracks, err := h.store.GetTracksByPlaylistID(playlistID)
	if err != nil {
		util.ErrorLog("[http] list tracks for %s: %v", playlistID, err)
		writeError(w, http.StatusInternalServerError, "failed to load tracks")
		return
	}
	if tracks == nil {
		tracks = []*catalog.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GetTracks returns every track in the catalog
func (h *Handlers) GetTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.store.GetAllTracks()
	if err != nil {
		util.ErrorLog("[http] list tracks: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load tracks")
		return
	}
	if tracks == nil {
		tracks = []*catalog.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GetFavorites returns all favorite tracks
func (h *Handlers) GetFavorites(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.store.GetFavorites()
	if err != nil {
		util.ErrorLog("[http] list favorites: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load favorites")
		return
	}
	if tracks == nil {
		tracks = []*catalog.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// ToggleFavorite flips a track's favorite flag
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "trackID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	if err := h.store.ToggleFavorite(id); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			writeError(w, http.StatusNotFound, "track not found")
			return
		}
		util.ErrorLog("[http] toggle favorite %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to toggle favorite")
		return
	}

	track, err := h.store.GetTrackByID(id)
	if err != nil || track == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	writeJSON(w, http.StatusOK, track)
}

// GetSettings returns the user settings record
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Current()
	if err != nil {
		util.ErrorLog("[http] load settings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings applies a partial settings update from a key/value body
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid settings body")
		return
	}

	for key, value := range body {
		if err := h.settings.Update(key, value); err != nil {
			if errors.Is(err, util.ErrInvalidConfig) {
				writeError(w, http.StatusBadRequest, "unknown or invalid setting: "+key)
				return
			}
			util.ErrorLog("[http] update setting %s: %v", key, err)
			writeError(w, http.StatusInternalServerError, "failed to update settings")
			return
		}
	}

	settings, err := h.settings.Current()
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// StartDownload kicks off a playlist download session
func (h *Handlers) StartDownload(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		writeError(w, http.StatusBadRequest, "missing playlist url")
		return
	}

	// The request context dies when this handler returns, which would kill
	// the downloader process; the session runs on the server's context.
	session, err := h.downloads.StartDownload(h.base, body.URL)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidURL):
			writeError(w, http.StatusBadRequest, "invalid playlist url")
		case errors.Is(err, util.ErrSessionActive):
			writeError(w, http.StatusConflict, "a download session is already running")
		default:
			util.ErrorLog("[http] start download: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to start download")
		}
		return
	}

	writeJSON(w, http.StatusAccepted, session.Snapshot())
}

// GetActiveDownload returns the current session snapshot
func (h *Handlers) GetActiveDownload(w http.ResponseWriter, r *http.Request) {
	session, ok := h.downloads.ActiveSession()
	if !ok {
		writeError(w, http.StatusNotFound, "no download session")
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Health is a trivial liveness endpoint
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
