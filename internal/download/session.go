package download

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/tunevault/internal/model"
	"github.com/ytget/tunevault/internal/util"
)

// Session owns the in-memory view of the playlist currently being
// downloaded. It consumes the supervisor's event stream on a single
// goroutine, so events are applied strictly in arrival order; per-track
// updates are last-write-wins overwrites.
type Session struct {
	ID string

	mu         sync.RWMutex
	playlist   *model.PlaylistInfo
	lastError  string
	finished   bool
	success    bool
	startedAt  time.Time
	finishedAt time.Time

	catalog  Catalog
	prober   MetaProber
	baseDir  string
	onUpdate func(Event)
	done     chan struct{}
}

// NewSession creates a reconciler for one download run. baseDir is the
// download directory the process was started with; file paths in events are
// relative to it. onUpdate may be nil.
func NewSession(catalog Catalog, prober MetaProber, baseDir string, onUpdate func(Event)) *Session {
	return &Session{
		ID:        uuid.NewString(),
		catalog:   catalog,
		prober:    prober,
		baseDir:   baseDir,
		onUpdate:  onUpdate,
		startedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// Run consumes the event stream until it is closed. It is the only writer of
// session state, so no event reordering or deduplication is performed.
func (s *Session) Run(events <-chan Event) {
	for event := range events {
		s.apply(event)
		if s.onUpdate != nil {
			s.onUpdate(event)
		}
	}

	s.mu.Lock()
	if !s.finished {
		// Stream ended without a download-complete event (eg. supervisor
		// failure); treat it as an unsuccessful session end.
		s.finished = true
		s.finishedAt = time.Now()
	}
	s.mu.Unlock()
	close(s.done)
}

// Wait blocks until the session has consumed its whole event stream
func (s *Session) Wait() {
	<-s.done
}

func (s *Session) apply(event Event) {
	switch event.Kind {
	case KindPlaylistInfo:
		s.applyPlaylistInfo(event.Playlist)
	case KindProgress:
		s.applyProgress(event.Progress)
	case KindTrackComplete:
		s.applyTrackComplete(event.TrackComplete)
	case KindTrackStatus:
		s.applyTrackStatus(event.TrackStatus)
	case KindDownloadError:
		s.applySessionError(event.Message)
	case KindError:
		s.applyStructuredError(event.Err)
	case KindComplete:
		s.applyComplete(event.Success)
	default:
		util.DebugLog("session %s: ignoring event kind %s", s.ID, event.Kind)
	}
}

func (s *Session) applyPlaylistInfo(playlist *model.PlaylistInfo) {
	if playlist == nil {
		return
	}

	s.mu.Lock()
	if s.playlist != nil && s.playlist.PlaylistID == playlist.PlaylistID {
		// Re-delivered playlist_info for the active session is a no-op
		s.mu.Unlock()
		return
	}
	now := time.Now()
	playlist.CreatedAt = now
	playlist.SeedPending()
	s.playlist = playlist
	s.mu.Unlock()

	// Idempotent upsert keyed by playlist_id; seeds track records pending
	if _, err := s.catalog.AddPlaylist(playlist); err != nil {
		s.recordError(err.Error())
		util.ErrorLog("session %s: persist playlist %s: %v", s.ID, playlist.PlaylistID, err)
	}
}

func (s *Session) applyProgress(progress *ProgressPayload) {
	if progress == nil {
		return
	}

	s.mu.Lock()
	track := s.findTrack(progress.TrackID)
	if track == nil {
		// No event is produced for unknown tracks in practice; defensive
		s.mu.Unlock()
		return
	}
	track.MarkDownloading(progress.Progress)
	playlistID := s.playlist.PlaylistID
	s.mu.Unlock()

	if err := s.catalog.UpdateTrackProgress(playlistID, progress.TrackID, model.StatusDownloading, progress.Progress); err != nil {
		util.WarnLog("session %s: persist progress for %s: %v", s.ID, progress.TrackID, err)
	}
}

func (s *Session) applyTrackComplete(complete *TrackCompletePayload) {
	if complete == nil {
		return
	}

	s.mu.Lock()
	track := s.findTrack(complete.TrackID)
	if track == nil {
		s.mu.Unlock()
		return
	}
	// Transfer finished; post-processing still running until track_status
	track.MarkDownloading(100)
	playlistID := s.playlist.PlaylistID
	s.mu.Unlock()

	if err := s.catalog.UpdateTrackProgress(playlistID, complete.TrackID, model.StatusDownloading, 100); err != nil {
		util.WarnLog("session %s: persist track_complete for %s: %v", s.ID, complete.TrackID, err)
	}
}

func (s *Session) applyTrackStatus(status *TrackStatusPayload) {
	if status == nil {
		return
	}

	s.mu.Lock()
	track := s.findTrack(status.TrackID)
	if track == nil {
		s.mu.Unlock()
		return
	}
	if status.Status == TrackOutcomeSuccess {
		track.MarkCompleted(status.FilePath, status.ThumbnailPath)
		if status.Title != "" {
			track.Title = status.Title
		}
		if status.DurationSec > 0 {
			track.DurationSec = int(status.DurationSec)
		}
	} else {
		track.MarkFailed(status.Error)
	}
	playlistID := s.playlist.PlaylistID
	completed := track.Status == model.StatusCompleted
	filePath := track.FilePath
	s.mu.Unlock()

	mapped := model.StatusFailed
	if completed {
		mapped = model.StatusCompleted
	}
	if err := s.catalog.UpdateTrackStatus(playlistID, status.TrackID, mapped, status.FilePath, status.ThumbnailPath, status.Error); err != nil {
		util.WarnLog("session %s: persist track_status for %s: %v", s.ID, status.TrackID, err)
	}

	if completed {
		s.probeTrack(playlistID, status.TrackID, filePath)
	}
}

// probeTrack enriches a completed track with tags read from the audio file
func (s *Session) probeTrack(playlistID, trackID, relPath string) {
	if s.prober == nil || relPath == "" {
		return
	}

	artist, title, err := s.prober.Probe(filepath.Join(s.baseDir, relPath))
	if err != nil {
		util.DebugLog("session %s: tag probe for %s: %v", s.ID, trackID, err)
		return
	}

	s.mu.Lock()
	durationSec := 0
	if track := s.findTrack(trackID); track != nil {
		if artist != "" {
			track.Artist = artist
		}
		if title != "" && track.Title == "" {
			track.Title = title
		}
		durationSec = track.DurationSec
	}
	s.mu.Unlock()

	if artist == "" {
		return
	}
	if err := s.catalog.UpdateTrackMeta(playlistID, trackID, artist, durationSec); err != nil {
		util.WarnLog("session %s: persist track meta for %s: %v", s.ID, trackID, err)
	}
}

func (s *Session) applySessionError(message string) {
	if message == "" {
		return
	}
	s.recordError(message)
	util.WarnLog("session %s: downloader stderr: %s", s.ID, message)
}

func (s *Session) applyStructuredError(payload *ErrorPayload) {
	if payload == nil {
		return
	}
	message := payload.Message
	if message == "" {
		message = payload.ThumbnailError
	}
	if message == "" {
		return
	}
	s.recordError(message)
	util.WarnLog("session %s: downloader error: %s", s.ID, message)
}

func (s *Session) applyComplete(success bool) {
	s.mu.Lock()
	s.finished = true
	s.success = success
	s.finishedAt = time.Now()
	s.mu.Unlock()

	if success {
		util.InfoLog("session %s: downloader finished", s.ID)
	} else {
		util.WarnLog("session %s: downloader finished unsuccessfully", s.ID)
	}
}

func (s *Session) recordError(message string) {
	s.mu.Lock()
	s.lastError = message
	s.mu.Unlock()
}

// findTrack must be called with s.mu held
func (s *Session) findTrack(trackID string) *model.TrackInfo {
	if s.playlist == nil {
		return nil
	}
	return s.playlist.FindTrack(trackID)
}

// Snapshot is a point-in-time copy of session state for the presentation layer
type Snapshot struct {
	ID         string              `json:"id"`
	Playlist   *model.PlaylistInfo `json:"playlist,omitempty"`
	LastError  string              `json:"last_error,omitempty"`
	Finished   bool                `json:"finished"`
	Success    bool                `json:"success"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt time.Time           `json:"finished_at,omitempty"`
}

// Snapshot returns a deep copy of the current session state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{
		ID:         s.ID,
		LastError:  s.lastError,
		Finished:   s.finished,
		Success:    s.success,
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
	}
	if s.playlist != nil {
		playlist := *s.playlist
		playlist.Tracks = make([]*model.TrackInfo, len(s.playlist.Tracks))
		for i, track := range s.playlist.Tracks {
			copied := *track
			playlist.Tracks[i] = &copied
		}
		snapshot.Playlist = &playlist
	}
	return snapshot
}

// Finished reports whether the session's event stream has ended
func (s *Session) Finished() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finished
}
