package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ytget/tunevault/internal/model"
	"github.com/ytget/tunevault/internal/platform"
	"github.com/ytget/tunevault/internal/util"
)

// ThumbnailsSubdir is created under the download directory; the downloader
// writes cover images there
const ThumbnailsSubdir = "thumbnails"

// Service ties URL validation, settings, directory preparation and process
// supervision together into download sessions. One session runs at a time.
type Service struct {
	runner  Runner
	catalog Catalog
	prober  MetaProber

	mu       sync.RWMutex
	current  *Session
	onUpdate func(Event)
}

// NewService creates a new download service
func NewService(runner Runner, catalog Catalog, prober MetaProber) *Service {
	return &Service{
		runner:  runner,
		catalog: catalog,
		prober:  prober,
	}
}

// SetUpdateCallback sets the callback invoked for every session event.
// The callback runs on the session goroutine and must not block.
func (s *Service) SetUpdateCallback(callback func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// StartDownload validates the URL, prepares directories and spawns a
// download session. Returns util.ErrInvalidURL for unusable input and
// util.ErrSessionActive while a session is still running.
func (s *Service) StartDownload(ctx context.Context, url string) (*Session, error) {
	if !platform.IsValidPlaylistURL(url) {
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidURL, url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !s.current.Finished() {
		return nil, util.ErrSessionActive
	}

	settings, err := s.catalog.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := platform.CreateDirectoryIfNotExists(settings.DownloadDir); err != nil {
		return nil, fmt.Errorf("prepare download directory: %w", err)
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Join(settings.DownloadDir, ThumbnailsSubdir)); err != nil {
		return nil, fmt.Errorf("prepare thumbnails directory: %w", err)
	}

	events, err := s.runner.Start(ctx, Config{
		URL:       url,
		Codec:     settings.Codec,
		Quality:   settings.Quality,
		Directory: settings.DownloadDir,
	})
	if err != nil {
		return nil, err
	}

	session := NewSession(s.catalog, s.prober, settings.DownloadDir, s.onUpdate)
	s.current = session
	util.InfoLog("session %s: downloading %s (codec=%s quality=%s)", session.ID, url, settings.Codec, settings.Quality)

	go session.Run(events)

	return session, nil
}

// ActiveSession returns the most recent session, finished or not, and
// whether one exists
func (s *Service) ActiveSession() (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != nil
}

// Settings returns the current user settings through the catalog
func (s *Service) Settings() (model.Settings, error) {
	return s.catalog.GetSettings()
}
