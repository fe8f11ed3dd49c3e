package download

import (
	"errors"
	"testing"

	"github.com/ytget/tunevault/internal/model"
)

type statusCall struct {
	playlistID string
	trackID    string
	status     model.DownloadStatus
	filePath   string
	errMsg     string
}

// fakeCatalog records every write the session performs
type fakeCatalog struct {
	addCalls       int
	progressCalls  []statusCall
	statusCalls    []statusCall
	metaCalls      []statusCall
	addErr         error
	progressErr    error
	lastPlaylistID int64
	settingsDir    string
}

func (f *fakeCatalog) AddPlaylist(playlist *model.PlaylistInfo) (int64, error) {
	f.addCalls++
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.lastPlaylistID++
	return f.lastPlaylistID, nil
}

func (f *fakeCatalog) UpdateTrackProgress(playlistID, trackID string, status model.DownloadStatus, progress float64) error {
	f.progressCalls = append(f.progressCalls, statusCall{playlistID: playlistID, trackID: trackID, status: status})
	return f.progressErr
}

func (f *fakeCatalog) UpdateTrackStatus(playlistID, trackID string, status model.DownloadStatus, filePath, thumbnailPath, errMsg string) error {
	f.statusCalls = append(f.statusCalls, statusCall{
		playlistID: playlistID, trackID: trackID, status: status, filePath: filePath, errMsg: errMsg,
	})
	return nil
}

func (f *fakeCatalog) UpdateTrackMeta(playlistID, trackID, artist string, durationSec int) error {
	f.metaCalls = append(f.metaCalls, statusCall{playlistID: playlistID, trackID: trackID, filePath: artist})
	return nil
}

func (f *fakeCatalog) GetSettings() (model.Settings, error) {
	dir := f.settingsDir
	if dir == "" {
		dir = "/music"
	}
	return model.DefaultSettings(dir), nil
}

type fakeProber struct {
	artist string
	title  string
	err    error
	calls  []string
}

func (f *fakeProber) Probe(path string) (string, string, error) {
	f.calls = append(f.calls, path)
	return f.artist, f.title, f.err
}

func playlistEvent(id string, trackIDs ...string) Event {
	playlist := &model.PlaylistInfo{PlaylistID: id, Title: "Mix"}
	for _, trackID := range trackIDs {
		playlist.Tracks = append(playlist.Tracks, &model.TrackInfo{ID: trackID, Title: "Track " + trackID})
	}
	return Event{Kind: KindPlaylistInfo, Playlist: playlist}
}

func runSession(catalog Catalog, prober MetaProber, events ...Event) *Session {
	session := NewSession(catalog, prober, "/music", nil)
	stream := make(chan Event, len(events))
	for _, event := range events {
		stream <- event
	}
	close(stream)
	session.Run(stream)
	return session
}

func TestSession_SeedsPendingTracks(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil, playlistEvent("PL1", "t1", "t2"))

	snapshot := session.Snapshot()
	if snapshot.Playlist == nil {
		t.Fatal("expected a playlist in the snapshot")
	}
	for _, track := range snapshot.Playlist.Tracks {
		if track.Status != model.StatusPending {
			t.Errorf("track %s status = %s, expected %s", track.ID, track.Status, model.StatusPending)
		}
	}
	if catalog.addCalls != 1 {
		t.Errorf("AddPlaylist called %d times, expected 1", catalog.addCalls)
	}
}

func TestSession_RedeliveredPlaylistInfoIsNoOp(t *testing.T) {
	catalog := &fakeCatalog{}
	runSession(catalog, nil,
		playlistEvent("PL1", "t1"),
		playlistEvent("PL1", "t1"),
	)

	if catalog.addCalls != 1 {
		t.Errorf("AddPlaylist called %d times, expected 1 for re-delivered playlist_info", catalog.addCalls)
	}
}

func TestSession_LastProgressWins(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "t1", Progress: 80}},
		Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "t1", Progress: 35}},
	)

	track := session.Snapshot().Playlist.FindTrack("t1")
	if track.Progress != 35 {
		t.Errorf("progress = %v, expected the later update 35", track.Progress)
	}
	if track.Status != model.StatusDownloading {
		t.Errorf("status = %s, expected %s", track.Status, model.StatusDownloading)
	}
	if len(catalog.progressCalls) != 2 {
		t.Errorf("UpdateTrackProgress called %d times, expected 2", len(catalog.progressCalls))
	}
}

func TestSession_ProgressForUnknownTrackIgnored(t *testing.T) {
	catalog := &fakeCatalog{}
	runSession(catalog, nil,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "ghost", Progress: 50}},
	)

	if len(catalog.progressCalls) != 0 {
		t.Errorf("expected no persistence for an unknown track, got %d calls", len(catalog.progressCalls))
	}
}

func TestSession_SuccessClearsEarlierFailure(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t1", Status: "failed", Error: "timeout"}},
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t1", Status: TrackOutcomeSuccess, FilePath: "One.mp3"}},
	)

	track := session.Snapshot().Playlist.FindTrack("t1")
	if track.Status != model.StatusCompleted {
		t.Errorf("status = %s, expected %s", track.Status, model.StatusCompleted)
	}
	if track.Error != "" {
		t.Errorf("error = %q, expected it cleared by the success", track.Error)
	}
	if track.FilePath != "One.mp3" {
		t.Errorf("file path = %q", track.FilePath)
	}
}

func TestSession_FailureKeepsError(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t1", Status: "failed", Error: "age restricted"}},
	)

	track := session.Snapshot().Playlist.FindTrack("t1")
	if track.Status != model.StatusFailed {
		t.Errorf("status = %s, expected %s", track.Status, model.StatusFailed)
	}
	if track.Error != "age restricted" {
		t.Errorf("error = %q, expected 'age restricted'", track.Error)
	}
	if len(catalog.statusCalls) != 1 || catalog.statusCalls[0].status != model.StatusFailed {
		t.Errorf("unexpected status persistence: %+v", catalog.statusCalls)
	}
}

func TestSession_MixedOutcomeRun(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil,
		playlistEvent("PL1", "t1", "t2"),
		Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "t1", Progress: 40}},
		Event{Kind: KindTrackComplete, TrackComplete: &TrackCompletePayload{TrackID: "t1"}},
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t1", Status: TrackOutcomeSuccess, FilePath: "One.mp3"}},
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t2", Status: "failed", Error: "unavailable"}},
		Event{Kind: KindComplete, Success: true},
	)

	snapshot := session.Snapshot()
	if !snapshot.Finished || !snapshot.Success {
		t.Errorf("expected a finished successful session, got %+v", snapshot)
	}
	if got := snapshot.Playlist.CompletedCount(); got != 1 {
		t.Errorf("completed = %d, expected 1", got)
	}
	if got := snapshot.Playlist.FailedCount(); got != 1 {
		t.Errorf("failed = %d, expected 1", got)
	}
	if !snapshot.Playlist.HasErrors() {
		t.Error("expected HasErrors after a per-track failure")
	}
}

func TestSession_KilledProcessLeavesTracksUntouched(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil,
		playlistEvent("PL1", "t1", "t2"),
		Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "t1", Progress: 60}},
		Event{Kind: KindComplete, Success: false},
	)

	snapshot := session.Snapshot()
	if !snapshot.Finished || snapshot.Success {
		t.Errorf("expected a finished unsuccessful session, got %+v", snapshot)
	}
	t1 := snapshot.Playlist.FindTrack("t1")
	if t1.Status != model.StatusDownloading || t1.Progress != 60 {
		t.Errorf("t1 = %s/%v, expected its last observed state", t1.Status, t1.Progress)
	}
	t2 := snapshot.Playlist.FindTrack("t2")
	if t2.Status != model.StatusPending {
		t.Errorf("t2 status = %s, expected %s", t2.Status, model.StatusPending)
	}
}

func TestSession_PersistFailureDoesNotRollBackMemory(t *testing.T) {
	catalog := &fakeCatalog{progressErr: errors.New("disk full")}
	session := runSession(catalog, nil,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "t1", Progress: 25}},
	)

	track := session.Snapshot().Playlist.FindTrack("t1")
	if track.Progress != 25 || track.Status != model.StatusDownloading {
		t.Errorf("in-memory state rolled back: %s/%v", track.Status, track.Progress)
	}
}

func TestSession_StderrAndErrorEventsRecorded(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil,
		Event{Kind: KindDownloadError, Message: "WARNING: throttled"},
		Event{Kind: KindError, Err: &ErrorPayload{Message: "ffmpeg not found"}},
	)

	if got := session.Snapshot().LastError; got != "ffmpeg not found" {
		t.Errorf("last error = %q, expected the most recent message", got)
	}
}

func TestSession_StreamEndWithoutCompleteIsFailure(t *testing.T) {
	catalog := &fakeCatalog{}
	session := runSession(catalog, nil, playlistEvent("PL1", "t1"))

	snapshot := session.Snapshot()
	if !snapshot.Finished {
		t.Error("expected the session marked finished when the stream ends")
	}
	if snapshot.Success {
		t.Error("expected an unsuccessful session without download-complete")
	}
}

func TestSession_ProbeEnrichesCompletedTrack(t *testing.T) {
	catalog := &fakeCatalog{}
	prober := &fakeProber{artist: "Some Band", title: "One"}
	session := runSession(catalog, prober,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t1", Status: TrackOutcomeSuccess, FilePath: "One.mp3"}},
	)

	if len(prober.calls) != 1 {
		t.Fatalf("prober called %d times, expected 1", len(prober.calls))
	}
	if prober.calls[0] != "/music/One.mp3" {
		t.Errorf("probe path = %q, expected it joined to the download directory", prober.calls[0])
	}
	track := session.Snapshot().Playlist.FindTrack("t1")
	if track.Artist != "Some Band" {
		t.Errorf("artist = %q, expected 'Some Band'", track.Artist)
	}
	if len(catalog.metaCalls) != 1 {
		t.Errorf("UpdateTrackMeta called %d times, expected 1", len(catalog.metaCalls))
	}
}

func TestSession_ProbeFailureDoesNotFailTrack(t *testing.T) {
	catalog := &fakeCatalog{}
	prober := &fakeProber{err: errors.New("no tags")}
	session := runSession(catalog, prober,
		playlistEvent("PL1", "t1"),
		Event{Kind: KindTrackStatus, TrackStatus: &TrackStatusPayload{TrackID: "t1", Status: TrackOutcomeSuccess, FilePath: "One.mp3"}},
	)

	track := session.Snapshot().Playlist.FindTrack("t1")
	if track.Status != model.StatusCompleted {
		t.Errorf("status = %s, expected %s despite the probe failure", track.Status, model.StatusCompleted)
	}
	if len(catalog.metaCalls) != 0 {
		t.Errorf("expected no meta persistence after a probe failure, got %d calls", len(catalog.metaCalls))
	}
}

func TestSession_UpdateCallbackSeesEveryEvent(t *testing.T) {
	var kinds []EventKind
	session := NewSession(&fakeCatalog{}, nil, "/music", func(event Event) {
		kinds = append(kinds, event.Kind)
	})

	stream := make(chan Event, 3)
	stream <- playlistEvent("PL1", "t1")
	stream <- Event{Kind: KindProgress, Progress: &ProgressPayload{TrackID: "t1", Progress: 10}}
	stream <- Event{Kind: KindComplete, Success: true}
	close(stream)
	session.Run(stream)

	expected := []EventKind{KindPlaylistInfo, KindProgress, KindComplete}
	if len(kinds) != len(expected) {
		t.Fatalf("callback saw %d events, expected %d", len(kinds), len(expected))
	}
	for i, kind := range expected {
		if kinds[i] != kind {
			t.Errorf("callback event %d = %s, expected %s", i, kinds[i], kind)
		}
	}
}
