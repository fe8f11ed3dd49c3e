package model

import (
	"fmt"
	"time"
)

// PlaylistInfo represents one playlist download session's view of a playlist.
// It is created once from the downloader's playlist_info message and owned by
// the session reconciler; the catalog keeps the durable copy.
type PlaylistInfo struct {
	PlaylistID string       `json:"playlist_id"`
	Title      string       `json:"title"`
	Uploader   string       `json:"uploader"`
	Tracks     []*TrackInfo `json:"tracks"`
	CreatedAt  time.Time    `json:"created_at,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at,omitempty"`
}

// SeedPending resets every track to the initial pending state. Called once
// when the playlist_info event creates the session view.
func (p *PlaylistInfo) SeedPending() {
	now := time.Now()
	for _, t := range p.Tracks {
		t.Status = StatusPending
		t.Progress = 0
		t.Error = ""
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
	}
	p.UpdatedAt = now
}

// FindTrack returns the track with the given id, or nil if absent
func (p *PlaylistInfo) FindTrack(trackID string) *TrackInfo {
	for _, t := range p.Tracks {
		if t.ID == trackID {
			return t
		}
	}
	return nil
}

// CompletedCount returns the number of tracks downloaded successfully
func (p *PlaylistInfo) CompletedCount() int {
	count := 0
	for _, t := range p.Tracks {
		if t.Status == StatusCompleted {
			count++
		}
	}
	return count
}

// FailedCount returns the number of tracks that ended in failure
func (p *PlaylistInfo) FailedCount() int {
	count := 0
	for _, t := range p.Tracks {
		if t.Status == StatusFailed {
			count++
		}
	}
	return count
}

// HasErrors returns true if any track failed
func (p *PlaylistInfo) HasErrors() bool {
	return p.FailedCount() > 0
}

// OverallProgress returns aggregate session progress as a 0-100 percentage.
// Terminal tracks count as 100, active tracks contribute their own progress.
func (p *PlaylistInfo) OverallProgress() float64 {
	if len(p.Tracks) == 0 {
		return 0
	}
	var sum float64
	for _, t := range p.Tracks {
		if t.Status.IsTerminal() {
			sum += 100
		} else {
			sum += t.Progress
		}
	}
	return sum / float64(len(p.Tracks))
}

// formatSeconds formats a second count as mm:ss or hh:mm:ss
func formatSeconds(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
