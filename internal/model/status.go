package model

// DownloadStatus represents the download state of a single track
type DownloadStatus string

const (
	// StatusPending means the track is queued but not started
	StatusPending DownloadStatus = "pending"

	// StatusDownloading means the download is in progress
	StatusDownloading DownloadStatus = "downloading"

	// StatusCompleted means the track finished successfully
	StatusCompleted DownloadStatus = "completed"

	// StatusFailed means the track failed with an error
	StatusFailed DownloadStatus = "failed"
)

// String returns the string representation of DownloadStatus
func (s DownloadStatus) String() string {
	return string(s)
}

// IsActive returns true if the track is currently being downloaded
func (s DownloadStatus) IsActive() bool {
	return s == StatusDownloading
}

// IsTerminal returns true once a track can no longer change within a session
func (s DownloadStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
