package platform

import (
	"fmt"
	"strings"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// IsValidPlaylistURL checks if the URL looks like a YouTube playlist URL
func IsValidPlaylistURL(url string) bool {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return false
	}
	if !strings.Contains(url, "youtube.com/") && !strings.Contains(url, "youtu.be/") {
		return false
	}
	return ExtractPlaylistID(url) != ""
}

// ExtractPlaylistID extracts the playlist ID from various URL formats
func ExtractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// VideoURL builds a canonical watch URL for a video id
func VideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}
