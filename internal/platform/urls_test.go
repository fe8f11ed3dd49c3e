package platform

import (
	"testing"
)

func TestIsValidPlaylistURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"standard playlist", "https://www.youtube.com/playlist?list=PLabc123", true},
		{"watch url with list", "https://www.youtube.com/watch?v=xyz&list=PLabc123", true},
		{"short host", "https://youtu.be/xyz?list=PLabc123", true},
		{"http scheme", "http://youtube.com/playlist?list=PLabc123", true},
		{"no scheme", "youtube.com/playlist?list=PLabc123", false},
		{"wrong host", "https://example.com/playlist?list=PLabc123", false},
		{"no list parameter", "https://www.youtube.com/watch?v=xyz", false},
		{"empty list parameter", "https://www.youtube.com/playlist?list=", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPlaylistURL(tt.url); got != tt.want {
				t.Errorf("IsValidPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"bare playlist url", "https://www.youtube.com/playlist?list=PLabc123", "PLabc123"},
		{"list before other params", "https://www.youtube.com/watch?v=xyz&list=PLabc123&index=4", "PLabc123"},
		{"list last", "https://www.youtube.com/watch?v=xyz&list=PLabc123", "PLabc123"},
		{"no list", "https://www.youtube.com/watch?v=xyz", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.want {
				t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestVideoURL(t *testing.T) {
	if got := VideoURL("abc123"); got != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("VideoURL = %q", got)
	}
}
