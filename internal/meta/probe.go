package meta

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
)

// Prober reads tags from downloaded audio files to enrich the catalog with
// artist and title information the downloader does not report.
type Prober struct{}

// NewProber creates a new tag prober
func NewProber() *Prober {
	return &Prober{}
}

// Probe reads the file's tags and returns artist and title. Untagged files
// return empty strings and an error from the tag parser.
func (p *Prober) Probe(path string) (artist, title string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", fmt.Errorf("read tags from %s: %w", path, err)
	}

	return m.Artist(), m.Title(), nil
}
