package library

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

type fakeCatalog struct {
	missing []string
}

func (f *fakeCatalog) MarkTrackFileMissing(filePath string) error {
	f.missing = append(f.missing, filePath)
	return nil
}

func TestWatcher_RemoveMarksFileMissing(t *testing.T) {
	root := t.TempDir()
	catalog := &fakeCatalog{}

	w, err := New(root, catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.fsw.Close()

	w.handle(fsnotify.Event{
		Name: filepath.Join(root, "Mix", "One.mp3"),
		Op:   fsnotify.Remove,
	})

	if len(catalog.missing) != 1 {
		t.Fatalf("got %d marks, expected 1", len(catalog.missing))
	}
	if got := catalog.missing[0]; got != filepath.Join("Mix", "One.mp3") {
		t.Errorf("marked path = %q, expected it relative to the root", got)
	}
}

func TestWatcher_RenameMarksFileMissing(t *testing.T) {
	root := t.TempDir()
	catalog := &fakeCatalog{}

	w, err := New(root, catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.fsw.Close()

	w.handle(fsnotify.Event{
		Name: filepath.Join(root, "One.mp3"),
		Op:   fsnotify.Rename,
	})

	if len(catalog.missing) != 1 || catalog.missing[0] != "One.mp3" {
		t.Errorf("unexpected marks: %v", catalog.missing)
	}
}

func TestWatcher_WriteEventIgnored(t *testing.T) {
	root := t.TempDir()
	catalog := &fakeCatalog{}

	w, err := New(root, catalog)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.fsw.Close()

	w.handle(fsnotify.Event{
		Name: filepath.Join(root, "One.mp3"),
		Op:   fsnotify.Write,
	})

	if len(catalog.missing) != 0 {
		t.Errorf("expected no marks for a write event, got %v", catalog.missing)
	}
}
