package library

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/ytget/tunevault/internal/util"
)

// Catalog is the slice of the store the watcher writes through
type Catalog interface {
	MarkTrackFileMissing(filePath string) error
}

// Watcher keeps the catalog honest about files that disappear from the
// download directory while the app runs. Track file paths are stored
// relative to the watched root.
type Watcher struct {
	root    string
	catalog Catalog
	fsw     *fsnotify.Watcher
}

// New creates a watcher over the download directory and its immediate
// playlist subdirectories
func New(root string, catalog Catalog) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{root: root, catalog: catalog, fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// Run processes filesystem events until the context is cancelled
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			util.WarnLog("library watcher: %v", err)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		rel, err := filepath.Rel(w.root, event.Name)
		if err != nil {
			return
		}
		if err := w.catalog.MarkTrackFileMissing(rel); err != nil {
			util.WarnLog("library watcher: mark %s missing: %v", rel, err)
		} else {
			util.DebugLog("library watcher: %s removed from disk", rel)
		}
	case event.Has(fsnotify.Create):
		// New playlist directories need to be watched too
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.fsw.Add(event.Name); err != nil {
				util.WarnLog("library watcher: watch %s: %v", event.Name, err)
			}
		}
	}
}
