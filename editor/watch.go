package editor

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

const watchDebounce = 100 * time.Millisecond

// setupFileWatcher watches the note's directory, since editors and sync
// tools often replace a file rather than write it in place.
func (e *Editor) setupFileWatcher(screen tcell.Screen) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		// Graceful degradation - continue without watching
		log.Printf("Editor: file watching disabled: %v", err)
		return
	}
	if err := watcher.Add(filepath.Dir(e.doc.Path)); err != nil {
		log.Printf("Editor: file watching disabled: %v", err)
		watcher.Close()
		return
	}
	e.fileWatcher = watcher
	note := e.doc.Path

	go func() {
		// Debounce: collect events and send after quiet period
		debounceTimer := time.NewTimer(watchDebounce)
		debounceTimer.Stop()
		var pending fsnotify.Op

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != note {
					continue
				}
				pending |= event.Op
				debounceTimer.Reset(watchDebounce)

			case <-debounceTimer.C:
				ev := &FileWatchEvent{Path: note, Op: pending}
				ev.SetEventNow()
				screen.PostEvent(ev)
				pending = 0

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Editor: file watcher: %v", err)
			}
		}
	}()
}

func (e *Editor) handleFileWatchEvent(ev *FileWatchEvent) {
	if e.doc == nil || ev.Path != e.doc.Path {
		return
	}
	name := filepath.Base(ev.Path)

	info, err := os.Stat(ev.Path)
	if err != nil {
		if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			e.setStatusMessage("Warning: " + name + " was deleted externally")
		}
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}

	// Allow 1 second grace period after our last save
	modTime := info.ModTime()
	if !e.doc.LastSaveTime.IsZero() && modTime.Sub(e.doc.LastSaveTime) <= time.Second {
		return
	}

	if e.doc.Dirty {
		e.doc.ExternallyModified = true
		e.setStatusMessage("⚠ " + name + " was modified externally! (unsaved changes)")
		return
	}
	e.reload()
}

// reload reads the note from disk again, keeping the cursor where it was
// as far as the new text allows.
func (e *Editor) reload() {
	doc, text, err := LoadDocument(e.doc.Path)
	if err != nil {
		e.setTemporaryError("Error reloading: " + err.Error())
		return
	}
	row, col := e.buf.Cursor()
	e.doc = doc
	e.loadText(text)
	e.seek(row, col)
	e.statusBar.Modified = false
	e.setTemporaryMessage("↻ " + filepath.Base(doc.Path) + " (reloaded)")
}
