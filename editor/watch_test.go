package editor

import (
	"os"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestExternalChangeReloadsCleanNote(t *testing.T) {
	e, path := newTestEditor(t, "before")

	if err := os.WriteFile(path, []byte("after edit\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	later := time.Now().Add(5 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	e.handleFileWatchEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})
	if got := e.buf.String(); got != "after edit" {
		t.Fatalf("expected reloaded text, got %q", got)
	}
	if e.doc.Dirty {
		t.Fatalf("expected reloaded note to be clean")
	}
}

func TestExternalChangeKeepsDirtyNote(t *testing.T) {
	e, path := newTestEditor(t, "before")
	typeText(e, "x")

	if err := os.WriteFile(path, []byte("after"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	later := time.Now().Add(5 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	e.handleFileWatchEvent(&FileWatchEvent{Path: path, Op: fsnotify.Write})
	if got := e.buf.String(); got != "xbefore" {
		t.Fatalf("expected unsaved text kept, got %q", got)
	}
	if !e.doc.ExternallyModified {
		t.Fatalf("expected note flagged as externally modified")
	}
}

func TestExternalDelete(t *testing.T) {
	e, path := newTestEditor(t, "before")
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	e.handleFileWatchEvent(&FileWatchEvent{Path: path, Op: fsnotify.Remove})
	if e.statusBar.Message != "Warning: note.txt was deleted externally" {
		t.Fatalf("unexpected status message %q", e.statusBar.Message)
	}
	if got := e.buf.String(); got != "before" {
		t.Fatalf("expected field kept after delete, got %q", got)
	}
}
