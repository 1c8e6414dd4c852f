package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadDocumentMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.note")
	doc, text, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("expected missing note to open empty, got %v", err)
	}
	if text != "" || doc.Path != path || doc.Dirty {
		t.Fatalf("unexpected document %+v text %q", doc, text)
	}
}

func TestLoadDocumentLineEndings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "win.note")
	if err := os.WriteFile(path, []byte("one two\r\nthree\r\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	doc, text, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if text != "one two\nthree" {
		t.Fatalf("expected normalized text without final newline, got %q", text)
	}
	if doc.LineEnding != "CRLF" {
		t.Fatalf("expected CRLF, got %s", doc.LineEnding)
	}
	if got := doc.BuildSaveContent(text, true); got != "one two\r\nthree\r\n" {
		t.Fatalf("expected CRLF round trip, got %q", got)
	}
	if got := doc.BuildSaveContent(text, false); got != "one two\r\nthree" {
		t.Fatalf("expected no final newline, got %q", got)
	}
}

func TestLoadDocumentRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	if err := os.WriteFile(path, []byte{'a', 0, 'b'}, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, _, err := LoadDocument(path); !errors.Is(err, ErrBinaryNote) {
		t.Fatalf("expected ErrBinaryNote, got %v", err)
	}
}

func TestLoadDocumentRejectsDirectory(t *testing.T) {
	if _, _, err := LoadDocument(t.TempDir()); err == nil {
		t.Fatalf("expected error for a directory")
	}
}

func TestDocumentDirtyTracking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.note")
	if err := os.WriteFile(path, []byte("saved\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	doc, text, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	doc.RecomputeDirty(text + "!")
	if !doc.Dirty {
		t.Fatalf("expected changed text to be dirty")
	}
	doc.RecomputeDirty(text)
	if doc.Dirty {
		t.Fatalf("expected original text to be clean")
	}

	if err := doc.Save("edited", false); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "edited" {
		t.Fatalf("expected saved text, got %q", data)
	}
	doc.RecomputeDirty("edited")
	if doc.Dirty || doc.LastSaveTime.IsZero() {
		t.Fatalf("expected clean document with a save time")
	}
}

func TestDocumentSaveWithoutPath(t *testing.T) {
	doc := &Document{LineEnding: "LF"}
	if err := doc.Save("text", true); err == nil {
		t.Fatalf("expected error saving a note without a file name")
	}
}

func TestNewNoteUsesConfiguredLineEnding(t *testing.T) {
	e, path := newTestEditor(t, "")
	e.cfg.EndOfLine = "crlf"
	if err := e.open(path); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	typeText(e, "one")
	e.handleKey(key(tcell.KeyEnter))
	typeText(e, "two")
	e.handleKey(ctrl(tcell.KeyCtrlS))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "one\r\ntwo\r\n" {
		t.Fatalf("expected CRLF note, got %q", data)
	}
}
