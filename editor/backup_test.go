package editor

import (
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestBackupOnlyWhenDirty(t *testing.T) {
	e, path := newTestEditor(t, "draft")

	e.saveBackup()
	if _, err := os.Stat(backupPathForFile(path)); !os.IsNotExist(err) {
		t.Fatalf("expected no backup for a clean note, stat err=%v", err)
	}

	typeText(e, "x")
	e.saveBackup()
	data, err := os.ReadFile(backupPathForFile(path))
	if err != nil {
		t.Fatalf("expected backup file, read failed: %v", err)
	}
	if string(data) != "xdraft" {
		t.Fatalf("expected field text in backup, got %q", data)
	}
	if _, err := os.Stat(backupMetaPath(backupPathForFile(path))); err != nil {
		t.Fatalf("expected backup metadata, stat err=%v", err)
	}
}

func TestRecoverBackup(t *testing.T) {
	e, path := newTestEditor(t, "draft")
	typeText(e, "new ")
	e.saveBackup()

	e2 := New(e.cfg)
	e2.screen = e.screen
	if err := e2.open(path); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !e2.recoverBackup() {
		t.Fatalf("expected backup to be recovered")
	}
	if got := e2.buf.String(); got != "new draft" {
		t.Fatalf("expected recovered text, got %q", got)
	}
	if !e2.doc.Dirty {
		t.Fatalf("expected recovered text to be unsaved")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "draft" {
		t.Fatalf("expected note on disk untouched, got %q", data)
	}

	e2.handleKey(ctrl(tcell.KeyCtrlS))
	if _, err := os.Stat(backupPathForFile(path)); !os.IsNotExist(err) {
		t.Fatalf("expected save to remove the backup, stat err=%v", err)
	}
}

func TestRecoverBackupSameTextIsDropped(t *testing.T) {
	e, path := newTestEditor(t, "draft")
	typeText(e, "x")
	e.saveBackup()
	e.handleKey(key(tcell.KeyBackspace2))
	if err := os.WriteFile(path, []byte("xdraft"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	e2 := New(e.cfg)
	e2.screen = e.screen
	if err := e2.open(path); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if e2.recoverBackup() {
		t.Fatalf("expected a backup equal to the note to be ignored")
	}
	if _, err := os.Stat(backupPathForFile(path)); !os.IsNotExist(err) {
		t.Fatalf("expected redundant backup to be removed, stat err=%v", err)
	}
}
