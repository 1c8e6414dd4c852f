package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ParagraphIndent != 4 || cfg.Theme != "monokai" || !cfg.Backup {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Default()
	cfg.Width = 60
	cfg.ParagraphIndent = 2
	cfg.Theme = "dark"
	if err := cfg.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Width != 60 || got.ParagraphIndent != 2 || got.GetTheme() != Themes["dark"] {
		t.Fatalf("expected saved settings, got %+v", got)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("{width:"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatalf("expected an error for malformed settings")
	}
}

func TestFieldSize(t *testing.T) {
	cfg := Default()
	if w, h := cfg.FieldSize(80, 24); w != 80 || h != 23 {
		t.Fatalf("expected 80x23, got %dx%d", w, h)
	}
	cfg.Width, cfg.Height = 50, 100
	if w, h := cfg.FieldSize(80, 24); w != 50 || h != 23 {
		t.Fatalf("expected 50x23, got %dx%d", w, h)
	}
	if w, h := cfg.FieldSize(0, 0); w != 1 || h != 1 {
		t.Fatalf("expected 1x1 floor, got %dx%d", w, h)
	}
}

func TestEditorConfigShapesField(t *testing.T) {
	dir := t.TempDir()
	ec := "root = true\n\n[*]\nindent_size = 8\nend_of_line = CRLF\n\n[*.{txt,note}]\nmax_line_length = 72\ninsert_final_newline = false\n"
	if err := os.WriteFile(filepath.Join(dir, ".editorconfig"), []byte(ec), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	sub := filepath.Join(dir, "notes")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	settings := FindEditorConfig(filepath.Join(sub, "smith2020.note"))
	if settings == nil {
		t.Fatalf("expected settings to be found")
	}
	if settings.IndentSize != 8 || settings.MaxLineLength != 72 {
		t.Fatalf("unexpected settings %+v", settings)
	}

	cfg := Default()
	cfg.ApplyEditorConfig(settings)
	if cfg.Width != 72 || cfg.ParagraphIndent != 8 || cfg.InsertFinalNewline || cfg.EndOfLine != "crlf" {
		t.Fatalf("expected editorconfig applied, got %+v", cfg)
	}

	if s := FindEditorConfig(filepath.Join(sub, "smith2020.bib")); s == nil || s.MaxLineLength != 0 {
		t.Fatalf("expected only the catch-all section to match, got %+v", s)
	}
}

func TestExpandBraces(t *testing.T) {
	got := expandBraces("*.{txt,{md,note}}")
	want := []string{"*.txt", "*.md", "*.note"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
