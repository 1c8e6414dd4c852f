package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(ch)
	}
	return sb.String()
}

func TestAutocompleteSelectsWord(t *testing.T) {
	var picked string
	a := NewAutocomplete("bib", []string{"bibliography", "bibtex"}, 2, 1, nil)
	a.OnSelect = func(word string) { picked = word }

	if !a.HandleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)) {
		t.Fatalf("expected Down to be consumed")
	}
	if !a.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Fatalf("expected Enter to be consumed")
	}
	if picked != "bibtex" || a.Visible {
		t.Fatalf("expected bibtex picked and popup closed, got %q visible=%v", picked, a.Visible)
	}
}

func TestAutocompleteOtherKeyCloses(t *testing.T) {
	closed := false
	a := NewAutocomplete("bib", []string{"bibtex"}, 0, 0, nil)
	a.OnClose = func() { closed = true }
	if a.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatalf("expected typing to fall through to the editor")
	}
	if !closed || a.Visible {
		t.Fatalf("expected popup closed")
	}
}

func TestAutocompleteRendersBelowOrAbove(t *testing.T) {
	screen := newScreen(t, 30, 6)
	a := NewAutocomplete("bib", []string{"bibliography", "bibtex"}, 3, 1, nil)
	a.Render(screen, 0, 0, 30, 6)
	if got := rowText(screen, 2, 30); !strings.Contains(got, "bibliography") {
		t.Fatalf("expected first item below the cursor, got %q", got)
	}

	if _, y, _, _ := a.Bounds(30, 6); y != 2 {
		t.Fatalf("expected popup at row 2, got %d", y)
	}
	a.Y = 5
	if _, y, _, h := a.Bounds(30, 6); y != 3 || h != 2 {
		t.Fatalf("expected popup above the cursor at row 3, got %d (h=%d)", y, h)
	}
}

func TestStatusBarShowsPositionAndCounts(t *testing.T) {
	screen := newScreen(t, 60, 1)
	s := NewStatusBar()
	s.Filename = "smith2020.note"
	s.Modified = true
	s.Line, s.Col = 2, 4
	s.Paragraphs, s.Words = 3, 42
	s.Render(screen, 0, 0, 60, 1)

	got := rowText(screen, 0, 60)
	for _, want := range []string{"NOTE", "smith2020.note [+]", "¶ 3  W 42", "Ln 3, Col 5"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in status bar, got %q", want, got)
		}
	}

	s.Message = "Saved"
	s.Render(screen, 0, 0, 60, 1)
	if got := rowText(screen, 0, 60); !strings.Contains(got, "Saved") || strings.Contains(got, "Ln ") {
		t.Fatalf("expected message to replace file info, got %q", got)
	}
}
