package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/linsujie/bibcmd/config"
)

type StatusBar struct {
	Mode       string // "NOTE", or "VIEW" for a read-only note
	Filename   string
	Modified   bool
	Line       int
	Col        int
	Paragraphs int
	Words      int
	Message    string // temporary status message
	IsError    bool
	Theme      *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{Mode: "NOTE"}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["dark"]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)
	end := x + width

	fill(screen, x, y, end, style)
	col := drawText(screen, x, y, end, " "+s.Mode+" ", modeStyle)
	col++

	// A temporary message replaces the file info
	if s.Message != "" {
		msgStyle := style
		if s.IsError {
			msgStyle = style.Foreground(tcell.ColorRed).Bold(true)
		}
		drawText(screen, col, y, end, s.Message, msgStyle)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "untitled"
	}
	if s.Modified {
		fname += " [+]"
	}
	col = drawText(screen, col, y, end, fname, style)

	right := fmt.Sprintf("¶ %d  W %d │ Ln %d, Col %d ", s.Paragraphs, s.Words, s.Line+1, s.Col+1)
	rightStart := end - runewidth.StringWidth(right)
	if rightStart > col+2 {
		drawText(screen, rightStart, y, end, right, style)
	}
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool     { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                      { return false }
func (s *StatusBar) SetFocused(f bool)                    {}
