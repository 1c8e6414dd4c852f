package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/linsujie/bibcmd/config"
)

const maxVisibleCompletions = 8

// Autocomplete is a popup listing words that extend the prefix under the
// cursor.
type Autocomplete struct {
	Prefix   string
	Items    []string
	Selected int
	Visible  bool
	X, Y     int // screen position of the cursor
	OnSelect func(word string)
	OnClose  func()
	Theme    *config.ColorScheme

	scrollOff int
}

func NewAutocomplete(prefix string, items []string, x, y int, theme *config.ColorScheme) *Autocomplete {
	return &Autocomplete{
		Prefix:  prefix,
		Items:   items,
		Visible: len(items) > 0,
		X:       x,
		Y:       y,
		Theme:   theme,
	}
}

// Bounds returns the popup rectangle for a screen of the given size. It
// opens below the cursor, or above it when there is no room.
func (a *Autocomplete) Bounds(width, height int) (x, y, w, h int) {
	w = 12
	for _, item := range a.Items {
		w = max(w, runewidth.StringWidth(item)+2)
	}
	w = min(w, 40, width)
	h = min(len(a.Items), maxVisibleCompletions)

	x, y = a.X, a.Y+1
	if y+h > height {
		y = a.Y - h
	}
	if x+w > width {
		x = width - w
	}
	return max(x, 0), max(y, 0), w, h
}

func (a *Autocomplete) Render(screen tcell.Screen, x, y, width, height int) {
	if !a.Visible || len(a.Items) == 0 {
		return
	}
	theme := a.Theme
	if theme == nil {
		theme = config.Themes["dark"]
	}
	bgStyle := tcell.StyleDefault.Background(theme.PopupBg).Foreground(theme.PopupFg)
	selStyle := tcell.StyleDefault.Background(theme.PopupSelectBg).Foreground(theme.PopupFg)

	px, py, w, h := a.Bounds(width, height)
	if a.Selected >= a.scrollOff+h {
		a.scrollOff = a.Selected - h + 1
	}
	if a.Selected < a.scrollOff {
		a.scrollOff = a.Selected
	}

	for i := 0; i < h; i++ {
		idx := a.scrollOff + i
		if idx >= len(a.Items) {
			break
		}
		style := bgStyle
		if idx == a.Selected {
			style = selStyle
		}
		row := y + py + i
		fill(screen, x+px, row, x+px+w, style)
		col := drawText(screen, x+px+1, row, x+px+w, a.Prefix, style.Bold(true))
		drawText(screen, col, row, x+px+w, a.Items[idx][len(a.Prefix):], style)
	}
}

func (a *Autocomplete) close() {
	a.Visible = false
	if a.OnClose != nil {
		a.OnClose()
	}
}

// HandleKey moves the selection, accepts it with Enter or Tab, and closes
// on Escape. Any other key closes the popup and is left for the editor.
func (a *Autocomplete) HandleKey(ev *tcell.EventKey) bool {
	if !a.Visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyCtrlP:
		if a.Selected > 0 {
			a.Selected--
		}
		return true
	case tcell.KeyDown, tcell.KeyCtrlN:
		if a.Selected < len(a.Items)-1 {
			a.Selected++
		}
		return true
	case tcell.KeyPgUp:
		a.Selected = max(a.Selected-maxVisibleCompletions, 0)
		return true
	case tcell.KeyPgDn:
		a.Selected = min(a.Selected+maxVisibleCompletions, len(a.Items)-1)
		return true
	case tcell.KeyEnter, tcell.KeyTab:
		a.Visible = false
		if a.Selected >= 0 && a.Selected < len(a.Items) && a.OnSelect != nil {
			a.OnSelect(a.Items[a.Selected])
		}
		return true
	case tcell.KeyEscape:
		a.close()
		return true
	}
	a.close()
	return false
}

func (a *Autocomplete) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (a *Autocomplete) IsFocused() bool                      { return a.Visible }
func (a *Autocomplete) SetFocused(f bool)                    { a.Visible = f }
