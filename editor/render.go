package editor

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/linsujie/bibcmd/buffer"
)

// render paints the rows the field marked dirty, then the overlays and the
// status bar. A full redraw repaints every cell.
func (e *Editor) render() {
	theme := e.theme
	base := baseStyle(theme)
	margin := base.Foreground(theme.Margin)
	screenW, screenH := e.screen.Size()

	if e.fullRedraw {
		e.screen.SetStyle(base)
		e.screen.Clear()
	}

	fieldW, fieldH := e.buf.Width(), e.buf.Height()
	for row := 0; row < fieldH; row++ {
		l := e.buf.LineAt(row)
		if l == nil {
			fillRow(e.screen, 0, row, fieldW, base)
			continue
		}
		if l.Dirty() == buffer.RedrawNone && !e.fullRedraw {
			continue
		}
		e.renderRow(row, l, base, margin)
		l.ClearDirty()
	}

	if e.fullRedraw {
		// Cells outside a field narrower or shorter than the screen
		for row := 0; row < screenH-1; row++ {
			start := fieldW
			if row >= fieldH {
				start = 0
			}
			fillRow(e.screen, start, row, screenW, margin)
		}
	}

	if e.autocomplete != nil && e.autocomplete.IsFocused() {
		e.autocomplete.Render(e.screen, 0, 0, screenW, screenH-1)
	}

	row, col := e.buf.Cursor()
	stats := e.buf.Stats()
	e.statusBar.Theme = theme
	e.statusBar.Line = row
	e.statusBar.Col = col
	e.statusBar.Paragraphs = stats.Paragraphs
	e.statusBar.Words = stats.Words
	e.statusBar.IsError = e.statusMessageIsError
	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	pos := e.buf.Position()
	e.screen.ShowCursor(e.cursorCell(pos), pos.Y)

	e.fullRedraw = false
	e.screen.Show()
}

// renderRow draws one field row: the paragraph indent in the margin colour,
// then the highlighted words, then blanks to the field edge.
func (e *Editor) renderRow(row int, l *buffer.Line, base, margin tcell.Style) {
	width := e.buf.Width()
	x := 0
	body := l.Text(0)
	if l.IsParagraphStart() {
		indent := min(e.buf.Indent(), width)
		x = fillRow(e.screen, 0, row, indent, margin)
		body = l.Text(e.buf.Indent())
	}
	for _, tok := range e.highlight.Row(body) {
		x = drawCells(e.screen, x, row, width, tok.Text, tok.Style)
		if x >= width {
			break
		}
	}
	fillRow(e.screen, x, row, width, base)
}

// cursorCell converts the cursor's character column into a screen cell,
// counting wide characters twice.
func (e *Editor) cursorCell(pos buffer.Position) int {
	l := e.buf.LineAt(pos.Y)
	if l == nil {
		return pos.X
	}
	runes := []rune(l.Text(0))
	return min(runewidth.StringWidth(string(runes[:min(pos.X, len(runes))])), e.buf.Width()-1)
}

func drawCells(screen tcell.Screen, x, y, maxX int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func fillRow(screen tcell.Screen, x, y, maxX int, style tcell.Style) int {
	for ; x < maxX; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
	return x
}
