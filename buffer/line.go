package buffer

import "strings"

// Redraw tells the caller how much of the screen a change touched.
type Redraw int

const (
	RedrawNone Redraw = iota
	RedrawCursor
	RedrawWhole
)

func (r Redraw) String() string {
	switch r {
	case RedrawCursor:
		return "cursor"
	case RedrawWhole:
		return "whole"
	}
	return "none"
}

// LineID addresses a Line inside its Chain.
type LineID int

// NoLine is the ID of a missing neighbour.
const NoLine LineID = -1

// Line is one display row of a field. Lines belong to a Chain and are
// linked to their neighbours by ID.
type Line struct {
	chain       *Chain
	id          LineID
	prev, next  LineID
	content     *LineContent
	dirty       Redraw
	needsReflow bool
}

func (l *Line) ID() LineID             { return l.id }
func (l *Line) Content() *LineContent  { return l.content }
func (l *Line) Dirty() Redraw          { return l.dirty }
func (l *Line) ClearDirty()            { l.dirty = RedrawNone }
func (l *Line) NeedsReflow() bool      { return l.needsReflow }
func (l *Line) Next() *Line            { return l.chain.Line(l.next) }
func (l *Line) Previous() *Line        { return l.chain.Line(l.prev) }
func (l *Line) IsParagraphStart() bool { return l.prev == NoLine || l.chain.lines[l.prev].content.EOP }

// MarkDirty raises the line's redraw level to at least r.
func (l *Line) MarkDirty(r Redraw) {
	if r > l.dirty {
		l.dirty = r
	}
}

// Width is the number of columns available to the words of this line.
func (l *Line) Width() int {
	return l.chain.Width(l.id)
}

// Row counts the lines before this one.
func (l *Line) Row() int {
	row := 0
	for id := l.prev; id != NoLine; id = l.chain.lines[id].prev {
		row++
	}
	return row
}

// X is the screen column of the cursor on this line.
func (l *Line) X() int {
	x := l.content.index.Col
	if l.IsParagraphStart() {
		x += l.chain.indent
	}
	return x
}

// Text returns the rendered row, indent included, starting at column from.
func (l *Line) Text(from int) string {
	s := l.content.String()
	if l.IsParagraphStart() {
		s = strings.Repeat(" ", l.chain.indent) + s
	}
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if from >= len(r) {
		return ""
	}
	return string(r[from:])
}
