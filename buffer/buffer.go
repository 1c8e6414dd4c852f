package buffer

import (
	"log"
	"slices"
	"strings"
)

// ParagraphIndent is the number of columns the first line of every
// paragraph is indented by.
const ParagraphIndent = 4

// Buffer is an editable field of soft-wrapped text shown in a fixed
// viewport of width columns by height rows. It tracks the line holding the
// cursor and how far the viewport has scrolled.
type Buffer struct {
	chain     *Chain
	current   LineID
	headshift int
	width     int
	height    int
}

func New(text string, width, height int) *Buffer {
	return NewIndented(text, width, height, ParagraphIndent)
}

// NewIndented builds a buffer over text, one paragraph per input line,
// with the cursor at the start of the field.
func NewIndented(text string, width, height, indent int) *Buffer {
	b := &Buffer{
		chain:  NewChain(width, indent),
		width:  max(width, 1),
		height: max(height, 1),
	}
	c := b.chain

	text = strings.ReplaceAll(text, "\r\n", "\n")
	tail := NoLine
	for _, p := range strings.Split(text, "\n") {
		id := c.Seed(p)
		var err error
		if tail == NoLine {
			err = c.Reflow(id)
		} else {
			err = c.Join(tail, id)
		}
		if err != nil {
			log.Printf("Buffer: reflow while loading: %v", err)
		}
		tail = c.Last(id)
	}

	if longest := longestWord(text); RuneLen(longest) > c.width-c.indent {
		log.Printf("Buffer: word %q is %d columns wide but a line only has %d; it will overflow",
			longest, RuneLen(longest), c.width-c.indent)
	}

	b.current = c.First()
	b.cur().content.Focused = true
	return b
}

func longestWord(text string) string {
	var longest string
	for _, w := range strings.Fields(text) {
		if RuneLen(w) > RuneLen(longest) {
			longest = w
		}
	}
	return longest
}

func (b *Buffer) Width() int     { return b.width }
func (b *Buffer) Height() int    { return b.height }
func (b *Buffer) Indent() int    { return b.chain.indent }
func (b *Buffer) Chain() *Chain  { return b.chain }
func (b *Buffer) Current() *Line { return b.cur() }

// ScrollOffset is the number of lines above the first visible row.
func (b *Buffer) ScrollOffset() int { return b.headshift }

func (b *Buffer) cur() *Line {
	return b.chain.lines[b.current]
}

// String returns the text of the field: each paragraph's words joined by
// spaces, paragraphs joined by newlines. Empty words are dropped.
func (b *Buffer) String() string {
	var paragraphs []string
	var words []string
	b.chain.Each(func(l *Line) bool {
		for _, w := range l.content.words {
			if w != "" {
				words = append(words, w)
			}
		}
		if l.content.EOP || l.next == NoLine {
			paragraphs = append(paragraphs, strings.Join(words, " "))
			words = words[:0]
		}
		return true
	})
	return strings.Join(paragraphs, "\n")
}

// Dictionary returns every distinct non-empty word of the field, sorted.
func (b *Buffer) Dictionary() []string {
	seen := make(map[string]bool)
	var dict []string
	b.chain.Each(func(l *Line) bool {
		for _, w := range l.content.words {
			if w != "" && !seen[w] {
				seen[w] = true
				dict = append(dict, w)
			}
		}
		return true
	})
	slices.Sort(dict)
	return dict
}

// LineAt returns the line shown on screen row row, or nil when the row is
// outside the viewport or below the last line.
func (b *Buffer) LineAt(row int) *Line {
	if row < 0 || row >= b.height {
		return nil
	}
	return b.lineAtDepth(row + b.headshift)
}

func (b *Buffer) lineAtDepth(n int) *Line {
	id := b.chain.First()
	for ; n > 0 && id != NoLine; n-- {
		id = b.chain.lines[id].next
	}
	return b.chain.Line(id)
}

// Position is the screen cell of the cursor.
func (b *Buffer) Position() Position {
	l := b.cur()
	return Position{
		X: min(max(l.X(), 0), b.width-1),
		Y: min(max(l.Row()-b.headshift, 0), b.height-1),
	}
}

// Cursor returns the cursor as a document row (lines from the top of the
// field, ignoring scroll) and a column inside that line's text.
func (b *Buffer) Cursor() (row, col int) {
	l := b.cur()
	return l.Row(), l.content.index.Col
}

func (b *Buffer) focus(id LineID) *Line {
	b.cur().content.Focused = false
	b.current = id
	l := b.cur()
	l.content.Focused = true
	return l
}

// syncCurrent points current at the focused line. Reflow can carry focus
// across lines or delete the line that held it.
func (b *Buffer) syncCurrent() {
	if l := b.chain.Line(b.current); l != nil {
		if l.content.Focused {
			return
		}
		for _, id := range []LineID{l.prev, l.next} {
			if n := b.chain.Line(id); n != nil && n.content.Focused {
				b.current = id
				return
			}
		}
	}
	found := false
	b.chain.Each(func(l *Line) bool {
		if l.content.Focused {
			b.current, found = l.id, true
		}
		return !found
	})
	if !found {
		log.Printf("Buffer: no focused line after edit, resetting cursor to the top")
		b.current = b.chain.First()
		b.cur().content.Focused = true
		b.cur().content.BOL()
	}
}

// update reflows around the cursor line after an edit.
func (b *Buffer) update() error {
	l := b.cur()
	l.needsReflow = true
	start := l.id
	if l.prev != NoLine {
		start = l.prev
		b.chain.lines[l.prev].needsReflow = true
	}
	err := b.chain.Reflow(start)
	b.syncCurrent()
	l = b.cur()
	l.MarkDirty(RedrawCursor)
	if l.content.IsBOL() && l.prev != NoLine {
		b.chain.lines[l.prev].MarkDirty(RedrawWhole)
	}
	return err
}

// scroll moves the viewport so the cursor line is visible. A scroll
// repaints every visible row.
func (b *Buffer) scroll(r Redraw) Redraw {
	y := b.cur().Row() - b.headshift
	shift := 0
	switch {
	case y < 0:
		shift = y
	case y >= b.height:
		shift = y - b.height + 1
	}
	if shift == 0 {
		return r
	}
	b.headshift += shift
	for row := 0; row < b.height; row++ {
		if l := b.LineAt(row); l != nil {
			l.dirty = RedrawWhole
		}
	}
	return RedrawWhole
}

func (b *Buffer) insertChar(ch rune) (Redraw, error) {
	if ch == '\n' || ch == '\r' {
		return b.breakParagraph()
	}
	b.cur().content.InsertChar(ch)
	return RedrawWhole, b.update()
}

// breakParagraph splits the paragraph at the cursor. The cursor line keeps
// the text before the cursor and ends its paragraph; a new line after it
// starts the next paragraph with the rest.
func (b *Buffer) breakParagraph() (Redraw, error) {
	l := b.cur()
	c := l.content
	col := c.index.Col
	text := []rune(c.String())
	head, tail := string(text[:col]), string(text[col:])
	eop := c.EOP

	id, err := b.chain.InsertAfter(l.id)
	if err != nil {
		return RedrawNone, err
	}
	c.Reset(head, col)
	c.EOP = true
	n := b.focus(id)
	n.content.Reset(tail, 0)
	n.content.EOP = eop
	n.needsReflow = true
	l.MarkDirty(RedrawCursor)

	// What is left of the line may now fit on the line above
	if p := b.chain.Line(l.prev); p != nil {
		p.needsReflow = true
		l.needsReflow = true
		if err := b.chain.Reflow(p.id); err != nil {
			return RedrawWhole, err
		}
	}
	return RedrawWhole, b.update()
}

func (b *Buffer) deleteChar() (Redraw, error) {
	l := b.cur()
	c := l.content
	if c.IsEOL() {
		next := b.chain.Line(l.next)
		switch {
		case next == nil:
			return RedrawNone, nil
		case c.EOP:
			// An empty paragraph on either side adds no word to the join.
			if c.isVoid() && b.chain.ParagraphHead(l.id) == l.id {
				c.clear()
			}
			if next.content.isVoid() && next.content.EOP {
				next.content.clear()
			}
			c.EOP = false
			next.needsReflow = true
			b.chain.markFrom(next.id)
			return RedrawWhole, b.update()
		case c.IsEmpty():
			if err := b.chain.Delete(l.id); err != nil {
				return RedrawNone, err
			}
			b.current = next.id
			next.content.Focused = true
			next.content.BOL()
			return RedrawWhole, b.update()
		}
		if err := b.chain.pullFromNext(l); err != nil {
			return RedrawNone, err
		}
	}
	c.DeleteChar()
	return RedrawWhole, b.update()
}

func (b *Buffer) deletePrevChar() (Redraw, error) {
	l := b.cur()
	if l.content.IsBOL() && l.prev == NoLine {
		return RedrawNone, nil
	}
	b.movePrevChar()
	return b.deleteChar()
}

func (b *Buffer) deleteWord() (Redraw, error) {
	c := b.cur().content
	if c.IsEndOfWord() {
		return b.deleteChar()
	}
	c.DeleteWord()
	return RedrawWhole, b.update()
}

// deleteLine removes the cursor line. The only line of a paragraph is
// emptied instead so the paragraph survives.
func (b *Buffer) deleteLine() (Redraw, error) {
	l := b.cur()
	c := l.content
	if b.chain.ParagraphHead(l.id) == l.id && b.chain.ParagraphTail(l.id) == l.id {
		c.Reset("", 0)
		l.MarkDirty(RedrawWhole)
		return RedrawWhole, nil
	}

	col := c.index.Col
	target := l.next
	if c.EOP || target == NoLine {
		target = l.prev
		b.chain.lines[target].content.EOP = true
	}
	c.Focused = false
	if err := b.chain.Delete(l.id); err != nil {
		c.Focused = true
		return RedrawNone, err
	}
	b.current = target
	t := b.cur()
	t.content.Focused = true
	t.content.SetCursor(ByColumn(col))
	return RedrawWhole, b.update()
}

// deleteToEndOfLine drops the text from the cursor to the end of its
// paragraph.
func (b *Buffer) deleteToEndOfLine() (Redraw, error) {
	l := b.cur()
	if tail := b.chain.ParagraphTail(l.id); tail != l.id {
		for {
			n := l.next
			if err := b.chain.Delete(n); err != nil {
				return RedrawWhole, err
			}
			if n == tail {
				break
			}
		}
	}
	l.content.Truncate()
	l.content.EOP = true
	l.MarkDirty(RedrawWhole)
	return RedrawWhole, b.update()
}

func (b *Buffer) movePrevChar() Redraw {
	l := b.cur()
	if l.content.PrevChar() {
		return RedrawCursor
	}
	if l.prev == NoLine {
		return RedrawNone
	}
	b.focus(l.prev).content.EOL()
	return RedrawCursor
}

func (b *Buffer) moveNextChar() Redraw {
	l := b.cur()
	if l.content.NextChar() {
		return RedrawCursor
	}
	if l.next == NoLine {
		return RedrawNone
	}
	b.focus(l.next).content.BOL()
	return RedrawCursor
}

func (b *Buffer) movePrevWord() Redraw {
	l := b.cur()
	if l.content.PrevWord() {
		return RedrawCursor
	}
	if l.prev == NoLine {
		return RedrawNone
	}
	p := b.focus(l.prev).content
	p.SetCursor(ByWord{Word: len(p.words) - 1})
	return RedrawCursor
}

func (b *Buffer) moveNextWord() Redraw {
	l := b.cur()
	if l.content.NextWord() {
		return RedrawCursor
	}
	if l.next == NoLine {
		return RedrawNone
	}
	b.focus(l.next).content.BOL()
	return RedrawCursor
}

func (b *Buffer) moveBeginLine() Redraw {
	b.cur().content.BOL()
	return RedrawCursor
}

func (b *Buffer) moveEndLine() Redraw {
	b.cur().content.EOL()
	return RedrawCursor
}

func (b *Buffer) movePrevLine() Redraw {
	return b.moveLine(b.cur().prev)
}

func (b *Buffer) moveNextLine() Redraw {
	return b.moveLine(b.cur().next)
}

func (b *Buffer) moveLine(id LineID) Redraw {
	if id == NoLine {
		return RedrawNone
	}
	col := b.cur().content.index.Col
	b.focus(id).content.SetCursor(ByColumn(col))
	return RedrawCursor
}

func (b *Buffer) moveBeginField() Redraw {
	b.focus(b.chain.ParagraphHead(b.current)).content.BOL()
	return RedrawCursor
}

func (b *Buffer) moveEndField() Redraw {
	b.focus(b.chain.ParagraphTail(b.current)).content.EOL()
	return RedrawCursor
}

// moveTo puts the cursor on screen row row at column col, where col counts
// from the start of the line's words, not the indent.
func (b *Buffer) moveTo(row, col int) Redraw {
	if row < 0 {
		return RedrawNone
	}
	l := b.lineAtDepth(row + b.headshift)
	if l == nil {
		return RedrawNone
	}
	b.focus(l.id).content.SetCursor(ByColumn(col))
	return RedrawCursor
}
