package buffer

import "fmt"

// Chain owns the lines of one field. Lines live in an arena and refer to
// each other by LineID; slots of deleted lines are reused.
type Chain struct {
	lines  []*Line
	free   []LineID
	width  int
	indent int
}

func NewChain(width, indent int) *Chain {
	return &Chain{width: max(width, 1), indent: max(indent, 0)}
}

// Line returns the line with the given ID, or nil.
func (c *Chain) Line(id LineID) *Line {
	if id < 0 || int(id) >= len(c.lines) {
		return nil
	}
	return c.lines[id]
}

func (c *Chain) line(id LineID) (*Line, error) {
	l := c.Line(id)
	if l == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchLine, id)
	}
	return l, nil
}

// Seed creates an unlinked one-line paragraph holding text. It is marked
// for reflow.
func (c *Chain) Seed(text string) LineID {
	id := c.alloc()
	l := c.lines[id]
	l.content = NewLineContent(text)
	l.content.EOP = true
	l.needsReflow = true
	return id
}

func (c *Chain) alloc() LineID {
	l := &Line{chain: c, prev: NoLine, next: NoLine, dirty: RedrawWhole}
	if n := len(c.free); n > 0 {
		l.id = c.free[n-1]
		c.free = c.free[:n-1]
		c.lines[l.id] = l
		return l.id
	}
	l.id = LineID(len(c.lines))
	c.lines = append(c.lines, l)
	return l.id
}

// InsertAfter links a new empty line after id and returns it.
func (c *Chain) InsertAfter(id LineID) (LineID, error) {
	l, err := c.line(id)
	if err != nil {
		return NoLine, err
	}
	nid := c.alloc()
	n := c.lines[nid]
	n.content = NewLineContent("")
	n.prev, n.next = l.id, l.next
	if l.next != NoLine {
		c.lines[l.next].prev = nid
	}
	l.next = nid
	c.markFrom(nid)
	return nid, nil
}

// Delete unlinks id and recycles its slot. The only line of a chain
// cannot be deleted.
func (c *Chain) Delete(id LineID) error {
	l, err := c.line(id)
	if err != nil {
		return err
	}
	if l.prev == NoLine && l.next == NoLine {
		return ErrLastLine
	}
	if l.prev != NoLine {
		c.lines[l.prev].next = l.next
	}
	if l.next != NoLine {
		c.lines[l.next].prev = l.prev
		c.markFrom(l.next)
	} else {
		c.lines[l.prev].MarkDirty(RedrawWhole)
	}
	c.lines[id] = nil
	c.free = append(c.free, id)
	return nil
}

// Join ends the chain holding tail with a paragraph break and links the
// chain holding head after it, then reflows from the join point.
func (c *Chain) Join(tail, head LineID) error {
	t, err := c.line(c.Last(tail))
	if err != nil {
		return err
	}
	h, err := c.line(c.firstFrom(head))
	if err != nil {
		return err
	}
	t.content.EOP = true
	t.next, h.prev = h.id, t.id
	t.needsReflow = true
	h.needsReflow = true
	c.markFrom(h.id)
	return c.Reflow(t.id)
}

// markFrom marks id and every line after it for a full redraw.
func (c *Chain) markFrom(id LineID) {
	for ; id != NoLine; id = c.lines[id].next {
		c.lines[id].dirty = RedrawWhole
	}
}

// First returns the head of the chain, or NoLine when it is empty.
func (c *Chain) First() LineID {
	for _, l := range c.lines {
		if l != nil {
			return c.firstFrom(l.id)
		}
	}
	return NoLine
}

func (c *Chain) firstFrom(id LineID) LineID {
	for c.Line(id) != nil && c.lines[id].prev != NoLine {
		id = c.lines[id].prev
	}
	return id
}

// Last follows next links from id to the end of its chain.
func (c *Chain) Last(id LineID) LineID {
	for c.Line(id) != nil && c.lines[id].next != NoLine {
		id = c.lines[id].next
	}
	return id
}

// ParagraphHead returns the first line of the paragraph holding id.
func (c *Chain) ParagraphHead(id LineID) LineID {
	for {
		l := c.Line(id)
		if l == nil || l.IsParagraphStart() {
			return id
		}
		id = l.prev
	}
}

// ParagraphTail returns the line ending the paragraph holding id.
func (c *Chain) ParagraphTail(id LineID) LineID {
	for {
		l := c.Line(id)
		if l == nil || l.content.EOP || l.next == NoLine {
			return id
		}
		id = l.next
	}
}

// Width is the word budget of line id: the field width, less the indent
// on the first line of a paragraph.
func (c *Chain) Width(id LineID) int {
	if l := c.Line(id); l != nil && l.IsParagraphStart() {
		return max(c.width-c.indent, 1)
	}
	return c.width
}

func (c *Chain) Indent() int { return c.indent }

// Each calls fn for every line in order until fn returns false.
func (c *Chain) Each(fn func(*Line) bool) {
	for id := c.First(); id != NoLine; id = c.lines[id].next {
		if !fn(c.lines[id]) {
			return
		}
	}
}

// Reflow rebalances words starting at id. Each line pushes trailing words
// forward while it overflows and pulls words back while they fit. The pass
// walks on while the next line is marked for reflow.
func (c *Chain) Reflow(id LineID) error {
	for id != NoLine {
		l, err := c.line(id)
		if err != nil {
			return err
		}
		if !l.needsReflow {
			return nil
		}
		for l.content.size > c.Width(id) && len(l.content.words) > 1 {
			if err := c.pushToNext(l); err != nil {
				return err
			}
		}
		for c.canPull(l) {
			if err := c.pullFromNext(l); err != nil {
				return err
			}
		}
		l.needsReflow = false
		id = l.next
	}
	return nil
}

func (c *Chain) pushToNext(l *Line) error {
	if l.content.EOP || l.next == NoLine {
		if _, err := c.InsertAfter(l.id); err != nil {
			return err
		}
	}
	n := c.lines[l.next]
	if err := l.content.PushTo(n.content); err != nil {
		return fmt.Errorf("push from line %d: %w", l.id, err)
	}
	n.needsReflow = true
	n.dirty = RedrawWhole
	return nil
}

func (c *Chain) canPull(l *Line) bool {
	if l.content.EOP || l.next == NoLine {
		return false
	}
	return l.content.WouldFitIfPulled(c.lines[l.next].content, c.Width(l.id))
}

func (c *Chain) pullFromNext(l *Line) error {
	n := c.lines[l.next]
	if err := l.content.PullFrom(n.content); err != nil {
		return fmt.Errorf("pull into line %d: %w", l.id, err)
	}
	n.needsReflow = true
	n.dirty = RedrawWhole
	if n.content.IsEmpty() && !n.content.Focused {
		return c.Delete(n.id)
	}
	return nil
}
