package buffer

import (
	"errors"
	"testing"
)

func lineTexts(c *Chain) []string {
	var out []string
	c.Each(func(l *Line) bool {
		out = append(out, l.content.String())
		return true
	})
	return out
}

func equalTexts(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestReflowWrapsAtWidth(t *testing.T) {
	c := NewChain(10, 0)
	id := c.Seed("aaa bbb ccc ddd")
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	if got := lineTexts(c); !equalTexts(got, []string{"aaa bbb", "ccc ddd"}) {
		t.Fatalf("expected two wrapped lines, got %q", got)
	}
	last := c.Line(c.Last(id))
	if !last.content.EOP || c.Line(id).content.EOP {
		t.Fatalf("expected only the last line to end the paragraph")
	}
}

func TestReflowReducesFirstLineByIndent(t *testing.T) {
	c := NewChain(10, 4)
	id := c.Seed("aaa bbb ccc")
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	if got := lineTexts(c); !equalTexts(got, []string{"aaa", "bbb ccc"}) {
		t.Fatalf("expected indented first line to hold one word, got %q", got)
	}
	if c.Width(id) != 6 || c.Width(c.Line(id).next) != 10 {
		t.Fatalf("expected widths 6 and 10, got %d and %d", c.Width(id), c.Width(c.Line(id).next))
	}
}

func TestReflowToleratesWideWord(t *testing.T) {
	c := NewChain(5, 0)
	id := c.Seed("ab abcdefgh cd")
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	if got := lineTexts(c); !equalTexts(got, []string{"ab", "abcdefgh", "cd"}) {
		t.Fatalf("expected the wide word alone on its line, got %q", got)
	}
}

func TestReflowPullsBack(t *testing.T) {
	c := NewChain(10, 0)
	id := c.Seed("aaa bbb ccc ddd")
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	first := c.Line(id)
	first.content.SetCursor(ByColumn(0))
	first.content.DeleteWord()
	first.needsReflow = true
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	if got := lineTexts(c); !equalTexts(got, []string{"bbb ccc", "ddd"}) {
		t.Fatalf("expected words pulled back, got %q", got)
	}
}

func TestReflowDeletesDrainedLine(t *testing.T) {
	c := NewChain(10, 0)
	id := c.Seed("aaa bbb ccc")
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	first := c.Line(id)
	first.content.Reset("aaa", 0)
	first.needsReflow = true
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	if got := lineTexts(c); !equalTexts(got, []string{"aaa ccc"}) {
		t.Fatalf("expected one line, got %q", got)
	}
	if !first.content.EOP {
		t.Fatalf("expected paragraph end to move onto the remaining line")
	}
}

func TestJoinKeepsParagraphs(t *testing.T) {
	c := NewChain(10, 0)
	a := c.Seed("one two")
	if err := c.Reflow(a); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	b := c.Seed("three four five")
	if err := c.Join(a, b); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if got := lineTexts(c); !equalTexts(got, []string{"one two", "three four", "five"}) {
		t.Fatalf("unexpected lines %q", got)
	}
	if c.ParagraphHead(c.Last(a)) != b {
		t.Fatalf("expected second paragraph to start at the joined head")
	}
	if c.ParagraphTail(b) != c.Last(a) || c.ParagraphTail(a) != a {
		t.Fatalf("unexpected paragraph tails")
	}
	if !c.Line(b).IsParagraphStart() || c.Line(c.Last(a)).IsParagraphStart() {
		t.Fatalf("unexpected paragraph starts")
	}
}

func TestDeleteOnlyLine(t *testing.T) {
	c := NewChain(10, 0)
	id := c.Seed("solo")
	if err := c.Delete(id); !errors.Is(err, ErrLastLine) {
		t.Fatalf("expected ErrLastLine, got %v", err)
	}
	if err := c.Delete(LineID(42)); !errors.Is(err, ErrNoSuchLine) {
		t.Fatalf("expected ErrNoSuchLine, got %v", err)
	}
}

func TestDeleteRecyclesSlot(t *testing.T) {
	c := NewChain(10, 0)
	id := c.Seed("x")
	mid, err := c.InsertAfter(id)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := c.InsertAfter(mid); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := c.Delete(mid); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if c.Line(mid) != nil {
		t.Fatalf("expected deleted line to be gone")
	}
	again, err := c.InsertAfter(id)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if again != mid {
		t.Fatalf("expected slot %d to be reused, got %d", mid, again)
	}
	if got := len(lineTexts(c)); got != 3 {
		t.Fatalf("expected 3 lines, got %d", got)
	}
}

func TestStructuralChangeMarksFollowingLines(t *testing.T) {
	c := NewChain(10, 0)
	id := c.Seed("aaa bbb ccc ddd eee fff")
	if err := c.Reflow(id); err != nil {
		t.Fatalf("reflow failed: %v", err)
	}
	c.Each(func(l *Line) bool {
		l.ClearDirty()
		return true
	})
	if _, err := c.InsertAfter(id); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	c.Each(func(l *Line) bool {
		want := RedrawWhole
		if l.id == id {
			want = RedrawNone
		}
		if l.Dirty() != want {
			t.Fatalf("line %d: expected %s, got %s", l.Row(), want, l.Dirty())
		}
		return true
	})
}

func TestLineText(t *testing.T) {
	c := NewChain(20, 4)
	id := c.Seed("hello world")
	l := c.Line(id)
	if got := l.Text(0); got != "    hello world" {
		t.Fatalf("expected indented text, got %q", got)
	}
	if got := l.Text(6); got != "llo world" {
		t.Fatalf("expected text from column 6, got %q", got)
	}
	if got := l.Text(40); got != "" {
		t.Fatalf("expected empty text past the end, got %q", got)
	}
	l.content.SetCursor(ByColumn(3))
	if l.X() != 7 {
		t.Fatalf("expected x 7, got %d", l.X())
	}
}
