package buffer

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// LineContent is the text of one display line, kept as a list of words.
// Words never contain spaces; the line's text is the words joined by one
// space each. An empty line holds a single empty word and is marked blank;
// an empty word left behind by a typed space is text and is not blank.
type LineContent struct {
	words []string
	size  int
	index Index
	blank bool

	Focused bool // the cursor is on this line
	EOP     bool // this line ends its paragraph
}

func NewLineContent(text string) *LineContent {
	c := &LineContent{}
	c.Reset(text, 0)
	return c
}

// Reset replaces the words with the whitespace-separated fields of text
// and places the cursor at col. Focus and the paragraph flag are kept.
func (c *LineContent) Reset(text string, col int) {
	c.words = strings.Fields(text)
	c.blank = len(c.words) == 0
	if c.blank {
		c.words = []string{""}
	}
	c.size = joinedLen(c.words)
	c.SetCursor(ByColumn(col))
}

func joinedLen(words []string) int {
	n := len(words) - 1
	for _, w := range words {
		n += RuneLen(w)
	}
	return n
}

func (c *LineContent) String() string {
	return strings.Join(c.words, " ")
}

func (c *LineContent) Size() int {
	return c.size
}

// Words returns a copy of the word list.
func (c *LineContent) Words() []string {
	return slices.Clone(c.words)
}

func (c *LineContent) Index() Index {
	return c.index
}

// Word returns the word under the cursor.
func (c *LineContent) Word() string {
	return c.words[c.index.Word]
}

// Resolve normalizes ref against the current words without changing the
// line. Out of range values are clamped; a word number past the end lands
// at the end of the last word.
func (c *LineContent) Resolve(ref CursorRef) Index {
	switch r := ref.(type) {
	case ByWord:
		return c.resolveWord(r.Word, r.InWord)
	case ByColumn:
		return c.resolveColumn(int(r))
	}
	return c.index
}

func (c *LineContent) SetCursor(ref CursorRef) {
	c.index = c.Resolve(ref)
}

func (c *LineContent) resolveWord(word, inword int) Index {
	last := len(c.words) - 1
	w := min(max(word, 0), last)
	n := RuneLen(c.words[w])
	in := min(max(inword, 0), n)
	if word > last {
		in = n
	}
	col := in
	for _, s := range c.words[:w] {
		col += RuneLen(s) + 1
	}
	return Index{Word: w, InWord: in, Col: col}
}

func (c *LineContent) resolveColumn(col int) Index {
	col = max(col, 0)
	start := 0
	for i, w := range c.words {
		n := RuneLen(w)
		if col <= start+n {
			return Index{Word: i, InWord: col - start, Col: col}
		}
		start += n + 1
	}
	last := len(c.words) - 1
	return Index{Word: last, InWord: RuneLen(c.words[last]), Col: c.size}
}

// InsertChar inserts ch at the cursor and advances it. A space splits the
// word under the cursor in two.
func (c *LineContent) InsertChar(ch rune) {
	w, in := c.index.Word, c.index.InWord
	r := []rune(c.words[w])
	c.size++
	c.blank = false
	if unicode.IsSpace(ch) {
		c.words[w] = string(r[:in])
		c.words = slices.Insert(c.words, w+1, string(r[in:]))
		c.index = Index{Word: w + 1, InWord: 0, Col: c.index.Col + 1}
		return
	}
	c.words[w] = string(r[:in]) + string(ch) + string(r[in:])
	c.index.InWord++
	c.index.Col++
}

// DeleteChar removes the character after the cursor. At the end of a word
// it removes the space instead, joining the word with the next one. It
// reports false at the end of the line, where nothing is removed.
func (c *LineContent) DeleteChar() bool {
	w, in := c.index.Word, c.index.InWord
	if c.IsEndOfWord() {
		if c.IsLastWord() {
			return false
		}
		c.words[w] += c.words[w+1]
		c.words = slices.Delete(c.words, w+1, w+2)
	} else {
		r := []rune(c.words[w])
		c.words[w] = string(r[:in]) + string(r[in+1:])
	}
	c.size--
	return true
}

// DeleteWord removes the rest of the word under the cursor and the space
// that follows it.
func (c *LineContent) DeleteWord() bool {
	w, in := c.index.Word, c.index.InWord
	r := []rune(c.words[w])
	if in == len(r) && c.IsLastWord() {
		return false
	}
	removed := len(r) - in
	c.words[w] = string(r[:in])
	if !c.IsLastWord() {
		c.words[w] += c.words[w+1]
		c.words = slices.Delete(c.words, w+1, w+2)
		removed++
	}
	c.size -= removed
	return true
}

// Truncate drops everything after the cursor.
func (c *LineContent) Truncate() {
	w, in := c.index.Word, c.index.InWord
	head := string([]rune(c.words[w])[:in])
	c.words = append(c.words[:w], head)
	c.size = c.index.Col
}

func (c *LineContent) PrevWord() bool {
	if c.IsFirstWord() {
		return false
	}
	c.index = c.resolveWord(c.index.Word-1, 0)
	return true
}

func (c *LineContent) NextWord() bool {
	if c.IsLastWord() {
		return false
	}
	c.index = c.resolveWord(c.index.Word+1, 0)
	return true
}

func (c *LineContent) PrevChar() bool {
	if c.IsBOL() {
		return false
	}
	c.index = c.resolveColumn(c.index.Col - 1)
	return true
}

func (c *LineContent) NextChar() bool {
	if c.IsEOL() {
		return false
	}
	c.index = c.resolveColumn(c.index.Col + 1)
	return true
}

func (c *LineContent) BOL() {
	c.index = Index{}
}

func (c *LineContent) EOL() {
	last := len(c.words) - 1
	c.index = c.resolveWord(last, RuneLen(c.words[last]))
}

func (c *LineContent) IsFirstWord() bool { return c.index.Word <= 0 }
func (c *LineContent) IsLastWord() bool  { return c.index.Word >= len(c.words)-1 }
func (c *LineContent) IsBOL() bool       { return c.index.Col == 0 }
func (c *LineContent) IsEOL() bool       { return c.IsLastWord() && c.IsEndOfWord() }

func (c *LineContent) IsEndOfWord() bool {
	return c.index.InWord >= RuneLen(c.words[c.index.Word])
}

// IsEmpty reports whether the line holds no text. A line whose only word
// is an empty word typed as a space is not empty.
func (c *LineContent) IsEmpty() bool {
	return c.blank
}

// isVoid reports whether the line's only word is the empty word, whether
// or not it was typed.
func (c *LineContent) isVoid() bool {
	return len(c.words) == 1 && c.words[0] == ""
}

// clear empties the line.
func (c *LineContent) clear() {
	c.words = []string{""}
	c.size = 0
	c.blank = true
	c.index = Index{}
}

// SizeIfPushed is the size this line would have after giving away its last
// word.
func (c *LineContent) SizeIfPushed() int {
	if len(c.words) < 2 {
		return c.size
	}
	return c.size - RuneLen(c.words[len(c.words)-1]) - 1
}

// SizeIfPulled is the size this line would have after taking the first
// word of other. An empty other has no word to give.
func (c *LineContent) SizeIfPulled(other *LineContent) int {
	if other.IsEmpty() {
		return c.size
	}
	n := RuneLen(other.words[0])
	if c.IsEmpty() {
		return n
	}
	return c.size + n + 1
}

func (c *LineContent) WouldFitIfPushed(width int) bool {
	return c.SizeIfPushed() <= width
}

// WouldFitIfPulled reports whether taking other's first word keeps this
// line within width. An empty line takes any word, since a word alone may
// overflow.
func (c *LineContent) WouldFitIfPulled(other *LineContent, width int) bool {
	if c.IsEmpty() || other.IsEmpty() {
		return true
	}
	return c.SizeIfPulled(other) <= width
}

// PushTo moves the last word of this line to the front of other. The
// paragraph flag travels with it, which is only allowed onto an empty
// line. If the cursor rides on the moved word, focus moves to other.
func (c *LineContent) PushTo(other *LineContent) error {
	if len(c.words) < 2 {
		return ErrNothingToPush
	}
	if c.EOP {
		if !other.IsEmpty() {
			return fmt.Errorf("%w: %q", ErrPushAcrossParagraph, other.String())
		}
		c.EOP, other.EOP = false, true
	}

	last := len(c.words) - 1
	carry := c.Focused && c.index.Word == last
	inword := c.index.InWord
	word := c.words[last]
	n := RuneLen(word)
	c.words = c.words[:last]
	c.size -= n + 1
	if c.index.Word >= last {
		c.EOL()
	}

	replace := other.IsEmpty()
	if replace {
		other.words[0] = word
		other.size = n
		other.blank = false
	} else {
		other.words = slices.Insert(other.words, 0, word)
		other.size += n + 1
	}

	switch {
	case carry:
		c.Focused, other.Focused = false, true
		other.index = other.resolveWord(0, inword)
	case replace:
		other.BOL()
	default:
		other.index = other.resolveWord(other.index.Word+1, other.index.InWord)
	}
	return nil
}

// PullFrom moves the first word of other to the end of this line. An empty
// line takes the word in place of its placeholder. When other is left
// without words it becomes an empty line and hands its paragraph flag to
// this line. Pulling from an empty line moves no word, only its paragraph
// flag and the cursor.
func (c *LineContent) PullFrom(other *LineContent) error {
	if c.EOP {
		return ErrPullPastParagraph
	}
	if other.IsEmpty() {
		if other.EOP {
			c.EOP, other.EOP = true, false
		}
		if other.Focused {
			other.Focused, c.Focused = false, true
			c.EOL()
		}
		return nil
	}

	carry := other.Focused && other.index.Word == 0
	inword := other.index.InWord
	word := other.words[0]
	n := RuneLen(word)
	if len(other.words) == 1 {
		other.clear()
		if other.EOP {
			c.EOP, other.EOP = true, false
		}
	} else {
		other.words = slices.Delete(other.words, 0, 1)
		other.size -= n + 1
	}

	if c.IsEmpty() {
		c.words[0] = word
		c.size = n
		c.blank = false
	} else {
		c.words = append(c.words, word)
		c.size += n + 1
	}

	if carry {
		other.Focused, c.Focused = false, true
		other.BOL()
		c.index = c.resolveWord(len(c.words)-1, inword)
		return nil
	}
	if other.index.Word > 0 {
		other.index = other.resolveWord(other.index.Word-1, other.index.InWord)
	} else {
		other.index = other.resolveWord(0, other.index.InWord)
	}
	return nil
}
