package buffer

import "unicode/utf8"

// Index locates the cursor inside one line: Word and InWord address the
// word list, Col is the same place counted in columns from the start of
// the line's text (words joined by single spaces).
type Index struct {
	Word, InWord, Col int
}

// CursorRef names a cursor position by either of its two coordinates.
// Resolve turns it into a full Index.
type CursorRef interface {
	cursorRef()
}

// ByWord addresses the cursor by word number and offset inside that word.
type ByWord struct {
	Word, InWord int
}

// ByColumn addresses the cursor by column.
type ByColumn int

func (ByWord) cursorRef()   {}
func (ByColumn) cursorRef() {}

// Position is a screen cell relative to the top-left corner of the field.
type Position struct {
	X, Y int
}

func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
