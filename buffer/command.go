package buffer

import "fmt"

type CommandKind int

const (
	CmdInsertChar CommandKind = iota
	CmdDeleteChar
	CmdDeletePrevChar
	CmdDeleteWord
	CmdDeleteLine
	CmdDeleteToEndOfLine
	CmdMovePrevChar
	CmdMoveNextChar
	CmdMovePrevWord
	CmdMoveNextWord
	CmdMoveBeginLine
	CmdMoveEndLine
	CmdMovePrevLine
	CmdMoveNextLine
	CmdMoveBeginField
	CmdMoveEndField
	CmdMoveTo
)

var commandNames = map[CommandKind]string{
	CmdInsertChar:        "insert_char",
	CmdDeleteChar:        "delete_char",
	CmdDeletePrevChar:    "delete_prev_char",
	CmdDeleteWord:        "delete_word",
	CmdDeleteLine:        "delete_line",
	CmdDeleteToEndOfLine: "delete_to_end_of_line",
	CmdMovePrevChar:      "move_prev_char",
	CmdMoveNextChar:      "move_next_char",
	CmdMovePrevWord:      "move_prev_word",
	CmdMoveNextWord:      "move_next_word",
	CmdMoveBeginLine:     "move_begin_line",
	CmdMoveEndLine:       "move_end_line",
	CmdMovePrevLine:      "move_prev_line",
	CmdMoveNextLine:      "move_next_line",
	CmdMoveBeginField:    "move_begin_field",
	CmdMoveEndField:      "move_end_field",
	CmdMoveTo:            "move_to",
}

func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// ParseCommand looks a command kind up by name.
func ParseCommand(name string) (CommandKind, bool) {
	for k, s := range commandNames {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// Command is one editing or movement request. Rune is used by
// CmdInsertChar, Row and Col by CmdMoveTo.
type Command struct {
	Kind     CommandKind
	Rune     rune
	Row, Col int
}

func (c Command) String() string {
	switch c.Kind {
	case CmdInsertChar:
		return fmt.Sprintf("%s %q", c.Kind, c.Rune)
	case CmdMoveTo:
		return fmt.Sprintf("%s %d,%d", c.Kind, c.Row, c.Col)
	}
	return c.Kind.String()
}

// Apply runs cmd against the buffer and keeps the cursor line on screen.
// The result tells the caller whether to redraw nothing, just the cursor,
// or every dirty row.
func (b *Buffer) Apply(cmd Command) (Redraw, error) {
	var (
		r   Redraw
		err error
	)
	switch cmd.Kind {
	case CmdInsertChar:
		r, err = b.insertChar(cmd.Rune)
	case CmdDeleteChar:
		r, err = b.deleteChar()
	case CmdDeletePrevChar:
		r, err = b.deletePrevChar()
	case CmdDeleteWord:
		r, err = b.deleteWord()
	case CmdDeleteLine:
		r, err = b.deleteLine()
	case CmdDeleteToEndOfLine:
		r, err = b.deleteToEndOfLine()
	case CmdMovePrevChar:
		r = b.movePrevChar()
	case CmdMoveNextChar:
		r = b.moveNextChar()
	case CmdMovePrevWord:
		r = b.movePrevWord()
	case CmdMoveNextWord:
		r = b.moveNextWord()
	case CmdMoveBeginLine:
		r = b.moveBeginLine()
	case CmdMoveEndLine:
		r = b.moveEndLine()
	case CmdMovePrevLine:
		r = b.movePrevLine()
	case CmdMoveNextLine:
		r = b.moveNextLine()
	case CmdMoveBeginField:
		r = b.moveBeginField()
	case CmdMoveEndField:
		r = b.moveEndField()
	case CmdMoveTo:
		r = b.moveTo(cmd.Row, cmd.Col)
	default:
		return RedrawNone, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Kind)
	}
	if err != nil {
		b.syncCurrent()
		return b.scroll(RedrawWhole), fmt.Errorf("%s: %w", cmd, err)
	}
	return b.scroll(r), nil
}

func (b *Buffer) InsertChar(ch rune) (Redraw, error) {
	return b.Apply(Command{Kind: CmdInsertChar, Rune: ch})
}

func (b *Buffer) DeleteChar() (Redraw, error) {
	return b.Apply(Command{Kind: CmdDeleteChar})
}

func (b *Buffer) DeletePrevChar() (Redraw, error) {
	return b.Apply(Command{Kind: CmdDeletePrevChar})
}

func (b *Buffer) DeleteWord() (Redraw, error) {
	return b.Apply(Command{Kind: CmdDeleteWord})
}

func (b *Buffer) DeleteLine() (Redraw, error) {
	return b.Apply(Command{Kind: CmdDeleteLine})
}

func (b *Buffer) DeleteToEndOfLine() (Redraw, error) {
	return b.Apply(Command{Kind: CmdDeleteToEndOfLine})
}

func (b *Buffer) MovePrevChar() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMovePrevChar})
}

func (b *Buffer) MoveNextChar() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveNextChar})
}

func (b *Buffer) MovePrevWord() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMovePrevWord})
}

func (b *Buffer) MoveNextWord() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveNextWord})
}

func (b *Buffer) MoveBeginLine() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveBeginLine})
}

func (b *Buffer) MoveEndLine() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveEndLine})
}

func (b *Buffer) MovePrevLine() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMovePrevLine})
}

func (b *Buffer) MoveNextLine() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveNextLine})
}

func (b *Buffer) MoveBeginField() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveBeginField})
}

func (b *Buffer) MoveEndField() (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveEndField})
}

// MoveTo places the cursor at a screen row and column of the field.
func (b *Buffer) MoveTo(row, col int) (Redraw, error) {
	return b.Apply(Command{Kind: CmdMoveTo, Row: row, Col: col})
}
