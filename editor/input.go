package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/linsujie/bibcmd/buffer"
	"github.com/linsujie/bibcmd/ui"
)

// keyCommands maps unmodified keys to field commands.
var keyCommands = map[tcell.Key]buffer.CommandKind{
	tcell.KeyLeft:       buffer.CmdMovePrevChar,
	tcell.KeyRight:      buffer.CmdMoveNextChar,
	tcell.KeyUp:         buffer.CmdMovePrevLine,
	tcell.KeyDown:       buffer.CmdMoveNextLine,
	tcell.KeyHome:       buffer.CmdMoveBeginLine,
	tcell.KeyEnd:        buffer.CmdMoveEndLine,
	tcell.KeyPgUp:       buffer.CmdMoveBeginField,
	tcell.KeyPgDn:       buffer.CmdMoveEndField,
	tcell.KeyBackspace:  buffer.CmdDeletePrevChar,
	tcell.KeyBackspace2: buffer.CmdDeletePrevChar,
	tcell.KeyDelete:     buffer.CmdDeleteChar,
	tcell.KeyCtrlD:      buffer.CmdDeleteChar,
	tcell.KeyCtrlW:      buffer.CmdDeleteWord,
	tcell.KeyCtrlU:      buffer.CmdDeleteLine,
	tcell.KeyCtrlK:      buffer.CmdDeleteToEndOfLine,
	tcell.KeyCtrlA:      buffer.CmdMoveBeginLine,
	tcell.KeyCtrlE:      buffer.CmdMoveEndLine,
	tcell.KeyCtrlB:      buffer.CmdMovePrevChar,
	tcell.KeyCtrlF:      buffer.CmdMoveNextChar,
	tcell.KeyCtrlP:      buffer.CmdMovePrevLine,
	tcell.KeyCtrlN:      buffer.CmdMoveNextLine,
}

// ctrlKeyCommands maps Ctrl (or Alt) chords on navigation keys.
var ctrlKeyCommands = map[tcell.Key]buffer.CommandKind{
	tcell.KeyLeft:  buffer.CmdMovePrevWord,
	tcell.KeyRight: buffer.CmdMoveNextWord,
	tcell.KeyHome:  buffer.CmdMoveBeginField,
	tcell.KeyEnd:   buffer.CmdMoveEndField,
}

// altRuneCommands maps Alt+letter, for terminals that send word motion
// that way.
var altRuneCommands = map[rune]buffer.CommandKind{
	'b': buffer.CmdMovePrevWord,
	'f': buffer.CmdMoveNextWord,
	'd': buffer.CmdDeleteWord,
}

// keyOf folds Ctrl+letter runes into the matching control key.
func keyOf(ev *tcell.EventKey) tcell.Key {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl != 0 {
		r := ev.Rune()
		switch {
		case r >= 'a' && r <= 'z':
			return tcell.KeyCtrlA + tcell.Key(r-'a')
		case r >= 'A' && r <= 'Z':
			return tcell.KeyCtrlA + tcell.Key(r-'A')
		}
	}
	return ev.Key()
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	key := keyOf(ev)

	// Reset force-quit state on any key except Ctrl+Q
	if key != tcell.KeyCtrlQ && e.quitPending {
		e.quitPending = false
		e.statusBar.Message = ""
	}

	// Autocomplete gets priority when visible
	if e.autocomplete != nil && e.autocomplete.IsFocused() {
		if e.autocomplete.HandleKey(ev) {
			return
		}
		// Any other key closes autocomplete
		e.closeAutocomplete()
	}

	// Global keybindings (always active)
	switch key {
	case tcell.KeyCtrlQ:
		e.handleQuit()
		return
	case tcell.KeyCtrlS:
		e.saveCurrentFile()
		return
	case tcell.KeyCtrlC:
		e.copyField()
		return
	case tcell.KeyCtrlV:
		e.pasteClipboard()
		return
	case tcell.KeyCtrlL:
		e.fullRedraw = true
		e.screen.Sync()
		return
	}

	mods := ev.Modifiers()
	if mods&(tcell.ModCtrl|tcell.ModAlt) != 0 {
		if kind, ok := ctrlKeyCommands[key]; ok {
			e.apply(buffer.Command{Kind: kind})
			return
		}
	}
	if mods&tcell.ModAlt != 0 && key == tcell.KeyRune {
		if kind, ok := altRuneCommands[ev.Rune()]; ok {
			e.apply(buffer.Command{Kind: kind})
		}
		return
	}

	switch key {
	case tcell.KeyRune:
		e.apply(buffer.Command{Kind: buffer.CmdInsertChar, Rune: ev.Rune()})
		return
	case tcell.KeyEnter:
		e.apply(buffer.Command{Kind: buffer.CmdInsertChar, Rune: '\n'})
		return
	case tcell.KeyTab:
		if e.pasting {
			e.apply(buffer.Command{Kind: buffer.CmdInsertChar, Rune: ' '})
			return
		}
		e.triggerAutocomplete()
		return
	}

	if kind, ok := keyCommands[key]; ok {
		e.apply(buffer.Command{Kind: kind})
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if e.autocomplete != nil && e.autocomplete.IsFocused() && buttons != tcell.ButtonNone {
		e.closeAutocomplete()
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		e.apply(buffer.Command{Kind: buffer.CmdMovePrevLine})
	case buttons&tcell.WheelDown != 0:
		e.apply(buffer.Command{Kind: buffer.CmdMoveNextLine})
	case buttons&tcell.Button1 != 0:
		if y >= e.buf.Height() || x >= e.buf.Width() {
			return
		}
		l := e.buf.LineAt(y)
		if l == nil {
			return
		}
		col := x
		if l.IsParagraphStart() {
			col = max(col-e.buf.Indent(), 0)
		}
		e.apply(buffer.Command{Kind: buffer.CmdMoveTo, Row: y, Col: col})
	}
}

// triggerAutocomplete completes the word under the cursor from the words
// already in the note. A single candidate is typed straight away.
func (e *Editor) triggerAutocomplete() {
	prefix, words := e.buf.Completions()
	if buffer.RuneLen(prefix) < e.cfg.AutocompleteMin || len(words) == 0 {
		e.setTemporaryMessage("No completions")
		return
	}
	if len(words) == 1 {
		e.complete(words[0])
		return
	}

	pos := e.buf.Position()
	ac := ui.NewAutocomplete(prefix, words, pos.X, pos.Y, e.theme)
	ac.OnSelect = func(word string) {
		e.complete(word)
		e.closeAutocomplete()
	}
	ac.OnClose = func() {
		e.closeAutocomplete()
	}
	e.autocomplete = ac
}

func (e *Editor) complete(word string) {
	if _, err := e.buf.Complete(word); err != nil {
		e.setTemporaryError(err.Error())
	}
	e.markDirty()
}

// closeAutocomplete drops the popup and repaints the rows it covered.
func (e *Editor) closeAutocomplete() {
	e.autocomplete = nil
	e.fullRedraw = true
}
