package editor

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/linsujie/bibcmd/buffer"
	"github.com/linsujie/bibcmd/clipboardx"
	"github.com/linsujie/bibcmd/config"
	"github.com/linsujie/bibcmd/highlight"
	"github.com/linsujie/bibcmd/ui"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

type Component interface {
	Render(screen tcell.Screen, x, y, width, height int)
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
	IsFocused() bool
	SetFocused(bool)
}

var _ Component = (*ui.Autocomplete)(nil)

// Editor edits one note as a single soft-wrapped field above a status bar.
type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	theme  *config.ColorScheme

	doc *Document
	buf *buffer.Buffer

	statusBar    *ui.StatusBar
	autocomplete *ui.Autocomplete
	highlight    *highlight.Highlighter
	clipboard    *clipboardx.Clipboard

	quit        bool
	quitPending bool // true after first Ctrl+Q with unsaved changes
	pasting     bool
	fullRedraw  bool

	// File watching
	fileWatcher *fsnotify.Watcher
	done        chan struct{}

	// Temporary status messages
	statusMessageTime    time.Time
	statusMessageIsError bool
}

// FileWatchEvent carries file system change notifications to the main event loop.
type FileWatchEvent struct {
	tcell.EventTime
	Path string
	Op   fsnotify.Op
}

// backupEvent asks the main loop to write a recovery copy.
type backupEvent struct {
	tcell.EventTime
}

func New(cfg *config.Config) *Editor {
	theme := cfg.GetTheme()
	if theme == nil {
		theme = highlight.Scheme(cfg.Theme, config.Themes["dark"])
	}
	return &Editor{
		cfg:       cfg,
		theme:     theme,
		statusBar: ui.NewStatusBar(),
		highlight: highlight.New(cfg.Theme, baseStyle(theme)),
		clipboard: clipboardx.New(),
		done:      make(chan struct{}),
	}
}

func baseStyle(theme *config.ColorScheme) tcell.Style {
	return tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
}

func (e *Editor) Run(path string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	// Don't defer Fini here - we'll call it manually with cleanup

	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(baseStyle(e.theme))
	screen.Clear()

	e.screen = screen

	absPath, err := filepath.Abs(path)
	if err != nil {
		screen.Fini()
		return err
	}
	if err := e.open(absPath); err != nil {
		screen.Fini()
		return err
	}
	e.restoreSession()

	if e.cfg.Backup {
		e.recoverBackup()
		e.startBackupTimer(screen)
	}
	e.setupFileWatcher(screen)

	for !e.quit {
		e.clearExpiredMessages()
		e.render()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
			e.resize()
		case *tcell.EventKey:
			e.handleKey(ev)
		case *tcell.EventMouse:
			e.handleMouse(ev)
		case *tcell.EventPaste:
			e.pasting = ev.Start()
		case *FileWatchEvent:
			e.handleFileWatchEvent(ev)
		case *backupEvent:
			e.saveBackup()
		}
	}

	// Cleanup
	close(e.done)
	e.SaveSession()
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
	}
	e.cleanBackup()
	screen.Clear()
	screen.Fini()
	return nil
}

// open loads the note at path into a fresh field.
func (e *Editor) open(path string) error {
	doc, text, err := LoadDocument(path)
	if err != nil {
		return err
	}
	if doc.LastSaveTime.IsZero() && e.cfg.EndOfLine == "crlf" {
		// New note
		doc.LineEnding = "CRLF"
	}
	e.doc = doc
	e.loadText(text)
	e.statusBar.Filename = filepath.Base(path)
	e.statusBar.Modified = false
	log.Printf("Editor: opened %s (%d paragraphs)", path, e.buf.Stats().Paragraphs)
	return nil
}

// loadText rebuilds the field over text, sized to the current screen.
func (e *Editor) loadText(text string) {
	w, h := e.cfg.FieldSize(e.screen.Size())
	e.buf = buffer.NewIndented(text, w, h, e.cfg.ParagraphIndent)
	e.autocomplete = nil
	e.highlight.InvalidateCache()
	e.fullRedraw = true
}

func (e *Editor) resize() {
	w, h := e.cfg.FieldSize(e.screen.Size())
	if w == e.buf.Width() && h == e.buf.Height() {
		e.fullRedraw = true
		return
	}
	row, col := e.buf.Cursor()
	e.loadText(e.buf.String())
	e.seek(row, col)
}

// seek puts the cursor on document row row at column col, clamped to the
// field.
func (e *Editor) seek(row, col int) {
	for {
		r, _ := e.buf.Cursor()
		if r == row {
			break
		}
		kind := buffer.CmdMoveNextLine
		if r > row {
			kind = buffer.CmdMovePrevLine
		}
		e.apply(buffer.Command{Kind: kind})
		if moved, _ := e.buf.Cursor(); moved == r {
			break
		}
	}
	e.apply(buffer.Command{Kind: buffer.CmdMoveTo, Row: e.buf.Position().Y, Col: col})
}

// apply runs one field command and keeps the editor state in step with it.
func (e *Editor) apply(cmd buffer.Command) {
	// Rows the command touched are marked dirty on their lines
	if _, err := e.buf.Apply(cmd); err != nil {
		log.Printf("Editor: %v", err)
		e.setTemporaryError(err.Error())
	}
	if isEdit(cmd.Kind) {
		e.markDirty()
	}
}

func isEdit(k buffer.CommandKind) bool {
	return k <= buffer.CmdDeleteToEndOfLine
}

func (e *Editor) markDirty() {
	e.doc.RecomputeDirty(e.buf.String())
	e.statusBar.Modified = e.doc.Dirty
}

func (e *Editor) saveCurrentFile() {
	text := e.buf.String()
	if err := e.doc.Save(text, e.cfg.InsertFinalNewline); err != nil {
		log.Printf("Editor: save %s: %v", e.doc.Path, err)
		e.setTemporaryError("Error saving: " + err.Error())
		return
	}
	e.statusBar.Modified = false
	e.cleanBackup()
	e.setTemporaryMessage("Saved " + filepath.Base(e.doc.Path))
}

func (e *Editor) copyField() {
	if err := e.clipboard.Copy(e.buf.String()); err != nil {
		e.setTemporaryMessage("Copied note (internal clipboard only)")
		return
	}
	e.setTemporaryMessage("Copied note")
}

func (e *Editor) pasteClipboard() {
	text := e.clipboard.Paste()
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "")

	// The note is compared with the saved text once, after the last rune
	var err error
	for _, ch := range text {
		if ch == '\t' {
			ch = ' '
		}
		if _, err = e.buf.Apply(buffer.Command{Kind: buffer.CmdInsertChar, Rune: ch}); err != nil {
			break
		}
	}
	e.markDirty()
	if err != nil {
		log.Printf("Editor: paste: %v", err)
		e.setTemporaryError("Paste stopped: " + err.Error())
		return
	}
	e.setTemporaryMessage(fmt.Sprintf("Pasted %d characters", buffer.RuneLen(text)))
}

func (e *Editor) handleQuit() {
	if e.doc.Dirty {
		if e.quitPending {
			e.quit = true // Second Ctrl+Q forces quit
			return
		}
		e.setStatusMessage("Unsaved changes! Press Ctrl+Q again to force quit.")
		e.quitPending = true
		return
	}
	e.quit = true
}

// setStatusMessage sets a permanent status message (won't auto-clear)
func (e *Editor) setStatusMessage(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Time{} // zero time = permanent
	e.statusMessageIsError = false
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Now()
	e.statusMessageIsError = false
}

// setTemporaryError sets an error message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Now()
	e.statusMessageIsError = true
}

// clearExpiredMessages clears status messages that have expired
func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusMessageTime = time.Time{}
		e.statusMessageIsError = false
	}
}
