package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linsujie/bibcmd/config"
)

// SessionData is where the cursor was when a note was last closed.
type SessionData struct {
	Path  string `json:"path"`
	Row   int    `json:"cursor_row"`
	Col   int    `json:"cursor_col"`
	Width int    `json:"width"`
}

func sessionDir() string {
	return filepath.Join(config.DataDir(), "sessions")
}

func sessionPath(notePath string) string {
	hash := sha256.Sum256([]byte(notePath))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) SaveSession() {
	if e.doc == nil || e.doc.Path == "" {
		return
	}
	path := sessionPath(e.doc.Path)

	row, col := e.buf.Cursor()
	if row == 0 && col == 0 {
		// Nothing worth remembering; drop any stale position.
		_ = os.Remove(path)
		return
	}
	session := SessionData{
		Path:  e.doc.Path,
		Row:   row,
		Col:   col,
		Width: e.buf.Width(),
	}

	os.MkdirAll(sessionDir(), 0755)

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}

	os.WriteFile(path, data, 0644)
}

// restoreSession moves the cursor back to where it was when the note was
// last closed. Rows only mean the same thing at the same field width, so a
// session saved at another width is ignored.
func (e *Editor) restoreSession() bool {
	if e.doc == nil || e.doc.Path == "" {
		return false
	}
	data, err := os.ReadFile(sessionPath(e.doc.Path))
	if err != nil {
		return false
	}

	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return false
	}
	if session.Path != e.doc.Path || session.Width != e.buf.Width() {
		return false
	}

	e.seek(session.Row, session.Col)
	return true
}
