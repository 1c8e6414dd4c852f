package editor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const maxNoteSize = 16 * 1024 * 1024

var ErrBinaryNote = errors.New("note looks like a binary file")

// Document is the note file behind the field. The field itself never
// touches the disk; the editor hands its text to the document to save.
type Document struct {
	Path               string
	LineEnding         string // "LF" or "CRLF"
	Dirty              bool
	ExternallyModified bool
	LastSaveTime       time.Time

	savedText string
}

// LoadDocument reads the note at path. A missing file is an empty note
// that will be created on first save.
func LoadDocument(path string) (*Document, string, error) {
	doc := &Document{Path: path, LineEnding: "LF"}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, "", nil
		}
		return nil, "", err
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxNoteSize {
		return nil, "", fmt.Errorf("note too large (%d MB), max supported is %d MB",
			info.Size()/(1024*1024), maxNoteSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if bytes.IndexByte(data[:min(len(data), 8192)], 0) >= 0 {
		return nil, "", fmt.Errorf("%s: %w", path, ErrBinaryNote)
	}

	text := string(data)
	if strings.Contains(text, "\r\n") {
		doc.LineEnding = "CRLF"
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	// The final newline ends the last paragraph, it does not open a new one
	text = strings.TrimSuffix(text, "\n")

	doc.savedText = text
	doc.LastSaveTime = info.ModTime()
	return doc, text, nil
}

// BuildSaveContent converts field text to what goes on disk.
func (d *Document) BuildSaveContent(text string, insertFinalNewline bool) string {
	if insertFinalNewline {
		text = strings.TrimRight(text, "\n") + "\n"
	}
	if d.LineEnding == "CRLF" {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

func (d *Document) Save(text string, insertFinalNewline bool) error {
	if d.Path == "" {
		return errors.New("note has no file name")
	}
	content := d.BuildSaveContent(text, insertFinalNewline)
	if err := os.WriteFile(d.Path, []byte(content), 0644); err != nil {
		return err
	}
	d.MarkSaved(text)
	d.LastSaveTime = time.Now()
	return nil
}

func (d *Document) MarkSaved(text string) {
	d.savedText = text
	d.Dirty = false
	d.ExternallyModified = false
}

func (d *Document) RecomputeDirty(text string) {
	d.Dirty = text != d.savedText
}
