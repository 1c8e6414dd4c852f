package buffer

import (
	"fmt"
	"strings"
)

// Completions returns the part of the word before the cursor and the
// dictionary words that extend it. Nothing is offered for an empty prefix.
func (b *Buffer) Completions() (prefix string, words []string) {
	c := b.cur().content
	prefix = string([]rune(c.Word())[:c.index.InWord])
	if prefix == "" {
		return "", nil
	}
	for _, w := range b.Dictionary() {
		if w != prefix && strings.HasPrefix(w, prefix) {
			words = append(words, w)
		}
	}
	return prefix, words
}

// Complete types the rest of word after the prefix under the cursor.
func (b *Buffer) Complete(word string) (Redraw, error) {
	prefix, _ := b.Completions()
	if prefix == "" || !strings.HasPrefix(word, prefix) {
		return RedrawNone, fmt.Errorf("%w: %q after %q", ErrNotACompletion, word, prefix)
	}
	r := RedrawNone
	for _, ch := range strings.TrimPrefix(word, prefix) {
		got, err := b.InsertChar(ch)
		if err != nil {
			return RedrawWhole, err
		}
		r = max(r, got)
	}
	return r, nil
}

type Stats struct {
	Paragraphs int
	Lines      int
	Words      int
}

func (b *Buffer) Stats() Stats {
	var s Stats
	b.chain.Each(func(l *Line) bool {
		s.Lines++
		if l.content.EOP || l.next == NoLine {
			s.Paragraphs++
		}
		for _, w := range l.content.words {
			if w != "" {
				s.Words++
			}
		}
		return true
	})
	return s
}
