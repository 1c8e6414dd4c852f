package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/linsujie/bibcmd/config"
)

// NoteLanguage is the lexer used for note text, which is mostly prose
// with TeX markup.
const NoteLanguage = "TeX"

const maxCachedRows = 4096

type Token struct {
	Text  string
	Style tcell.Style
}

// Highlighter colours rendered rows of a note. Rows are cached by text
// since most of them repeat between redraws.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
	base  tcell.Style
	cache map[string][]Token
}

func New(styleName string, base tcell.Style) *Highlighter {
	lexer := lexers.Get(NoteLanguage)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: styles.Get(styleName),
		base:  base,
		cache: make(map[string][]Token),
	}
}

func (h *Highlighter) InvalidateCache() {
	h.cache = make(map[string][]Token)
}

// Row splits one rendered row into styled tokens. The token texts always
// concatenate back to text.
func (h *Highlighter) Row(text string) []Token {
	if cached, ok := h.cache[text]; ok {
		return cached
	}
	plain := []Token{{Text: text, Style: h.base}}
	if strings.TrimSpace(text) == "" {
		return plain
	}

	iter, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		// Fallback: unstyled row
		return plain
	}
	var tokens []Token
	for _, tok := range iter.Tokens() {
		if tok.Value == "" {
			continue
		}
		value := strings.TrimSuffix(tok.Value, "\n")
		if value == "" {
			continue
		}
		tokens = append(tokens, Token{Text: value, Style: h.tokenStyle(tok.Type)})
	}
	if len(h.cache) >= maxCachedRows {
		h.InvalidateCache()
	}
	h.cache[text] = tokens
	return tokens
}

func (h *Highlighter) tokenStyle(t chroma.TokenType) tcell.Style {
	if t == chroma.Text || t == chroma.TextWhitespace {
		return h.base
	}
	return entryStyle(h.style.Get(t), h.base)
}

func entryStyle(e chroma.StyleEntry, base tcell.Style) tcell.Style {
	s := base
	if e.Colour.IsSet() {
		s = s.Foreground(tcellColor(e.Colour))
	}
	if e.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if e.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	return s
}

func tcellColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// Scheme derives the editor colours from a chroma style. Names that chroma
// does not know return fallback.
func Scheme(styleName string, fallback *config.ColorScheme) *config.ColorScheme {
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return fallback
	}

	bg := style.Get(chroma.Background)
	text := style.Get(chroma.Text)
	comment := style.Get(chroma.Comment)
	heading := style.Get(chroma.GenericHeading)
	keyword := style.Get(chroma.Keyword)
	highlight := style.Get(chroma.LineHighlight)

	background := pick(bg.Background, tcell.ColorBlack)
	foreground := pick(text.Colour, pick(bg.Colour, tcell.ColorWhite))
	selection := pick(highlight.Background, pick(comment.Colour, tcell.ColorDarkBlue))
	accent := pick(heading.Colour, pick(keyword.Colour, tcell.ColorBlue))

	return &config.ColorScheme{
		Name:            style.Name,
		Background:      background,
		Foreground:      foreground,
		Margin:          pick(comment.Colour, tcell.ColorDimGray),
		StatusBarBg:     selection,
		StatusBarFg:     foreground,
		StatusBarModeBg: accent,
		PopupBg:         background,
		PopupFg:         foreground,
		PopupSelectBg:   selection,
	}
}

func pick(c chroma.Colour, otherwise tcell.Color) tcell.Color {
	if c.IsSet() {
		return tcellColor(c)
	}
	return otherwise
}
