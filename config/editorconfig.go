package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EditorConfigSettings holds the .editorconfig properties that shape a
// note field.
type EditorConfigSettings struct {
	IndentSize         int    // paragraph indent, 0 means unset
	MaxLineLength      int    // field width, 0 means unset
	EndOfLine          string // "lf" or "crlf" for notes that don't exist yet
	InsertFinalNewline *bool
}

type ecSection struct {
	globs []string
	props map[string]string
}

// ecFile is one parsed .editorconfig.
type ecFile struct {
	root     bool
	sections []ecSection
}

// FindEditorConfig collects .editorconfig files from the note's directory
// up to the first one marked root, and returns the properties that apply
// to the note. Closer files win. It returns nil when nothing applies.
func FindEditorConfig(notePath string) *EditorConfigSettings {
	absPath, err := filepath.Abs(notePath)
	if err != nil {
		return nil
	}
	name := filepath.Base(absPath)

	var files []*ecFile
	for dir := filepath.Dir(absPath); ; {
		if f := readEditorConfig(filepath.Join(dir, ".editorconfig")); f != nil {
			files = append(files, f)
			if f.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	props := make(map[string]string)
	for i := len(files) - 1; i >= 0; i-- {
		files[i].apply(name, props)
	}
	return settingsFrom(props)
}

// readEditorConfig parses the file at path, or returns nil if it can't be
// read. Keys and values are lower-cased.
func readEditorConfig(path string) *ecFile {
	fh, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer fh.Close()

	f := &ecFile{}
	var cur *ecSection
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			f.sections = append(f.sections, ecSection{
				globs: expandBraces(line[1 : len(line)-1]),
				props: make(map[string]string),
			})
			cur = &f.sections[len(f.sections)-1]
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch {
		case cur == nil:
			f.root = f.root || key == "root" && value == "true"
		default:
			cur.props[key] = value
		}
	}
	return f
}

// apply copies the properties of every section matching name into props.
// Later sections override earlier ones.
func (f *ecFile) apply(name string, props map[string]string) {
	for _, s := range f.sections {
		if !s.matches(name) {
			continue
		}
		for k, v := range s.props {
			props[k] = v
		}
	}
}

func (s ecSection) matches(name string) bool {
	for _, g := range s.globs {
		if ok, _ := filepath.Match(g, name); ok {
			return true
		}
	}
	return false
}

// expandBraces turns "*.{txt,{md,note}}" into "*.txt", "*.md", "*.note".
// Unbalanced braces are left as they are.
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	depth, closing := 0, -1
	var cuts []int // top-level commas inside the braces
	for i := open; i < len(pattern) && closing < 0; i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			if depth--; depth == 0 {
				closing = i
			}
		case ',':
			if depth == 1 {
				cuts = append(cuts, i)
			}
		}
	}
	if closing < 0 {
		return []string{pattern}
	}

	head, tail := pattern[:open], pattern[closing+1:]
	bounds := append(append([]int{open}, cuts...), closing)
	var out []string
	for i := 0; i+1 < len(bounds); i++ {
		alt := pattern[bounds[i]+1 : bounds[i+1]]
		out = append(out, expandBraces(head+alt+tail)...)
	}
	return out
}

func settingsFrom(props map[string]string) *EditorConfigSettings {
	s := &EditorConfigSettings{}
	set := false
	positive := func(key string) int {
		n, err := strconv.Atoi(props[key])
		if err != nil || n <= 0 {
			return 0
		}
		set = true
		return n
	}

	s.IndentSize = positive("indent_size")
	s.MaxLineLength = positive("max_line_length")
	if v := props["end_of_line"]; v == "lf" || v == "crlf" {
		s.EndOfLine = v
		set = true
	}
	if v, ok := props["insert_final_newline"]; ok {
		b := v == "true"
		s.InsertFinalNewline = &b
		set = true
	}

	if !set {
		return nil
	}
	return s
}
