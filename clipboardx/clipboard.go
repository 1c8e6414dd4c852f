package clipboardx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrInternalOnly means no system clipboard accepted the text; it is
// still available to Paste within this process.
var ErrInternalOnly = errors.New("clipboard: no system clipboard available, kept text internally")

type command struct {
	name string
	args []string
}

var copyCommands = []command{
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "pbcopy"},
	{name: "clip.exe"},
}

var pasteCommands = []command{
	{name: "wl-paste", args: []string{"--no-newline"}},
	{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--output"}},
	{name: "pbpaste"},
	{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
}

// Clipboard copies note text out of and into the editor. It tries the
// system clipboard, then clipboard commands, then an OSC 52 escape on the
// terminal, and always keeps a copy of its own.
type Clipboard struct {
	internal string
	system   bool
	commands bool
	osc52    io.Writer
}

func New() *Clipboard {
	c := &Clipboard{system: true, commands: true}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		c.osc52 = os.Stdout
	}
	return c
}

// NewInternal returns a clipboard that never leaves the process.
func NewInternal() *Clipboard {
	return &Clipboard{}
}

func (c *Clipboard) Copy(text string) error {
	c.internal = text
	ok := false

	if c.system {
		if err := clipboard.WriteAll(text); err == nil {
			ok = true
		}
	}
	if c.commands && writeWithCommands(text) {
		ok = true
	}
	if c.osc52 != nil && writeOSC52(c.osc52, text) {
		ok = true
	}

	if !ok {
		return ErrInternalOnly
	}
	return nil
}

// Paste returns the clipboard text with line endings normalized to "\n".
func (c *Clipboard) Paste() string {
	text := c.internal
	if c.system {
		if s, err := clipboard.ReadAll(); err == nil && s != "" {
			text = s
		} else if c.commands {
			if s, ok := readWithCommands(); ok && s != "" {
				text = s
			}
		}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimRight(text, "\n")
}

func writeWithCommands(text string) bool {
	ok := false
	for _, cmdCfg := range copyCommands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		cmd := exec.Command(cmdCfg.name, cmdCfg.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readWithCommands() (string, bool) {
	for _, cmdCfg := range pasteCommands {
		if _, err := exec.LookPath(cmdCfg.name); err != nil {
			continue
		}
		out, err := exec.Command(cmdCfg.name, cmdCfg.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func writeOSC52(w io.Writer, text string) bool {
	if text == "" {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
