package clipboardx

import (
	"bytes"
	"errors"
	"testing"
)

func TestInternalCopyPaste(t *testing.T) {
	c := NewInternal()
	if err := c.Copy("first line\r\nsecond line\n"); !errors.Is(err, ErrInternalOnly) {
		t.Fatalf("expected ErrInternalOnly, got %v", err)
	}
	if got := c.Paste(); got != "first line\nsecond line" {
		t.Fatalf("expected normalized text, got %q", got)
	}
}

func TestOSC52(t *testing.T) {
	var out bytes.Buffer
	c := &Clipboard{osc52: &out}
	if err := c.Copy("hi"); err != nil {
		t.Fatalf("expected osc52 copy to succeed, got %v", err)
	}
	if got := out.String(); got != "\x1b]52;c;aGk=\x07" {
		t.Fatalf("unexpected escape %q", got)
	}

	out.Reset()
	if writeOSC52(&out, "") {
		t.Fatalf("expected empty text to be skipped")
	}
}
