package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when the clipboard output is not a terminal.
var ErrNotTerminal = errors.New("stdout is not a terminal")

// OSC52 copies text through the terminal emulator with the OSC 52
// escape sequence, which also works over SSH.
type OSC52 struct {
	out      io.Writer
	terminal bool
}

// NewOSC52 writes escape sequences to f when f is a terminal.
func NewOSC52(f *os.File) *OSC52 {
	return &OSC52{out: f, terminal: term.IsTerminal(int(f.Fd()))}
}

func (c *OSC52) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !c.terminal {
		return ErrNotTerminal
	}
	_, err := fmt.Fprintf(c.out, "\x1b]52;c;%s\a", base64.StdEncoding.EncodeToString([]byte(text)))
	return err
}
