package slackhook

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ConsoleTransport renders messages to a writer instead of posting them,
// for local development and dry runs. Attachment fallbacks are colorized by
// their severity color when the writer is an interactive terminal.
type ConsoleTransport struct {
	w        io.Writer
	color    bool
	colorSet bool
	colors   map[string]*color.Color
}

// ConsoleOption configures a ConsoleTransport.
type ConsoleOption func(*ConsoleTransport)

// WithColor explicitly enables or disables colorized output, overriding the
// terminal detection default.
func WithColor(enabled bool) ConsoleOption {
	return func(t *ConsoleTransport) {
		t.color = enabled
		t.colorSet = true
	}
}

// NewConsoleTransport creates a transport writing previews to w. By default
// color is enabled only when w is a terminal.
func NewConsoleTransport(w io.Writer, opts ...ConsoleOption) *ConsoleTransport {
	t := &ConsoleTransport{w: w}

	for _, opt := range opts {
		opt(t)
	}

	if !t.colorSet {
		t.color = writerIsTerminal(w)
	}

	if t.color {
		t.colors = newAttachmentColors()
	}

	return t
}

// Send writes a one-preview-per-message rendering of the payload.
func (t *ConsoleTransport) Send(m Message) {
	var b bytes.Buffer

	if m.Username != "" {
		b.WriteString(m.Username)
		b.WriteString(": ")
	}

	b.WriteString(m.Text)

	for _, a := range m.Attachments {
		b.WriteString("\n  ")

		line := a.Fallback

		if c, ok := t.colors[a.Color]; ok {
			line = c.Sprint(line)
		}

		b.WriteString(line)
	}

	fmt.Fprintln(t.w, b.String())
}

// newAttachmentColors maps semantic attachment colors to terminal colors.
// The instances are force-enabled so the transport's own decision wins over
// the color package's global TTY detection.
func newAttachmentColors() map[string]*color.Color {
	warning := color.New(color.FgYellow)
	warning.EnableColor()

	danger := color.New(color.FgRed)
	danger.EnableColor()

	return map[string]*color.Color{
		ColorWarning: warning,
		ColorDanger:  danger,
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
