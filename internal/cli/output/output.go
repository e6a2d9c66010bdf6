// Package output renders command results as text, markdown, or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Mode selects the rendering format.
type Mode string

const (
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out  io.Writer
	errW io.Writer
	mode Mode
}

// NewRenderer creates a renderer. Unknown modes fall back to text.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeText
	}
	return &Renderer{out: out, errW: errW, mode: mode}
}

// Mode returns the active rendering mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Println writes a plain line to stdout.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Success writes a success line.
func (r *Renderer) Success(s string) {
	_, _ = fmt.Fprintf(r.out, "✓ %s\n", s)
}

// Warning writes a warning line to stderr.
func (r *Renderer) Warning(s string) {
	_, _ = fmt.Fprintf(r.errW, "! %s\n", s)
}

// StatusLine writes a labeled status row.
func (r *Renderer) StatusLine(label, status, detail string) {
	mark := "✓"
	switch status {
	case "warn":
		mark = "!"
	case "error":
		mark = "✗"
	}
	if detail != "" {
		_, _ = fmt.Fprintf(r.out, "  %s %s: %s\n", mark, label, detail)
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", mark, label)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a header and rows, styled for the active mode.
func (r *Renderer) Table(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	if r.mode == ModeMarkdown {
		t.SetStyle(table.StyleDefault)
	} else {
		t.SetStyle(table.StyleLight)
	}
	t.AppendHeader(header)
	t.AppendRows(rows)
	if r.mode == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
