package output

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_FallsBackToText(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, Mode("bogus"))
	assert.Equal(t, ModeText, r.Mode())
}

func TestRendererLines(t *testing.T) {
	out := &bytes.Buffer{}
	errW := &bytes.Buffer{}
	r := NewRenderer(out, errW, ModeText)

	r.Println("hello")
	r.Success("done")
	r.Warning("careful")
	r.StatusLine("store", "error", "unreachable")

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "✓ done")
	assert.Contains(t, errW.String(), "careful")
	assert.Contains(t, out.String(), "✗ store: unreachable")
}

func TestRendererJSON(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewRenderer(out, &bytes.Buffer{}, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"count": 3}))
	assert.JSONEq(t, `{"count":3}`, out.String())
}

func TestRendererTable(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want string
	}{
		{name: "text style", mode: ModeText, want: "Ana"},
		{name: "markdown style", mode: ModeMarkdown, want: "| Ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			r := NewRenderer(out, &bytes.Buffer{}, tt.mode)

			r.Table(table.Row{"Name", "Email"}, []table.Row{{"Ana", "ana@acme.com"}})

			assert.Contains(t, out.String(), tt.want)
		})
	}
}
