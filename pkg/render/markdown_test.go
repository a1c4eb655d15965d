package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSafeHTMLStripsScripts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		text string
	}{
		{"inline script", "<script>alert(1)</script>hello", "hello"},
		{"script in paragraph", "hi <script>alert(1)</script> there", "hi there"},
		{"event handler", `<img src="x.png" onerror="alert(1)">ok`, "ok"},
		{"javascript link", "[click](javascript:alert(1))", "click"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := ToSafeHTML(tt.in)
			lower := strings.ToLower(out)
			assert.NotContains(t, lower, "<script")
			assert.NotContains(t, lower, "onerror")
			assert.NotContains(t, lower, "javascript:")
			assert.Contains(t, strings.Join(strings.Fields(PlainText(out)), " "), tt.text)
			assert.NotContains(t, PlainText(out), "alert")
		})
	}
}

func TestToSafeHTMLVisibleText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", PlainText(ToSafeHTML("<script>alert(1)</script>hello")))
}

func TestToSafeHTMLMarkdown(t *testing.T) {
	t.Parallel()

	out := ToSafeHTML("# Title\n\n**bold** and `code`\n\n| a | b |\n|---|---|\n| 1 | 2 |")

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<code>code</code>")
	assert.Contains(t, out, "<table>")
}

func TestRendererRendersMarkdown(t *testing.T) {
	t.Parallel()

	r := NewRenderer(80, true)
	assert.Equal(t, 80, r.Width())
	assert.True(t, r.Dark())

	out := r.Render(ToSafeHTML("hello **world**"))
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
	assert.NotContains(t, out, "<strong>")
}

func TestRendererPlaceholder(t *testing.T) {
	t.Parallel()

	out := NewRenderer(40, false).Render(Placeholder)
	assert.Contains(t, out, "no response")
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a & b", PlainText("<p>a &amp; b</p>"))
	assert.Empty(t, PlainText(""))
}

func TestHighlightSource(t *testing.T) {
	t.Parallel()

	out := HighlightSource("<p>hi</p>", true)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "hi")
}
