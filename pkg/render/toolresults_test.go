package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docker/gemini-console/pkg/api"
)

func TestEscapeOutput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&lt;b&gt;Tom &amp; Jerry&lt;/b&gt;", EscapeOutput("<b>Tom & Jerry</b>"))
	assert.Equal(t, `"quoted" 'single'`, EscapeOutput(`"quoted" 'single'`))
}

func TestToolResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tool     string
		params   map[string]any
		outcome  api.ToolOutcome
		contains []string
		excludes []string
	}{
		{
			name:     "success",
			tool:     "read_file",
			params:   map[string]any{"path": "a.go"},
			outcome:  api.ToolOutcome{Success: true, Output: "<html>"},
			contains: []string{"✅", "**read_file**", `<pre><code>{"path":"a.go"}</code></pre>`, "&lt;html&gt;"},
			excludes: []string{"❌", "<html>"},
		},
		{
			name:     "failure shows error",
			tool:     "run_command",
			outcome:  api.ToolOutcome{Success: false, Output: "ignored", Error: "exit 1"},
			contains: []string{"❌", "exit 1", "<pre><code>{}</code></pre>"},
			excludes: []string{"ignored"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := ToolResult(tt.tool, tt.params, tt.outcome)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestToolResultsSanitizedRoundTrip(t *testing.T) {
	t.Parallel()

	md := ToolResults([]api.ToolResult{
		{Tool: "a", Result: api.ToolOutcome{Success: true, Output: "<script>alert(1)</script>"}},
		{Tool: "b", Result: api.ToolOutcome{Success: false, Error: "nope"}},
	})

	text := PlainText(ToSafeHTML(md))
	assert.Contains(t, text, "<script>alert(1)</script>")
	assert.Contains(t, text, "nope")
	assert.NotContains(t, ToSafeHTML(md), "<script>")
}

func TestToolResultParametersKeepMarkdownCharacters(t *testing.T) {
	t.Parallel()

	md := ToolResult("grep", map[string]any{"pattern": `say "hi" *x* \d`}, api.ToolOutcome{Success: true})
	safe := ToSafeHTML(md)

	assert.NotContains(t, safe, "<em>")
	assert.Contains(t, PlainText(safe), `{"pattern":"say \"hi\" *x* \\d"}`)
}
