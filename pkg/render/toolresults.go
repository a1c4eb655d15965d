package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docker/gemini-console/pkg/api"
)

var outputEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeOutput escapes the three characters that can open markup. It is
// applied to tool output before it is embedded.
func EscapeOutput(s string) string {
	return outputEscaper.Replace(s)
}

// ToolResults renders one markdown block per tool invocation.
func ToolResults(results []api.ToolResult) string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, ToolResult(r.Tool, r.Parameters, r.Result))
	}
	return strings.Join(blocks, "\n\n")
}

// ToolResult renders a single invocation.
func ToolResult(tool string, params map[string]any, outcome api.ToolOutcome) string {
	var b strings.Builder

	glyph := "✅"
	if !outcome.Success {
		glyph = "❌"
	}
	fmt.Fprintf(&b, "%s **%s**\n\n", glyph, EscapeOutput(tool))

	if params == nil {
		params = map[string]any{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		paramsJSON = []byte("{}")
	}
	b.WriteString("Parameters:\n\n")
	b.WriteString(Preformatted(string(paramsJSON)))

	body := outcome.OutputText()
	if !outcome.Success {
		body = outcome.Error
	}
	if body != "" {
		b.WriteString("\n\n")
		b.WriteString(Preformatted(body))
	}
	return b.String()
}

// Preformatted wraps text in an escaped pre block.
func Preformatted(text string) string {
	return "<pre><code>" + EscapeOutput(text) + "</code></pre>"
}
