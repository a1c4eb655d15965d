package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// HighlightSource colors HTML source for the terminal. The input is returned
// untouched when highlighting fails.
func HighlightSource(source string, dark bool) string {
	style := "github"
	if dark {
		style = "monokai"
	}
	var b strings.Builder
	if err := quick.Highlight(&b, source, "html", "terminal256", style); err != nil {
		return source
	}
	return b.String()
}
