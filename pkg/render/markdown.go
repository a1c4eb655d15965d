// Package render turns chat text into sanitized HTML and sanitized HTML into
// terminal output.
package render

import (
	"bytes"
	"html"
	"strings"

	"charm.land/glamour/v2"
	"charm.land/glamour/v2/styles"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/k3a/html2text"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Placeholder is rendered in place of a missing message body.
const Placeholder = `<p><em>(no response)</em></p>`

var (
	// Raw HTML is kept at parse time so the sanitizer, not the parser, decides
	// what survives.
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	policy = bluemonday.UGCPolicy()
)

// ToSafeHTML converts markdown to HTML and strips anything executable.
func ToSafeHTML(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return policy.Sanitize("<p>" + html.EscapeString(text) + "</p>")
	}
	return policy.Sanitize(buf.String())
}

// PlainText strips markup from sanitized HTML.
func PlainText(safeHTML string) string {
	return strings.TrimSpace(html2text.HTML2Text(safeHTML))
}

// Renderer draws sanitized HTML for the terminal.
type Renderer struct {
	width int
	dark  bool
	term  *glamour.TermRenderer
}

func NewRenderer(width int, dark bool) *Renderer {
	r := &Renderer{width: width, dark: dark}

	style := styles.LightStyleConfig
	if dark {
		style = styles.DarkStyleConfig
	}
	// A nil renderer sends every call through the plain-text path.
	r.term, _ = glamour.NewTermRenderer(
		glamour.WithWordWrap(max(min(width, 120), 20)),
		glamour.WithStyles(style),
	)
	return r
}

func (r *Renderer) Width() int { return r.width }

func (r *Renderer) Dark() bool { return r.dark }

// Render converts sanitized HTML back to markdown and draws it with glamour.
// Any conversion failure falls back to plain text.
func (r *Renderer) Render(safeHTML string) string {
	if r.term == nil {
		return PlainText(safeHTML)
	}
	md, err := htmltomarkdown.ConvertString(safeHTML)
	if err != nil {
		return PlainText(safeHTML)
	}
	out, err := r.term.Render(md)
	if err != nil {
		return PlainText(safeHTML)
	}
	return strings.Trim(out, "\n")
}
