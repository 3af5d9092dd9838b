// Package markdown converts post bodies from Markdown to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders Markdown to HTML. It holds no per-document state, so one
// converter can serve concurrent renders; Convert is a pure function of its
// input bytes.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter builds a converter with GFM tables/strikethrough, footnotes,
// and raw inline HTML passed through (blog posts routinely embed HTML).
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
			goldmark.WithExtensions(extension.GFM, extension.Footnote),
		),
	}
}

// Convert renders a Markdown body (front matter already removed) to HTML.
func (c *Converter) Convert(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
