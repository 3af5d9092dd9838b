package markdown

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Excerpt extracts readable text from rendered HTML, truncated on a word
// boundary at maxLen runes. Used for feed descriptions.
func Excerpt(rendered []byte, maxLen int) string {
	text := extractText(rendered)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndexFunc(cut, unicode.IsSpace); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace) + "…"
}

func extractText(rendered []byte) string {
	node, err := html.Parse(bytes.NewReader(rendered))
	if err != nil {
		// Tokenizer-level failures are rare; fall back to the raw bytes.
		return string(rendered)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "li", "br", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteString(" ")
			}
		}
	}
	walk(node)

	return strings.Join(strings.Fields(b.String()), " ")
}
