// Package post defines the parsed content model: one unit of authored
// Markdown plus the metadata recovered from its front matter.
package post

import (
	"time"
)

// Post is one unit of authored content. It is created by Parse and treated
// as read-only afterwards; rendering never mutates it.
type Post struct {
	Layout     string         // Name of the wrapping layout template
	Title      string
	Date       time.Time      // Zero when HasDate is false
	HasDate    bool
	Categories []string       // Normalized to a list; empty when absent
	Body       []byte         // Raw Markdown, front matter stripped
	Slug       string         // URL-safe identifier derived from the title
	SourcePath string         // Where the post came from, for reporting
	SourceHash string         // Hex sha256 of the source file, for incremental builds
	Order      int            // Stable input index, tie-breaker for equal dates
	Extra      map[string]any // Unrecognized front matter keys, preserved as-is
}

// RecognizedKeys are the front matter keys this builder interprets. Everything
// else is carried through in Extra without interpretation.
var RecognizedKeys = map[string]struct{}{
	"layout":     {},
	"title":      {},
	"date":       {},
	"categories": {},
}
