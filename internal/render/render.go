// Package render combines a post with its layout template to produce the
// final output document.
package render

import (
	"bytes"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/layout"
	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// SiteMeta is the site-wide context exposed to layout templates.
type SiteMeta struct {
	Title       string
	BaseURL     string
	Description string
	Author      string
}

// PageData is the data a layout template sees. Content is the converted post
// body; the single substitution point in a minimal layout is {{.Content}}.
type PageData struct {
	Site       SiteMeta
	Title      string
	Date       time.Time
	HasDate    bool
	Categories []string
	Slug       string
	Content    string
}

// Renderer resolves layouts and converts post bodies. It performs no
// filesystem or network I/O; callers own template loading and output writing.
type Renderer struct {
	layouts   layout.Store
	converter *markdown.Converter
}

func New(layouts layout.Store) *Renderer {
	return &Renderer{
		layouts:   layouts,
		converter: markdown.NewConverter(),
	}
}

// Render produces the final document for one post: Markdown body to HTML,
// substituted into the post's layout. Same (post, template) input always
// yields byte-identical output.
//
// A missing layout is a CategoryLayout error; the caller treats it as
// recoverable per post, never as a run-level failure.
func (r *Renderer) Render(site SiteMeta, p *post.Post) ([]byte, error) {
	tpl, err := r.layouts.Lookup(p.Layout)
	if err != nil {
		return nil, errors.UnknownLayout(p.Layout, p.SourcePath)
	}

	content, err := r.converter.Convert(p.Body)
	if err != nil {
		return nil, errors.RenderFailed(p.SourcePath, err)
	}

	data := PageData{
		Site:       site,
		Title:      p.Title,
		Date:       p.Date,
		HasDate:    p.HasDate,
		Categories: p.Categories,
		Slug:       p.Slug,
		Content:    string(content),
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, errors.RenderFailed(p.SourcePath, err)
	}
	return buf.Bytes(), nil
}

// Convert exposes the renderer's Markdown conversion without layout wrapping,
// for callers that need bare HTML (the feed uses it for descriptions).
func (r *Renderer) Convert(body []byte) ([]byte, error) {
	return r.converter.Convert(body)
}
