package render

import (
	"bytes"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// IndexLayout is the reserved layout name for the site index page. The index
// is only generated when the template store registers this name.
const IndexLayout = "index"

// IndexEntry is one post as seen by the index template: metadata plus the
// post's relative URL, without the rendered body.
type IndexEntry struct {
	Title      string
	Date       string
	Categories []string
	URL        string
}

// IndexData is the data the index layout sees.
type IndexData struct {
	Site  SiteMeta
	Posts []IndexEntry
}

// HasIndexLayout reports whether the store registers the index layout.
func (r *Renderer) HasIndexLayout() bool {
	_, err := r.layouts.Lookup(IndexLayout)
	return err == nil
}

// RenderIndex produces the listing page for the ordered posts.
func (r *Renderer) RenderIndex(site SiteMeta, posts []*post.Post) ([]byte, error) {
	tpl, err := r.layouts.Lookup(IndexLayout)
	if err != nil {
		return nil, errors.UnknownLayout(IndexLayout, "index")
	}

	entries := make([]IndexEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, IndexEntry{
			Title:      p.Title,
			Date:       p.Date.Format("2006-01-02"),
			Categories: p.Categories,
			URL:        "/" + p.Slug + "/",
		})
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, IndexData{Site: site, Posts: entries}); err != nil {
		return nil, errors.RenderFailed("index", err)
	}
	return buf.Bytes(), nil
}
