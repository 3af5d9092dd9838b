// Package feed generates an RSS 2.0 feed from the newest posts.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/markdown"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

const excerptLen = 280

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category,omitempty"`
}

// Generate produces RSS 2.0 XML for up to limit posts. Posts must already be
// in date-descending order; item descriptions are plain-text excerpts of the
// rendered body.
func Generate(site render.SiteMeta, posts []*post.Post, r *render.Renderer, limit int, now time.Time) ([]byte, error) {
	if limit <= 0 || limit > len(posts) {
		limit = len(posts)
	}

	items := make([]item, 0, limit)
	for _, p := range posts[:limit] {
		rendered, err := r.Convert(p.Body)
		if err != nil {
			return nil, fmt.Errorf("convert %s for feed: %w", p.SourcePath, err)
		}
		items = append(items, item{
			Title:       p.Title,
			Link:        postURL(site.BaseURL, p.Slug),
			GUID:        postURL(site.BaseURL, p.Slug),
			PubDate:     p.Date.Format(time.RFC1123Z),
			Description: markdown.Excerpt(rendered, excerptLen),
			Categories:  p.Categories,
		})
	}

	doc := rss{
		Version: "2.0",
		Channel: channel{
			Title:         site.Title,
			Link:          site.BaseURL,
			Description:   site.Description,
			Language:      "en-us",
			LastBuildDate: now.Format(time.RFC1123Z),
			Items:         items,
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func postURL(baseURL, slug string) string {
	base := strings.TrimSuffix(baseURL, "/")
	return base + "/" + slug + "/"
}
