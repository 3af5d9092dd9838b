package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/layout"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
)

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	store, err := layout.NewFromMap(map[string]string{"post": "{{.Content}}"})
	require.NoError(t, err)
	return render.New(store)
}

func testPosts() []*post.Post {
	return []*post.Post{
		{
			Title:      "Newest",
			Slug:       "newest",
			Date:       time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC),
			HasDate:    true,
			Categories: []string{"rust", "gui"},
			Body:       []byte("Fresh *content* here."),
		},
		{
			Title:   "Older",
			Slug:    "older",
			Date:    time.Date(2018, 5, 8, 0, 0, 0, 0, time.UTC),
			HasDate: true,
			Body:    []byte("Old words."),
		},
	}
}

func TestGenerate_RSSShape(t *testing.T) {
	site := render.SiteMeta{
		Title:       "My Blog",
		BaseURL:     "https://example.com",
		Description: "words about things",
	}
	now := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)

	out, err := Generate(site, testPosts(), testRenderer(t), 10, now)
	require.NoError(t, err)

	text := string(out)
	require.Contains(t, text, `<rss version="2.0">`)
	require.Contains(t, text, "<title>My Blog</title>")
	require.Contains(t, text, "<link>https://example.com/newest/</link>")
	require.Contains(t, text, "<category>rust</category>")
	// Markdown markup is stripped from descriptions.
	require.Contains(t, text, "<description>Fresh content here.</description>")
	require.NotContains(t, text, "<em>")
}

func TestGenerate_RespectsLimit(t *testing.T) {
	out, err := Generate(render.SiteMeta{BaseURL: "https://e.com"}, testPosts(), testRenderer(t), 1, time.Now())
	require.NoError(t, err)
	require.Contains(t, string(out), "Newest")
	require.NotContains(t, string(out), "Older")
}

func TestGenerate_Deterministic(t *testing.T) {
	site := render.SiteMeta{Title: "B", BaseURL: "https://e.com"}
	now := time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC)
	r := testRenderer(t)

	first, err := Generate(site, testPosts(), r, 0, now)
	require.NoError(t, err)
	second, err := Generate(site, testPosts(), r, 0, now)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
