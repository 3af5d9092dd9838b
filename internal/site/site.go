// Package site collects parsed posts into the ordered, read-only collection
// a generation run renders from.
package site

import (
	"sort"

	"git.home.luguber.info/inful/blogbuilder/internal/post"
)

// Site is the process-wide collection of posts for one generation run. It is
// constructed once per run and read-only afterwards; nothing persists across
// runs.
type Site struct {
	Posts []*post.Post // Ordered: date descending, ties by input order
}

// order sorts posts by descending date. The sort is stable, so posts with
// equal dates keep their input order and repeated runs produce identical
// sequences.
func order(posts []*post.Post) []*post.Post {
	sorted := make([]*post.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}
