package post

import (
	"fmt"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/frontmatter"
)

// Parse turns raw file content into a Post.
//
// Recognized keys (layout, title, date, categories) are validated here, at
// parse time, so that shape problems surface as front matter errors rather
// than later at render time. Files without a front matter block are valid:
// they produce a post with empty metadata and the whole content as body.
//
// A missing or unparseable date is reported as a CategoryDate error; the
// returned post is still populated so callers can decide what to do with it.
func Parse(sourcePath string, content []byte, order int) (*Post, error) {
	fields, body, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errors.MalformedFrontMatter(sourcePath, err)
	}

	p := &Post{
		Body:       body,
		SourcePath: sourcePath,
		Order:      order,
		Extra:      map[string]any{},
	}

	for key, value := range fields {
		switch key {
		case "layout":
			s, err := scalarString(value)
			if err != nil {
				return nil, errors.MalformedFrontMatter(sourcePath, fmt.Errorf("layout: %w", err))
			}
			p.Layout = s
		case "title":
			s, err := scalarString(value)
			if err != nil {
				return nil, errors.MalformedFrontMatter(sourcePath, fmt.Errorf("title: %w", err))
			}
			p.Title = s
		case "categories":
			cats, err := stringOrList(value)
			if err != nil {
				return nil, errors.MalformedFrontMatter(sourcePath, fmt.Errorf("categories: %w", err))
			}
			p.Categories = cats
		case "date":
			// Handled below so a bad date does not mask the rest of the metadata.
		default:
			p.Extra[key] = value
		}
	}

	p.Slug = Slugify(p.Title)

	rawDate, present := fields["date"]
	if !present {
		return p, errors.UnparseableDate(sourcePath, "")
	}
	parsed, err := ParseDate(rawDate)
	if err != nil {
		return p, errors.UnparseableDate(sourcePath, fmt.Sprint(rawDate))
	}
	p.Date = parsed
	p.HasDate = true
	return p, nil
}

// ParseDate accepts the date shapes seen in real front matter: a YAML
// timestamp (already a time.Time), or a string in one of the Jekyll-style
// layouts below.
func ParseDate(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseDateString(v)
	default:
		return time.Time{}, fmt.Errorf("date has unsupported type %T", value)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04 -0700",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDateString(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected a string, got %T", value)
	}
}

func stringOrList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("list item is %T, expected string", item)
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a string or list of strings, got %T", value)
	}
}
