package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
)

// ErrorMode controls how the collector reacts to per-file failures.
type ErrorMode string

const (
	// ErrorModeCollect gathers every failure and keeps processing; errors are
	// reported in aggregate at the end of the run.
	ErrorModeCollect ErrorMode = "collect"
	// ErrorModeFailFast aborts on the first failing file.
	ErrorModeFailFast ErrorMode = "fail_fast"
)

// CollectOptions configures a collection run.
type CollectOptions struct {
	ErrorMode ErrorMode
	// Workers bounds parse parallelism. Parsing is pure per file, so
	// parallelism is an optimization only; output order never depends on it.
	Workers int
}

// DiscoverSources walks dir and returns every Markdown file path, sorted
// lexicographically. The sorted order is the stable "input order" used as the
// date-sort tie-breaker.
func DiscoverSources(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".md" || ext == ".markdown" {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "content discovery failed").
			WithContext("dir", dir)
	}
	sort.Strings(sources)
	return sources, nil
}

// Collect parses every source file and produces the ordered Site.
//
// Per-file failures (malformed front matter, unparseable dates, unreadable
// files) never abort the other files in collect mode; they come back in the
// returned error slice. Posts without a parseable date are excluded from the
// ordered sequence; the recorded date error is their only trace.
func Collect(ctx context.Context, sources []string, opts CollectOptions) (*Site, []error) {
	if opts.ErrorMode == ErrorModeFailFast {
		return collectFailFast(ctx, sources)
	}
	return collectAll(ctx, sources, opts.Workers)
}

func collectFailFast(ctx context.Context, sources []string) (*Site, []error) {
	posts := make([]*post.Post, 0, len(sources))
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, []error{err}
		}
		p, err := parseSource(src, i)
		if err != nil {
			return nil, []error{err}
		}
		posts = append(posts, p)
	}
	return &Site{Posts: order(posts)}, nil
}

func collectAll(ctx context.Context, sources []string, workers int) (*Site, []error) {
	if workers > len(sources) {
		workers = len(sources)
	}
	if workers < 1 {
		workers = 1
	}

	// Results land in input-order slots so the pool size never influences the
	// final sequence.
	results := make([]*post.Post, len(sources))
	parseErrs := make([]error, len(sources))

	tasks := make(chan int)
	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for i := range tasks {
			select {
			case <-ctx.Done():
				return
			default:
			}
			results[i], parseErrs[i] = parseSource(sources[i], i)
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}
	// The send must also watch ctx, or a cancellation that empties the pool
	// leaves this loop blocked on a channel nobody reads.
send:
	for i := range sources {
		select {
		case tasks <- i:
		case <-ctx.Done():
			break send
		}
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, []error{err}
	}

	posts := make([]*post.Post, 0, len(sources))
	var errs []error
	for i := range sources {
		if parseErrs[i] != nil {
			errs = append(errs, parseErrs[i])
			continue
		}
		if results[i] != nil {
			posts = append(posts, results[i])
		}
	}
	return &Site{Posts: order(posts)}, errs
}

func parseSource(path string, idx int) (*post.Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ContentReadFailed(path, err)
	}
	p, err := post.Parse(path, content, idx)
	if err != nil {
		// A date error still leaves p populated, but the exclusion policy
		// drops the post from the ordered sequence.
		return nil, err
	}
	p.SourceHash = state.HashContent(content)
	return p, nil
}
