// Package builder orchestrates a generation run: sync content, collect
// posts, render them through their layouts, and write the output site.
package builder

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/errors"
	"git.home.luguber.info/inful/blogbuilder/internal/feed"
	"git.home.luguber.info/inful/blogbuilder/internal/gitsource"
	"git.home.luguber.info/inful/blogbuilder/internal/layout"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
	"git.home.luguber.info/inful/blogbuilder/internal/post"
	"git.home.luguber.info/inful/blogbuilder/internal/render"
	"git.home.luguber.info/inful/blogbuilder/internal/site"
	"git.home.luguber.info/inful/blogbuilder/internal/state"
)

// Builder runs generation passes for one configuration.
type Builder struct {
	cfg      *config.Config
	recorder metrics.Recorder
	store    *state.Store // nil when incremental builds are off
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder injects a metrics recorder (default: noop).
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithStateStore injects the build-state store used for incremental builds
// and run history.
func WithStateStore(s *state.Store) Option {
	return func(b *Builder) { b.store = s }
}

func New(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executes one full generation pass. Per-file failures land in the
// report; the returned error is reserved for conditions that prevent the run
// itself (unreadable layouts, unwritable output, failed content sync).
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:   uuid.NewString(),
		StartedAt: time.Now(),
	}
	slog.Info("Starting build", logfields.BuildID(report.BuildID))

	err := b.run(ctx, report)
	report.Duration = time.Since(report.StartedAt)
	report.Success = err == nil && len(report.Errors) == 0

	b.recorder.ObserveBuildDuration(report.Duration, report.Success)
	for _, re := range report.Errors {
		b.recorder.IncError(re.Category)
	}
	b.recordRun(ctx, report)

	if err != nil {
		slog.Error("Build failed",
			logfields.BuildID(report.BuildID),
			logfields.Error(err),
			logfields.DurationMS(float64(report.Duration.Milliseconds())))
		return report, err
	}

	slog.Info("Build finished",
		logfields.BuildID(report.BuildID),
		logfields.Count(report.PostsRendered),
		slog.Int("errors", len(report.Errors)),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func (b *Builder) run(ctx context.Context, report *Report) error {
	if b.cfg.Content.Git != nil {
		slog.Debug("Build stage", logfields.Stage("sync"))
		if err := gitsource.Sync(ctx, b.cfg.Content.Dir, b.cfg.Content.Git); err != nil {
			return err
		}
	}

	slog.Debug("Build stage", logfields.Stage("layouts"))
	layouts, err := layout.LoadDir(b.cfg.Layouts.Dir)
	if err != nil {
		return errors.BuildFailed("layouts", err)
	}
	renderer := render.New(layouts)

	slog.Debug("Build stage", logfields.Stage("discover"))
	sources, err := site.DiscoverSources(b.cfg.Content.Dir)
	if err != nil {
		return err
	}
	report.SourcesFound = len(sources)

	slog.Debug("Build stage", logfields.Stage("collect"), logfields.Count(len(sources)))
	s, collectErrs := site.Collect(ctx, sources, site.CollectOptions{
		ErrorMode: b.cfg.Build.ErrorMode,
		Workers:   b.cfg.Build.Workers,
	})
	for _, cerr := range collectErrs {
		report.recordError(cerr)
	}
	if s == nil {
		// Fail-fast mode aborted the run on the first failing file.
		return errors.BuildFailed("collect", collectErrs[0])
	}
	report.PostsParsed = len(s.Posts)
	b.recorder.IncPostsParsed(len(s.Posts))

	if err := b.prepareOutput(); err != nil {
		return err
	}

	slog.Debug("Build stage", logfields.Stage("render"), logfields.Count(len(s.Posts)))
	if err := b.renderPosts(ctx, report, renderer, s); err != nil {
		return err
	}

	if renderer.HasIndexLayout() {
		doc, err := renderer.RenderIndex(b.siteMeta(), s.Posts)
		if err != nil {
			report.recordError(err)
		} else if err := b.writeOutput("index.html", doc); err != nil {
			return err
		}
	}

	if b.cfg.Feed.Enabled {
		slog.Debug("Build stage", logfields.Stage("feed"))
		doc, err := feed.Generate(b.siteMeta(), s.Posts, renderer, b.cfg.Feed.Limit, time.Now())
		if err != nil {
			report.recordError(errors.Wrap(err, errors.CategoryRender, errors.SeverityError, "feed generation failed"))
		} else if err := b.writeOutput(b.cfg.Feed.Path, doc); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) siteMeta() render.SiteMeta {
	return render.SiteMeta{
		Title:       b.cfg.Site.Title,
		BaseURL:     b.cfg.Site.BaseURL,
		Description: b.cfg.Site.Description,
		Author:      b.cfg.Site.Author,
	}
}

func (b *Builder) prepareOutput() error {
	if b.cfg.Output.Clean {
		if err := os.RemoveAll(b.cfg.Output.Directory); err != nil {
			return errors.OutputError("clean", err)
		}
	}
	if err := os.MkdirAll(b.cfg.Output.Directory, 0o755); err != nil {
		return errors.OutputError("mkdir", err)
	}
	return nil
}

func (b *Builder) renderPosts(ctx context.Context, report *Report, renderer *render.Renderer, s *site.Site) error {
	incremental := b.cfg.Build.Incremental && b.store != nil && !b.cfg.Output.Clean
	meta := b.siteMeta()

	slugs := uniqueSlugs(s.Posts)
	kept := make(map[string]struct{}, len(s.Posts))

	for i, p := range s.Posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		kept[p.SourcePath] = struct{}{}
		outPath := filepath.Join(slugs[i], "index.html")

		if incremental && b.unchanged(ctx, p, outPath) {
			report.PostsSkipped++
			continue
		}

		doc, err := renderer.Render(meta, p)
		if err != nil {
			report.recordError(err)
			continue
		}
		if err := b.writeOutput(outPath, doc); err != nil {
			return err
		}
		report.PostsRendered++

		if b.store != nil {
			if err := b.store.SetSourceHash(ctx, p.SourcePath, p.SourceHash); err != nil {
				report.recordError(errors.StateError("set_hash", err))
			}
		}
	}
	b.recorder.IncPostsRendered(report.PostsRendered)

	if b.store != nil {
		if err := b.store.PruneSources(ctx, kept); err != nil {
			report.recordError(errors.StateError("prune", err))
		}
	}
	return nil
}

func (b *Builder) unchanged(ctx context.Context, p *post.Post, outPath string) bool {
	stored, err := b.store.SourceHash(ctx, p.SourcePath)
	if err != nil || stored == "" || stored != p.SourceHash {
		return false
	}
	_, err = os.Stat(filepath.Join(b.cfg.Output.Directory, outPath))
	return err == nil
}

func (b *Builder) writeOutput(relPath string, content []byte) error {
	full := filepath.Join(b.cfg.Output.Directory, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.OutputError("mkdir", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return errors.OutputError("write", err)
	}
	return nil
}

func (b *Builder) recordRun(ctx context.Context, report *Report) {
	if b.store == nil {
		return
	}
	err := b.store.RecordBuild(ctx, state.BuildRecord{
		ID:         report.BuildID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.StartedAt.Add(report.Duration),
		Posts:      report.PostsRendered,
		Errors:     len(report.Errors),
	})
	if err != nil {
		slog.Warn("Failed to record build run", logfields.Error(err))
	}
}

// uniqueSlugs maps each post (by position) to a directory slug, disambiguating
// collisions with a numeric suffix in input order.
func uniqueSlugs(posts []*post.Post) []string {
	out := make([]string, len(posts))
	seen := make(map[string]int, len(posts))

	// Assign in input order so suffixes are stable regardless of date sort.
	byOrder := make([]int, len(posts))
	for i := range posts {
		byOrder[i] = i
	}
	sort.SliceStable(byOrder, func(a, c int) bool { return posts[byOrder[a]].Order < posts[byOrder[c]].Order })

	for _, i := range byOrder {
		slug := posts[i].Slug
		if slug == "" {
			base := filepath.Base(posts[i].SourcePath)
			slug = post.Slugify(strings.TrimSuffix(base, filepath.Ext(base)))
		}
		if slug == "" {
			slug = "post"
		}
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug = slug + "-" + strconv.Itoa(n)
		}
		out[i] = slug
	}
	return out
}
