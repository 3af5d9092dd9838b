// Package watch keeps the site continuously built: it watches the content
// and layout directories, debounces change bursts into single rebuilds,
// optionally rebuilds on a fixed schedule, and serves the output directory.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// Watcher drives rebuild-on-change for one configuration.
type Watcher struct {
	cfg       *config.Config
	builder   *builder.Builder
	publisher Publisher
	server    *PreviewServer
	scheduler *Scheduler

	fsw     *fsnotify.Watcher
	trigger chan struct{}
}

// New wires a Watcher. publisher and server may be nil (replaced by noops).
func New(cfg *config.Config, b *builder.Builder, publisher Publisher, server *PreviewServer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		publisher = NoopPublisher{}
	}

	w := &Watcher{
		cfg:       cfg,
		builder:   b,
		publisher: publisher,
		server:    server,
		fsw:       fsw,
		trigger:   make(chan struct{}, 1),
	}

	for _, dir := range []string{cfg.Content.Dir, cfg.Layouts.Dir} {
		if err := addRecursive(fsw, dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	if cfg.Watch.RebuildIntervalDuration > 0 {
		sched, err := NewScheduler()
		if err != nil {
			fsw.Close()
			return nil, err
		}
		if err := sched.SchedulePeriodicRebuild(cfg.Watch.RebuildIntervalDuration, w.requestBuild); err != nil {
			fsw.Close()
			return nil, err
		}
		w.scheduler = sched
	}

	return w, nil
}

// Run blocks until ctx is cancelled. It performs an initial build, then
// rebuilds whenever the watcher or scheduler requests one.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer w.publisher.Close()

	if w.scheduler != nil {
		w.scheduler.Start()
		defer func() {
			if err := w.scheduler.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}
	if w.server != nil {
		go w.server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = w.server.Stop(shutdownCtx)
		}()
	}

	w.build(ctx)

	go w.watchLoop(ctx)

	var debounce *time.Timer
	var debounceC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.trigger:
			// Collapse bursts of events into one rebuild.
			if debounce == nil {
				debounce = time.NewTimer(w.cfg.Watch.DebounceDuration)
				debounceC = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.cfg.Watch.DebounceDuration)
			}
		case <-debounceC:
			debounce = nil
			debounceC = nil
			w.build(ctx)
		}
	}
}

func (w *Watcher) requestBuild() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) build(ctx context.Context) {
	report, err := w.builder.Run(ctx)
	if err != nil {
		slog.Error("Rebuild failed", logfields.Error(err))
	}
	if report == nil {
		return
	}
	if w.server != nil {
		w.server.SetReport(report)
	}
	if err := w.publisher.PublishReport(report); err != nil {
		slog.Warn("Failed to publish build report", logfields.Error(err))
	}
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			// New directories must be watched before their files change.
			if event.Op.Has(fsnotify.Create) {
				_ = addRecursive(w.fsw, event.Name)
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			w.requestBuild()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) && event.Op&^fsnotify.Chmod == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}

func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	// fsnotify watches are not recursive; walk and add each directory.
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Paths can vanish mid-walk; skip rather than fail.
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
