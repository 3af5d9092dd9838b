// Package metrics records build observability counters.
//
// Components receive a Recorder through dependency injection; the default is
// NoopRecorder, so metrics cost nothing unless a real implementation (the
// Prometheus recorder used by watch mode) is injected.
package metrics

import "time"

// Recorder defines the build metrics surface.
type Recorder interface {
	ObserveBuildDuration(d time.Duration, success bool)
	IncPostsParsed(n int)
	IncPostsRendered(n int)
	IncError(category string)
}

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

func (NoopRecorder) ObserveBuildDuration(time.Duration, bool) {}
func (NoopRecorder) IncPostsParsed(int)                       {}
func (NoopRecorder) IncPostsRendered(int)                     {}
func (NoopRecorder) IncError(string)                          {}
