package builder

import (
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// ReportError is one per-file failure, flattened for reporting and for
// publication over the watch event bus.
type ReportError struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Report summarizes one generation run.
type Report struct {
	BuildID       string        `json:"build_id"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	SourcesFound  int           `json:"sources_found"`
	PostsParsed   int           `json:"posts_parsed"`
	PostsRendered int           `json:"posts_rendered"`
	PostsSkipped  int           `json:"posts_skipped"` // Unchanged, skipped by incremental build
	Errors        []ReportError `json:"errors,omitempty"`
	Success       bool          `json:"success"`
}

func (r *Report) recordError(err error) {
	r.Errors = append(r.Errors, ReportError{
		Category: string(errors.GetCategory(err)),
		Message:  err.Error(),
	})
}
