package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_ExposesCounters(t *testing.T) {
	r := NewPrometheusRecorder()
	r.IncPostsParsed(3)
	r.IncPostsRendered(2)
	r.IncError("date")
	r.ObserveBuildDuration(120*time.Millisecond, true)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	require.Contains(t, text, "blogbuilder_posts_parsed_total 3")
	require.Contains(t, text, "blogbuilder_posts_rendered_total 2")
	require.Contains(t, text, `blogbuilder_errors_total{category="date"} 1`)
	require.Contains(t, text, "blogbuilder_build_duration_seconds")
}

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncPostsParsed(1)
	r.IncPostsRendered(1)
	r.IncError("layout")
	r.ObserveBuildDuration(time.Second, false)
}
