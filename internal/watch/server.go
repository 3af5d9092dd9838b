package watch

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/builder"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
)

// PreviewServer serves the generated site plus status and metrics endpoints
// while watch mode runs.
type PreviewServer struct {
	server *http.Server

	mu         sync.RWMutex
	lastReport *builder.Report
}

// NewPreviewServer serves outputDir on addr. metricsHandler may be nil.
func NewPreviewServer(addr, outputDir string, metricsHandler http.Handler) *PreviewServer {
	ps := &PreviewServer{}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(outputDir)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/status", ps.handleStatus)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	ps.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return ps
}

// SetReport records the latest build report for /status.
func (ps *PreviewServer) SetReport(report *builder.Report) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.lastReport = report
}

func (ps *PreviewServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	ps.mu.RLock()
	report := ps.lastReport
	ps.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if report == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "no build yet"})
		return
	}
	_ = json.NewEncoder(w).Encode(report)
}

// Start runs the server until ListenAndServe returns.
func (ps *PreviewServer) Start() {
	slog.Info("Preview server listening", slog.String("addr", ps.server.Addr))
	if err := ps.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Preview server failed", logfields.Error(err))
	}
}

// Stop shuts the server down gracefully.
func (ps *PreviewServer) Stop(ctx context.Context) error {
	return ps.server.Shutdown(ctx)
}
