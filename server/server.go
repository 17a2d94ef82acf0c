// Package server serves the earthquake report over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/ka2n/yure/api"
	"github.com/ka2n/yure/display"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReportGenerator produces one report per call
type ReportGenerator interface {
	Generate(ctx context.Context) api.Result
}

// Server exposes the report, health, and metrics HTTP endpoints.
type Server struct {
	httpServer *http.Server
	generator  ReportGenerator
	stylizer   display.Stylizer
	clock      clockwork.Clock
	startedAt  time.Time
	logger     *slog.Logger
}

// Options configures a Server.
type Options struct {
	Addr     string
	Stylizer display.Stylizer
	Gatherer prometheus.Gatherer
	Clock    clockwork.Clock
	Logger   *slog.Logger
}

// New creates an HTTP server with /report, /healthz, and /metrics routes.
func New(gen ReportGenerator, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		generator: gen,
		stylizer:  opts.Stylizer,
		clock:     opts.Clock,
		startedAt: opts.Clock.Now(),
		logger:    opts.Logger,
	}

	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	style := display.StylePlain
	if v := r.URL.Query().Get("style"); v != "" {
		st, err := display.ParseStyle(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown style", "style": v})
			return
		}
		style = st
	}

	result := s.generator.Generate(r.Context())

	text, err := s.stylizer.Apply(string(result.Text), style)
	if err != nil {
		s.logger.Error("render report failed", "error", err, "style", style)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}

	status := http.StatusOK
	if result.Outcome == api.OutcomeFetchFailure {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Report-Outcome", string(result.Outcome))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"uptime": s.clock.Since(s.startedAt).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
