// Package api provides the HTTP surface of the chatbot.
//
// Endpoints:
//
//	POST /api/v1/chat   - interpret one query, return the reply
//	GET  /api/v1/stats  - record counts
//	GET  /health        - liveness probe
//	GET  /ready         - readiness probe (DB ping)
//	GET  /metrics       - Prometheus metrics
//	GET  /exports/...   - generated export artifacts
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: HTTP middleware (logging, recovery)
//   - health.go: health check endpoints
//   - chat.go: chat and stats endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adarshkumar7463/army-chatbot/internal/chatbot"
	"github.com/adarshkumar7463/army-chatbot/internal/log"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:8080"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout is the timeout for reading request headers.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout = 60 * time.Second

	// IdleTimeout is the maximum time to wait for the next request on
	// keep-alive connections.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the chatbot API.
type Server struct {
	mux    *http.ServeMux
	logger log.Logger

	health *HealthHandler
	chat   *ChatHandler
}

// NewServer creates an HTTP server with all routes registered. pool may be
// nil when running against the in-memory store; readiness then reports ok
// without a ping. exportDir may be empty to disable artifact serving.
func NewServer(engine *chatbot.Engine, stats StatsStore, pool *pgxpool.Pool,
	exportDir string, logger log.Logger) *Server {

	mux := http.NewServeMux()
	s := &Server{
		mux:    mux,
		logger: logger,
		health: NewHealthHandler(pool, logger),
		chat:   NewChatHandler(engine, stats, logger),
	}

	s.health.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())
	if exportDir != "" {
		mux.Handle("GET /exports/",
			http.StripPrefix("/exports/", http.FileServer(http.Dir(exportDir))))
	}
	return s
}

// Handler returns the HTTP handler with middleware applied.
// Middleware order: recovery, then logging, then the mux.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		loggingMiddleware(s.logger))
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
