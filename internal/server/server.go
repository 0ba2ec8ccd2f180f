// Package server exposes the tutor and the planting core as a JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/tutor"
)

const healthMessage = "arbor tree-planting tutor is running"

// Server handles the HTTP API.
type Server struct {
	tutor    *tutor.Tutor
	cfg      config.ServerConfig
	events   store.EventRepo
	sessions *chatSessions
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithEvents records checked answers.
func WithEvents(repo store.EventRepo) Option {
	return func(s *Server) { s.events = repo }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a server over t.
func New(t *tutor.Tutor, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		tutor:  t,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = newChatSessions(cfg.SessionTTL, s.now)
	return s
}

// Handler returns the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/chat", s.handleChat(s.tutor.Chat))
	mux.HandleFunc("POST /api/practice/chat", s.handleChat(s.tutor.PracticeChat))
	mux.HandleFunc("POST /api/practice/generate-question", s.handleGenerateQuestion)
	mux.HandleFunc("POST /api/practice/check-answer", s.handleCheckAnswer)
	mux.HandleFunc("POST /api/practice/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /api/planting/count", s.handleCount)
	mux.HandleFunc("POST /api/planting/sample", s.handleSample)
	mux.HandleFunc("GET /api/planting/questions", s.handleQuestions)
	mux.HandleFunc("/", s.handleNotFound)
	return s.logRequests(s.cors(mux))
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts
// down within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
