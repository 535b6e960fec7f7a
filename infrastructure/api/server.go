package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apimiddleware "github.com/investmatch/investmatch/infrastructure/api/middleware"
)

// Timeouts bounds the listener's connection phases. Per-request deadlines
// are set by route groups.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

// DefaultTimeouts returns the listener defaults. Write stays above the API
// route timeout so handlers can finish their error response.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		ReadHeader: 10 * time.Second,
		Read:       30 * time.Second,
		Write:      90 * time.Second,
		Idle:       120 * time.Second,
	}
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithTimeouts overrides the listener timeouts.
func WithTimeouts(t Timeouts) ServerOption {
	return func(s *Server) { s.timeouts = t }
}

// Server is the HTTP listener with the standard middleware chain.
type Server struct {
	router   chi.Router
	logger   *slog.Logger
	addr     string
	timeouts Timeouts

	mu         *sync.Mutex
	httpServer *http.Server
}

// NewServer creates a Server listening on addr. Every request gets a
// request id, the client IP, a correlation id, an access log line and panic
// recovery.
func NewServer(addr string, logger *slog.Logger, opts ...ServerOption) Server {
	if logger == nil {
		logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(apimiddleware.CorrelationID)
	router.Use(apimiddleware.Logging(logger))
	router.Use(chimiddleware.Recoverer)

	s := Server{
		router:   router,
		logger:   logger,
		addr:     addr,
		timeouts: DefaultTimeouts(),
		mu:       &sync.Mutex{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Router returns the chi router for registering routes.
func (s Server) Router() chi.Router {
	return s.router
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.timeouts.ReadHeader,
		ReadTimeout:       s.timeouts.Read,
		WriteTimeout:      s.timeouts.Write,
		IdleTimeout:       s.timeouts.Idle,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", slog.String("addr", s.addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests. It is a no-op before Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.logger.Info("shutting down HTTP server")
	return srv.Shutdown(ctx)
}

// Addr returns the server address.
func (s Server) Addr() string {
	return s.addr
}
