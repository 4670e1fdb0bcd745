package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/bookstore/pkg/books"
	"github.com/getmockd/bookstore/pkg/logging"
	"github.com/getmockd/bookstore/pkg/metrics"
)

// Config holds the listener settings for a Server.
type Config struct {
	// Addr is the book API listen address, e.g. ":3000".
	Addr string
	// MetricsAddr is the metrics listen address. Empty disables metrics serving.
	MetricsAddr string
	// ReadTimeout and WriteTimeout apply to both listeners.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the bookstore HTTP server.
type Server struct {
	store   *books.Store
	metrics *metrics.Metrics
	log     *slog.Logger
	cfg     Config

	handler http.Handler

	mu            sync.Mutex
	httpServer    *http.Server
	metricsServer *http.Server
	addr          string
	metricsAddr   string
}

// NewServer creates a Server for the given store.
func NewServer(store *books.Store, cfg Config) *Server {
	s := &Server{
		store: store,
		cfg:   cfg,
		log:   logging.Nop(),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	s.handler = s.withMiddleware(mux)

	return s
}

// SetLogger sets the logger.
func (s *Server) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetMetrics enables request metrics. The store should be constructed with
// books.WithObserver(m) for mutation metrics.
func (s *Server) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
	if m != nil {
		m.SetBooks(s.store.Len())
	}
}

// Handler returns the book API handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the listeners and serves in the background.
// It returns once both listeners are bound.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return errors.New("server already started")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.addr = ln.Addr().String()
	s.httpServer = s.newHTTPServer(s.handler)

	var metricsLn net.Listener
	if s.cfg.MetricsAddr != "" && s.metrics != nil {
		metricsLn, err = net.Listen("tcp", s.cfg.MetricsAddr)
		if err != nil {
			_ = ln.Close()
			s.httpServer = nil
			return fmt.Errorf("listen on %s: %w", s.cfg.MetricsAddr, err)
		}
		s.metricsAddr = metricsLn.Addr().String()

		mux := http.NewServeMux()
		mux.Handle("GET /metrics", s.metrics.Handler())
		s.metricsServer = s.newHTTPServer(mux)
	}

	s.log.Info("starting book API", "addr", s.addr)
	go s.serve(s.httpServer, ln, "book API")

	if s.metricsServer != nil {
		s.log.Info("starting metrics endpoint", "addr", s.metricsAddr)
		go s.serve(s.metricsServer, metricsLn, "metrics")
	}
	return nil
}

func (s *Server) newHTTPServer(h http.Handler) *http.Server {
	return &http.Server{
		Handler:      h,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
}

func (s *Server) serve(srv *http.Server, ln net.Listener, name string) {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("server error", "server", name, "error", err)
	}
}

// Stop gracefully shuts down every listener.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.httpServer != nil {
		errs = append(errs, s.httpServer.Shutdown(ctx))
	}
	if s.metricsServer != nil {
		errs = append(errs, s.metricsServer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// Addr returns the bound book API address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// MetricsAddr returns the bound metrics address, or "" when metrics are not served.
func (s *Server) MetricsAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metricsAddr
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", s.handleListBooks)
	mux.HandleFunc("POST /books", s.handleCreateBook)
	mux.HandleFunc("GET /books/{id}", s.handleGetBook)
	mux.HandleFunc("PUT /books/{id}", s.handleReplaceBook)
	mux.HandleFunc("PATCH /books/{id}", s.handlePatchBook)
	mux.HandleFunc("DELETE /books/{id}", s.handleDeleteBook)

	// Matches every method and path, so the mux never answers 405 on its own.
	mux.HandleFunc("/", s.handleRouteNotFound)
}
