package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/slidemenu/pkg/metric"
)

const (
	// DefaultPort is the default debug server port.
	DefaultPort = 9876

	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the maximum duration to wait for active connections
	// to close once the menu exits.
	DefaultShutdownTimeout = 2 * time.Second

	// DefaultMaxHeaderBytes limits request header size.
	DefaultMaxHeaderBytes = 1 << 16 // 64 KB
)

// Server exposes the menu's metrics, health, and definition while the
// terminal program runs.
type Server interface {
	// Serve starts the HTTP server and blocks until the context is canceled.
	// Returns nil on successful graceful shutdown.
	Serve(ctx context.Context) error

	// IsRunning returns true once the socket is bound and until shutdown.
	IsRunning() bool

	// Handler returns the server's request multiplexer.
	Handler() http.Handler
}

// server is the internal implementation of the Server interface.
type server struct {
	mux             *http.ServeMux
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	maxHeaderBytes  int
	errLog          *log.Logger
	mu              sync.RWMutex
	running         bool
}

// Option is a functional option for configuring the Server.
type Option func(*server)

// WithPort listens on all interfaces at port.
func WithPort(port int) Option {
	return func(s *server) { s.addr = fmt.Sprintf(":%d", port) }
}

// WithAddr listens on addr, e.g. "127.0.0.1:0".
func WithAddr(addr string) Option {
	return func(s *server) { s.addr = addr }
}

// WithShutdownTimeout sets the maximum duration to wait for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *server) { s.shutdownTimeout = d }
}

// WithErrorLog sets the logger for errors from the underlying http.Server.
func WithErrorLog(l *log.Logger) Option {
	return func(s *server) { s.errLog = l }
}

// WithHandler registers a custom HTTP handler for the specified pattern.
func WithHandler(pattern string, handler http.Handler) Option {
	return func(s *server) {
		s.mux.Handle(pattern, handler)
	}
}

// WithMetrics serves the registry at /metrics.
func WithMetrics(reg prometheus.Gatherer) Option {
	return WithHandler("/metrics", metric.GetHandlerForRegistry(reg))
}

// WithSimpleHealth adds a /healthz endpoint that always returns 200 OK.
func WithSimpleHealth() Option {
	return func(s *server) {
		s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}
}

// New creates a new debug server with the provided options.
func New(opts ...Option) Server {
	s := &server{
		addr:            fmt.Sprintf(":%d", DefaultPort),
		readTimeout:     DefaultReadTimeout,
		writeTimeout:    DefaultWriteTimeout,
		idleTimeout:     DefaultIdleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		maxHeaderBytes:  DefaultMaxHeaderBytes,
		mux:             http.NewServeMux(),
		errLog:          log.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	slog.Debug("server initialized", "addr", s.addr)

	return s
}

// Handler implements Server.
func (s *server) Handler() http.Handler { return s.mux }

// IsRunning implements Server. It is safe for concurrent use.
func (s *server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.running
}

func (s *server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}

// Serve binds the socket, then serves until ctx is canceled. One goroutine
// runs the server, the other waits for cancellation and shuts it down.
func (s *server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.addr,
		Handler:        s.mux,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		ErrorLog:       s.errLog,
	}

	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	slog.Info("starting debug server", "addr", listener.Addr().String())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.setRunning(true)
		defer s.setRunning(false)

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		slog.Info("debug server stopped")

		return nil
	})

	return g.Wait()
}
