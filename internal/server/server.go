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

	"github.com/alnah/go-staticpage/internal/logfields"
	"github.com/alnah/go-staticpage/internal/metrics"
)

// Grace periods applied by Shutdown.
const (
	ProductionGracePeriod  = 5 * time.Second
	DevelopmentGracePeriod = 0
)

const readHeaderTimeout = 10 * time.Second

// GracePeriod returns the drain window for the given mode.
func GracePeriod(production bool) time.Duration {
	if production {
		return ProductionGracePeriod
	}
	return DevelopmentGracePeriod
}

// Server serves Artifacts and, optionally, a metrics endpoint on a second
// listener.
type Server struct {
	lifecycle      *Lifecycle
	logger         *slog.Logger
	recorder       metrics.Recorder
	metricsHandler http.Handler
	grace          time.Duration

	httpServer    *http.Server
	metricsServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the access and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the request counter.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Server) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithMetricsHandler enables ServeMetrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metricsHandler = h
	}
}

// WithGracePeriod sets how long Shutdown waits for in-flight requests.
func WithGracePeriod(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.grace = d
		}
	}
}

// New builds a Server for artifacts. The lifecycle is shared with the
// signal path; a nil lifecycle gets a private one.
func New(artifacts Artifacts, lifecycle *Lifecycle, opts ...Option) *Server {
	if lifecycle == nil {
		lifecycle = &Lifecycle{}
	}
	s := &Server{
		lifecycle: lifecycle,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}

	rt := newRouter(artifacts, lifecycle)
	s.httpServer = &http.Server{
		Handler:           Chain(s.logger, s.recorder, rt.routeLabel)(rt),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	if s.metricsHandler != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metricsHandler)
		s.metricsServer = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		}
	}
	return s
}

// Handler returns the wrapped route table.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Serve accepts connections on ln until Shutdown. It returns nil after a
// clean shutdown.
func (s *Server) Serve(ln net.Listener) error {
	if ln == nil {
		return ErrNilListener
	}
	s.logger.Info("listening", logfields.Addr(ln.Addr().String()))
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	}
	return nil
}

// ServeMetrics exposes /metrics on ln. It requires WithMetricsHandler.
func (s *Server) ServeMetrics(ln net.Listener) error {
	if s.metricsServer == nil {
		return ErrNoMetrics
	}
	if ln == nil {
		return ErrNilListener
	}
	s.logger.Info("metrics listening", logfields.Addr(ln.Addr().String()))
	if err := s.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve metrics %s: %w", ln.Addr(), err)
	}
	return nil
}

// Shutdown stops accepting connections and waits up to the grace period
// (or ctx, whichever ends first) for in-flight requests. Connections still
// open at the deadline are closed and ErrShutdownForce is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.grace)
	defer cancel()

	var errs []error
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			_ = s.metricsServer.Close()
		}
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		if closeErr := s.httpServer.Close(); closeErr != nil {
			errs = append(errs, fmt.Errorf("close: %w", closeErr))
		}
		errs = append(errs, fmt.Errorf("%w: %v", ErrShutdownForce, err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.logger.Info("server stopped")
	return nil
}
