package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var (
	// ErrStart is wrapped around listener failures.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown is wrapped around graceful shutdown failures.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)

// Server wraps http.Server with environment-derived timeouts, optional
// cleartext HTTP/2, server identification, and graceful shutdown.
type Server struct {
	cfg  Config
	log  *slog.Logger
	http *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New builds a Server for the given handler. The handler gains an
// X-Server-Hostname response header identifying the serving host.
func New(cfg Config, handler http.Handler, opts ...Option) (*Server, error) {
	s := &Server{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	hostname := cfg.Hostname
	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStart, err)
		}
		hostname = h
	}
	handler = identifyHandler(handler, hostname)

	if cfg.EnableH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s, nil
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("http server listening",
			slog.String("addr", s.http.Addr),
			slog.Bool("h2c", s.cfg.EnableH2C),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%w: %w", ErrStart, err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("http server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}
	return <-errCh
}

// identifyHandler sets the X-Server-Hostname response header. The hostname
// is resolved once, when the server is built.
func identifyHandler(next http.Handler, hostname string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Server-Hostname", hostname)
		next.ServeHTTP(w, r)
	})
}
