package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/MatBureau/devops-health/internal/config"
)

// Server owns the HTTP listener lifecycle.
type Server struct {
	server *http.Server

	mu        sync.Mutex
	listener  net.Listener
	listenErr error
	ready     chan struct{}
	readyOnce sync.Once
}

// New wraps handler in an http.Server. The write timeout is stretched when it
// would cut off a health check still sampling the CPU.
func New(cfg *config.Config, handler http.Handler) *Server {
	writeTimeout := cfg.Http.WriteTimeout
	if writeTimeout > 0 && writeTimeout <= cfg.CPUSampleInterval {
		writeTimeout += cfg.CPUSampleInterval
	}

	return &Server{
		server: &http.Server{
			Addr:         cfg.Http.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.Http.ReadTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  cfg.Http.IdleTimeout,
		},
		ready: make(chan struct{}),
	}
}

// Start listens and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		err = fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.mu.Lock()
	s.listener, s.listenErr = listener, err
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
	if err != nil {
		return err
	}

	slog.Info("server start", "addr", listener.Addr().String())
	defer slog.Info("server stop")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return s.Stop()
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownPeriod)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Addr blocks until Start has tried to bind. It returns nil when binding failed.
func (s *Server) Addr() net.Addr {
	<-s.ready
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenErr reports why Start could not bind, if it could not.
func (s *Server) ListenErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listenErr
}

func (s *Server) WriteTimeout() time.Duration {
	return s.server.WriteTimeout
}
