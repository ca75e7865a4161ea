package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/middleware"
)

const defaultShutdownTimeout = 10 * time.Second

// Server runs an App over HTTP with CORS and graceful shutdown.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             zerolog.Logger
}

// NewServer wraps the app handler with CORS and applies the configured timeouts.
func NewServer(a *App, cfg *config.Config, logger zerolog.Logger) *Server {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		ExposedHeaders: []string{middleware.HeaderCorrelationID},
	})

	shutdown := time.Duration(cfg.App.ShutdownTimeout) * time.Second
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}
	return &Server{
		srv: &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.App.Port),
			Handler:           c.Handler(a.Handler()),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       time.Duration(cfg.App.ReadTimeout) * time.Second,
			WriteTimeout:      time.Duration(cfg.App.WriteTimeout) * time.Second,
		},
		shutdownTimeout: shutdown,
		log:             logger.With().Str("module", "app").Str("component", "server").Logger(),
	}
}

// Handler is the fully wrapped handler, CORS included.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		s.log.Info().Dur("timeout", s.shutdownTimeout).Msg("shutting down http server")
		if err := s.srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("http server stopped with error")
		return err
	}
	s.log.Info().Msg("http server stopped")
	return nil
}
