package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/yigit/courseplanner/internal/bootstrap"
	"github.com/yigit/courseplanner/internal/config"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Server owns the HTTP listener and the database pool behind it.
type Server struct {
	http   *http.Server
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// New wires storage, services and routes for cfg. The Postgres pool is only
// opened for the postgres driver.
func New(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Server, error) {
	var pool *pgxpool.Pool
	if !cfg.UsesMemoryStore() {
		var err error
		if pool, err = bootstrap.SetupDatabase(ctx, cfg, lgr); err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}
	}

	repos := bootstrap.BuildRepositories(ctx, cfg, pool, lgr)
	deps := bootstrap.BuildDependencies(cfg, repos, lgr)

	return &Server{
		http: &http.Server{
			Addr:         net.JoinHostPort("", cfg.Server.Port),
			Handler:      bootstrap.SetupRouter(cfg, deps, lgr),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		pool:   pool,
		logger: lgr,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests and releases the pool.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		errCh <- s.http.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	}

	return errors.Join(serveErr, s.shutdown())
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if shutErr := s.http.Shutdown(ctx); shutErr != nil {
		s.logger.Error().Err(shutErr).Msg("HTTP server shutdown error")
		err = fmt.Errorf("http shutdown: %w", shutErr)
	}
	if s.pool != nil {
		s.pool.Close()
	}
	s.logger.Info().Msg("Server stopped")
	return err
}
