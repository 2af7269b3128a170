package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/qmc/portal/internal/bootstrap"
	"github.com/qmc/portal/internal/config"
	"github.com/qmc/portal/internal/pkg/helpers"
)

// Server holds the state for the HTTP server.
type Server struct {
	config  *config.Config
	handler http.Handler
	deps    *bootstrap.Dependencies
	dbPool  *pgxpool.Pool
	logger  zerolog.Logger
	http    *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context, configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, dbPool, err := bootstrap.OpenStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(ctx, cfg, store, dbPool, bootstrap.NewTextGenerator(ctx, cfg, lgr), lgr)
	if err != nil {
		if dbPool != nil {
			dbPool.Close()
		}
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:  cfg,
		handler: bootstrap.SetupRouter(cfg, deps, lgr),
		deps:    deps,
		dbPool:  dbPool,
		logger:  lgr,
	}, nil
}

// Run starts the HTTP server alongside the notification hub and, for the
// postgres store, the cross-instance relay. It blocks until SIGINT/SIGTERM or
// until one of them fails, then shuts everything down.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.deps.Hub.Run(gctx)
	})

	if s.deps.Relay != nil {
		g.Go(func() error {
			return s.deps.Relay.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("Shutdown requested, stopping server...")
		return s.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := helpers.ParseDuration(s.config.Server.ShutdownTimeout, 5*time.Second)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.dbPool != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.dbPool.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	return errors.Join(errs...)
}
