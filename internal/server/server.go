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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/lfarias/gestor-academico/internal/bootstrap"
	"github.com/lfarias/gestor-academico/internal/config"
	"github.com/lfarias/gestor-academico/internal/db"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	database *db.PostgresDB
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, database, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	s := &Server{
		config:   cfg,
		router:   router,
		database: database,
		logger:   lgr,
	}

	return s, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
