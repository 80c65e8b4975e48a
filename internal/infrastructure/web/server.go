package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"research-agent/internal/application/port/output"
)

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":2076",
		ShutdownTimeout: 10 * time.Second,
	}
}

type Server struct {
	http   *http.Server
	cfg    ServerConfig
	logger output.LoggerPort
}

func NewServer(cfg ServerConfig, handler *Handler, logger output.LoggerPort) *Server {
	accessLog := httplog.NewLogger("research-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})

	router := chi.NewRouter()
	router.Use(httplog.RequestLogger(accessLog))
	router.Use(middleware.Recoverer)

	router.Get("/", handler.Show)
	router.Post("/", handler.Refresh)

	return &Server{
		http: &http.Server{
			Addr:    cfg.Addr,
			Handler: router,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Start serves until ctx is canceled, then shuts down gracefully. A refresh
// already in flight keeps running in the cache; only the listener stops.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(shutdownCtx)
}
