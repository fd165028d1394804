package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/api/docs"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 10 * time.Second

// Server is the query API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler http.Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a server over s. cfg must have its defaults applied.
func NewServer(cfg *config.APIConfig, s store.Store, log *logger.Logger) *Server {
	h := NewHandler(s, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/v1/events", h.ListEvents)
	mux.HandleFunc("GET /api/v1/users", h.ListUsers)
	mux.HandleFunc("GET /api/v1/users/{address}", h.GetUser)
	mux.HandleFunc("GET /api/v1/users/{address}/events", h.ListUserEvents)
	mux.HandleFunc("GET /api/v1/summary", h.Summary)
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.DeepLinking(true),
	))

	var handler http.Handler = mux
	handler = RecoveryMiddleware(log)(handler)
	handler = LoggingMiddleware(log)(handler)
	if cfg.CORS.Enabled {
		handler = CORSMiddleware(cfg.CORS.AllowedOrigins)(handler)
	}

	return &Server{
		config:  cfg,
		handler: handler,
		server: &http.Server{
			Addr:         cfg.ListenAddress,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout.Duration,
			WriteTimeout: cfg.WriteTimeout.Duration,
			IdleTimeout:  cfg.IdleTimeout.Duration,
		},
		log: log,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.config.ListenAddress, err)
	}

	s.log.Infow("API server listening", "address", listener.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("API server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
