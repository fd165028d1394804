package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const runtimeSampleInterval = 15 * time.Second

// Server exposes the collectors of this process for scraping while a scan runs.
type Server struct {
	cfg  *config.MetricsConfig
	log  *logger.Logger
	srv  *http.Server
	addr net.Addr

	stopSampling context.CancelFunc
	sampling     chan struct{}
}

// NewServer creates a metrics server. Nothing is bound until Start.
func NewServer(cfg *config.MetricsConfig, log *logger.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Handler serves the metrics path and a plain /health probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Start binds the listen address and serves in the background. Runtime gauges are sampled until
// ctx is done or Stop is called. A nil or disabled configuration makes Start a no-op.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return nil
	}

	listener, err := net.Listen("tcp", s.cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.ListenAddress, err)
	}
	s.addr = listener.Addr()

	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,  //nolint:mnd
		WriteTimeout:      10 * time.Second, //nolint:mnd
	}

	sampleCtx, cancel := context.WithCancel(ctx)
	s.stopSampling, s.sampling = cancel, make(chan struct{})
	go func() {
		defer close(s.sampling)
		sampleRuntime(sampleCtx, runtimeSampleInterval)
	}()

	go func() {
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorw("metrics server error", "error", err)
		}
	}()

	s.log.Infow("metrics server started", "address", s.addr.String(), "path", s.cfg.Path)
	return nil
}

// Addr returns the bound address, nil before Start.
func (s *Server) Addr() net.Addr {
	return s.addr
}

// Stop shuts the server down and waits for the sampler to exit.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}

	s.stopSampling()
	<-s.sampling

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	return nil
}

func sampleRuntime(ctx context.Context, every time.Duration) {
	UpdateSystemMetrics()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			UpdateSystemMetrics()
		}
	}
}
