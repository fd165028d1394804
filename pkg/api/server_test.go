package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/pkg/config"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
	"github.com/goran-ethernal/ChainActivity/pkg/store/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(cors bool) *config.APIConfig {
	cfg := &config.APIConfig{Enabled: true, ListenAddress: "127.0.0.1:0"}
	cfg.CORS.Enabled = cors
	cfg.ApplyDefaults()
	return cfg
}

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig(false)
	srv := NewServer(cfg, mocks.NewStore(t), logger.NewNopLogger())

	require.Equal(t, cfg.ListenAddress, srv.server.Addr)
	require.Equal(t, 15*time.Second, srv.server.ReadTimeout)
	require.Equal(t, 15*time.Second, srv.server.WriteTimeout)
	require.Equal(t, 60*time.Second, srv.server.IdleTimeout)
	require.NotNil(t, srv.Handler())
}

func TestServer_CORSEnabled(t *testing.T) {
	t.Parallel()

	srv := NewServer(testAPIConfig(true), mocks.NewStore(t), logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/events", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, "https://dashboard.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_UnknownRoute(t *testing.T) {
	t.Parallel()

	w := serve(t, mocks.NewStore(t), http.MethodGet, "/api/v1/indexers")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, mocks.NewStore(t), http.MethodPost, "/api/v1/events")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_Swagger(t *testing.T) {
	t.Parallel()

	w := serve(t, mocks.NewStore(t), http.MethodGet, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "/users/{address}/events")
}

func TestServer_StartAndShutdown(t *testing.T) {
	t.Parallel()

	s := mocks.NewStore(t)
	s.EXPECT().Summary(mock.Anything).Return(&store.Summary{}, nil).Maybe()

	cfg := testAPIConfig(false)
	cfg.ListenAddress = freeAddress(t)
	srv := NewServer(cfg, s, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/health", cfg.ListenAddress))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartFailsOnBusyAddress(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	cfg := testAPIConfig(false)
	cfg.ListenAddress = l.Addr().String()

	err = NewServer(cfg, mocks.NewStore(t), logger.NewNopLogger()).Start(context.Background())
	require.ErrorContains(t, err, "listen on")
}
