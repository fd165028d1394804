package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
})

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		method  string
		want    string
	}{
		{name: "wildcard echoes origin", allowed: []string{"*"}, origin: "https://a.example", method: http.MethodGet,
			want: "https://a.example"},
		{name: "wildcard without origin", allowed: []string{"*"}, method: http.MethodGet, want: "*"},
		{name: "listed origin", allowed: []string{"https://a.example", "https://b.example"},
			origin: "https://b.example", method: http.MethodGet, want: "https://b.example"},
		{name: "unlisted origin", allowed: []string{"https://a.example"}, origin: "https://evil.example",
			method: http.MethodGet},
		{name: "empty list", origin: "https://a.example", method: http.MethodGet},
		{name: "preflight", allowed: []string{"https://a.example"}, origin: "https://a.example",
			method: http.MethodOptions, want: "https://a.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/v1/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			CORSMiddleware(tt.allowed)(okHandler).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"))
			if tt.want != "" {
				require.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
				require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
				require.Equal(t, corsMaxAge, w.Header().Get("Access-Control-Max-Age"))
			}

			if tt.method == http.MethodOptions {
				require.Empty(t, w.Body.String(), "preflight never reaches the handler")
			} else {
				require.Equal(t, "OK", w.Body.String())
			}
		})
	}
}

func TestResponseWriter_KeepsFirstStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusBadRequest)

	require.Equal(t, http.StatusCreated, rw.statusCode)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	t.Parallel()

	handler := LoggingMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusTeapot, w.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	for name, value := range map[string]any{"string": "boom", "error": http.ErrAbortHandler, "int": 42} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			handler := RecoveryMiddleware(logger.NewNopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(value)
			}))

			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			})
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Equal(t, "Internal Server Error\n", w.Body.String())
		})
	}
}
