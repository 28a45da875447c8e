package restapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/metrics"
)

func TestRequestLoggingMiddleware(t *testing.T) {
	t.Run("logs HTTP request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("test response"))
		})

		handler := NewRequestLoggingMiddleware(logger, nil)(testHandler)

		req := httptest.NewRequest("GET", "/api/totals.json?year=2020", nil)
		req.Header.Set("User-Agent", "test-client/1.0")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "test response", recorder.Body.String())

		output := buf.String()
		assert.Contains(t, output, `"level":"INFO"`)
		assert.Contains(t, output, `"msg":"http_request"`)
		assert.Contains(t, output, `"method":"GET"`)
		assert.Contains(t, output, `"path":"/api/totals.json"`)
		assert.NotContains(t, output, "year=2020")
		assert.Contains(t, output, `"status":200`)
		assert.Contains(t, output, `"user_agent":"test-client/1.0"`)
		assert.Contains(t, output, `"duration_ms":`)
		assert.Contains(t, output, `"component":"http_server"`)
		assert.Contains(t, output, `"request_id":"`+recorder.Header().Get(RequestIDHeader)+`"`)
	})

	t.Run("captures non-default status codes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		handler := NewRequestLoggingMiddleware(logger, nil)(testHandler)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/healthz", nil))

		assert.Contains(t, buf.String(), `"status":503`)
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("keeps an incoming request id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		handler := NewRequestLoggingMiddleware(logger, nil)(okHandler())
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, "abc-123", recorder.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	})

	t.Run("puts the request logger in the context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewStructuredLogger(&buf, slog.LevelInfo)

		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("inside_handler")
		})

		handler := NewRequestLoggingMiddleware(logger, nil)(testHandler)
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "ctx-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), `"msg":"inside_handler","request_id":"ctx-1"`)
	})

	t.Run("counts requests", func(t *testing.T) {
		m := metrics.New()
		handler := NewRequestLoggingMiddleware(testLogger(), m)(okHandler())

		for i := 0; i < 3; i++ {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/dimensions.json", nil))
		}

		count, err := testutil.GatherAndCount(m.Registry, "mortality_http_requests_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
