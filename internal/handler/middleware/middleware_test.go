//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyroom-booking/internal/handler/httperr"
	"studyroom-booking/internal/handler/middleware"
	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func serve(engine *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestErrorHandler(t *testing.T) {
	t.Run("public error already written is left alone", func(t *testing.T) {
		engine := newEngine(middleware.ErrorHandler())
		engine.GET("/x", func(c *gin.Context) {
			httperr.AbortWithKind(c, http.StatusConflict, "SLOT_UNAVAILABLE", errors.New("taken"), "Slot unavailable", nil)
		})

		w := serve(engine, http.MethodGet, "/x", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"error":{"message":"Slot unavailable","kind":"SLOT_UNAVAILABLE"}}`, w.Body.String())
	})

	t.Run("bare status without body is flushed", func(t *testing.T) {
		engine := newEngine(middleware.ErrorHandler())
		engine.DELETE("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := serve(engine, http.MethodDelete, "/x", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("handler that writes nothing becomes 500", func(t *testing.T) {
		engine := newEngine(middleware.ErrorHandler())
		engine.GET("/x", func(*gin.Context) {})

		w := serve(engine, http.MethodGet, "/x", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})
}

func TestCustomRecovery(t *testing.T) {
	engine := newEngine(middleware.CustomRecovery())
	engine.GET("/panic", func(*gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Internal server error"}}`, w.Body.String())
}

func TestLoggingMiddleware(t *testing.T) {
	logger := middleware.NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "2006-01-02"})
	engine := newEngine(logger.LoggingMiddleware())

	var requestID, requester string
	engine.GET("/x", func(c *gin.Context) {
		requestID = middleware.GetRequestID(c)
		requester = middleware.GetRequester(c)
		c.Status(http.StatusOK)
	})

	serve(engine, http.MethodGet, "/x", map[string]string{middleware.RequesterHeader: "  alice "})

	assert.Regexp(t, `^\d{14}-[0-9a-f]{8}$`, requestID)
	assert.Equal(t, "alice", requester)
}

func TestPrometheusMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)
	engine := newEngine(middleware.PrometheusMiddleware(m))
	engine.GET("/api/rooms/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(engine, http.MethodGet, "/api/rooms/1", nil)
	serve(engine, http.MethodGet, "/api/rooms/2", nil)
	serve(engine, http.MethodGet, "/nowhere", nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/rooms/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
