// pkg/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log), CORS())
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestID(t *testing.T) {
	r := newRouter(zap.NewNop())

	tests := []struct {
		name   string
		header string
	}{
		{name: "generated", header: ""},
		{name: "propagated", header: "req-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ok", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			id := w.Header().Get(RequestIDHeader)
			assert.NotEmpty(t, id)
			assert.Equal(t, id, w.Body.String())
			if tt.header != "" {
				assert.Equal(t, tt.header, id)
			}
		})
	}
}

func TestRecoveryAndLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newRouter(zap.New(core))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("request completed").Len())
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	methods := w.Header().Get("Access-Control-Allow-Methods")
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		assert.Contains(t, methods, m)
	}
}
