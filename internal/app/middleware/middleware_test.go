package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(t *testing.T, h gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(h)
	r.GET("/photoDetails/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityMiddleware(t *testing.T) {
	t.Run("API origin without the path", func(t *testing.T) {
		w := serve(t, SecurityMiddleware("https://api.example.com:8443/v1/"), httptest.NewRequest(http.MethodGet, "/photoDetails/1", nil))

		csp := w.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "img-src 'self' data: blob: https://api.example.com:8443;")
		assert.Contains(t, csp, "connect-src 'self' https://api.example.com:8443;")
		assert.NotContains(t, csp, "/v1")
	})

	t.Run("unparseable URL leaves only self", func(t *testing.T) {
		w := serve(t, SecurityMiddleware("not a url"), httptest.NewRequest(http.MethodGet, "/photoDetails/1", nil))

		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "img-src 'self' data: blob:;")
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	w := serve(t, RequestIDMiddleware(), httptest.NewRequest(http.MethodGet, "/photoDetails/1", nil))
	first := w.Header().Get(RequestIDHeader)
	assert.Len(t, first, 36)

	w = serve(t, RequestIDMiddleware(), httptest.NewRequest(http.MethodGet, "/photoDetails/1", nil))
	assert.NotEqual(t, first, w.Header().Get(RequestIDHeader))
}

func TestMetricsMiddlewareDoesNotAlterResponse(t *testing.T) {
	w := serve(t, MetricsMiddleware(), httptest.NewRequest(http.MethodGet, "/photoDetails/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, MetricsMiddleware(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
