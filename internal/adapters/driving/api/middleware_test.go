package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := newEngine(RequestLogger())

	w := serve(r, "/ping")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	r := newEngine(NewRateLimiter(0.001, 2).Handler())

	assert.Equal(t, http.StatusOK, serve(r, "/ping").Code)
	assert.Equal(t, http.StatusOK, serve(r, "/ping").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "/ping").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	var rl *RateLimiter = NewRateLimiter(0, 0)
	assert.Nil(t, rl)

	r := newEngine(rl.Handler())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(r, "/ping").Code)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS("http://localhost:3000/"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	r := newEngine(CORS("http://localhost:3000"))
	r.OPTIONS("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
}
