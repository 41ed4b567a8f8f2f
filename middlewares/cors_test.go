package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func preflight(t *testing.T, mw gin.HandlerFunc, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowAllInDev(t *testing.T) {
	w := preflight(t, CORSMiddleware([]string{"*"}), "http://evil.example")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	// wildcard + credentials เป็นคู่ต้องห้ามตาม spec ของ browser
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSExplicitOriginsEnableCredentials(t *testing.T) {
	mw := CORSMiddleware([]string{"http://localhost:3000"})

	w := preflight(t, mw, "http://localhost:3000")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	// origin นอก list ต้องโดนปัด
	w = preflight(t, mw, "http://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
