package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamilsociety/tls-platform/internal/config"
	"github.com/tamilsociety/tls-platform/pkg/utils"
)

func setupKey(t *testing.T) {
	t.Helper()
	config.JwtSecret = "middleware-secret"
	Init()
}

func TestParseToken(t *testing.T) {
	setupKey(t)

	token, err := GenerateToken(7, "meena", true, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.True(t, claims.IsAdmin)

	expired, err := GenerateToken(7, "meena", true, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	jwtKey = []byte("rotated")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", JWTAuthMiddleware(), Admin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/public", OptionalJWT(), func(c *gin.Context) {
		if id := utils.OptionalUserID(c); id != nil {
			c.JSON(http.StatusOK, gin.H{"user": *id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": nil})
	})
	return r
}

func get(r http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminGate(t *testing.T) {
	setupKey(t)
	r := newRouter()

	admin, err := GenerateToken(1, "admin", true, time.Hour)
	require.NoError(t, err)
	member, err := GenerateToken(2, "member", false, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*http.Request)
		want   int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }, http.StatusUnauthorized},
		{"member", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+member) }, http.StatusForbidden},
		{"admin header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+admin) }, http.StatusNoContent},
		{"admin cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: admin}) }, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(r, "/admin", tt.mutate).Code)
		})
	}
}

func TestOptionalJWTIgnoresBadTokens(t *testing.T) {
	setupKey(t)
	r := newRouter()

	w := get(r, "/public", func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())

	token, err := GenerateToken(42, "kavya", false, time.Hour)
	require.NoError(t, err)
	w = get(r, "/public", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) })
	assert.JSONEq(t, `{"user":42}`, w.Body.String())
}

func TestAllowedOrigin(t *testing.T) {
	config.CorsOrigins = []string{"https://tls.example.org/"}
	t.Cleanup(func() { config.CorsOrigins, config.AppEnv = nil, "" })

	config.AppEnv = "production"
	assert.True(t, AllowedOrigin("https://tls.example.org"))
	assert.False(t, AllowedOrigin("https://evil.example.net"))
	assert.False(t, AllowedOrigin("http://localhost:5173"))

	config.AppEnv = "development"
	assert.True(t, AllowedOrigin("http://localhost:5173"))
	assert.True(t, AllowedOrigin("http://127.0.0.1:3000"))
	assert.False(t, AllowedOrigin("http://localhost.evil.example.net"))
}

func TestCORSMiddleware_ProductionRejectsLocalhost(t *testing.T) {
	config.CorsOrigins = []string{"https://tls.example.org"}
	config.AppEnv = "production"
	t.Cleanup(func() { config.CorsOrigins, config.AppEnv = nil, "" })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := get(r, "/ping", func(r *http.Request) { r.Header.Set("Origin", "https://tls.example.org") })
	assert.Equal(t, "https://tls.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = get(r, "/ping", func(r *http.Request) { r.Header.Set("Origin", "http://localhost:5173") })
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAdminRejectionBodies(t *testing.T) {
	setupKey(t)
	r := newRouter()

	w := get(r, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authorization required (header or cookie)"}`, w.Body.String())

	w = get(r, "/admin", func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") })
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())

	member, err := GenerateToken(2, "member", false, time.Hour)
	require.NoError(t, err)
	w = get(r, "/admin", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+member) })
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"admin only"}`, w.Body.String())
}
