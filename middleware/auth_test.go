package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripforge/config"
	"tripforge/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject":    c.GetString("subject"),
			"token_hash": c.GetString("token_hash"),
		})
	})
	return r
}

func TestJWTAuthMiddleware_AllowsValidToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := utils.GenerateToken("user_1", "asha@example.com", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newAuthRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user_1")
	assert.Contains(t, w.Body.String(), utils.HashToken(token))
}

func TestJWTAuthMiddleware_RejectsBadTokens(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	r := newAuthRouter()

	// No Authorization header at all.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage bearer token.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
