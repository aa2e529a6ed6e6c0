package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tripforge/config"
	"tripforge/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/token", NewAuthHandler(zap.NewNop()).IssueToken)
	return r
}

func TestIssueToken_MintsUsableToken(t *testing.T) {
	config.AppConfig.Env = "development"
	config.AppConfig.JWTSecret = "test-secret"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token",
		strings.NewReader(`{"subject":"user_1","email":"asha@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	newAuthTestRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)

	subject, err := utils.ExtractIDFromToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "user_1", subject)
}

func TestIssueToken_DisabledInProduction(t *testing.T) {
	config.AppConfig.Env = "production"
	defer func() { config.AppConfig.Env = "development" }()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token",
		strings.NewReader(`{"subject":"user_1"}`))
	req.Header.Set("Content-Type", "application/json")
	newAuthTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIssueToken_RequiresSubject(t *testing.T) {
	config.AppConfig.Env = "development"

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	newAuthTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
