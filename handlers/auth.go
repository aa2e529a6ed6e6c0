package handlers

import (
	"net/http"
	"time"

	"tripforge/config"
	"tripforge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler issues bearer tokens for the booking endpoints.
type AuthHandler struct {
	Logger *zap.Logger
}

func NewAuthHandler(logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Logger: logger}
}

// IssueToken mints a short-lived bearer token for local and staging use.
// Disabled in production, where tokens come from the identity provider.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	if config.IsProduction() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "token issuance is disabled in production"})
		return
	}

	var input struct {
		Subject string `json:"subject" binding:"required"`
		Email   string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input", "details": err.Error()})
		return
	}

	const tokenTTL = 24 * time.Hour
	token, err := utils.GenerateToken(input.Subject, input.Email, tokenTTL)
	if err != nil {
		h.Logger.Error("failed to mint token", zap.String("subject", input.Subject), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to mint token"})
		return
	}

	h.Logger.Info("issued token", zap.String("subject", input.Subject),
		zap.String("tokenHash", utils.HashToken(token)))
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"expires_in": int(tokenTTL.Seconds()),
	})
}
