package middleware

import (
	"net/http"
	"strings"

	"tripforge/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware guards the booking endpoints with a bearer token. The
// validated subject is stored on the context for handlers and audit logs.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set("subject", subject)
		// Audit logs reference tokens by hash, never by value.
		c.Set("token_hash", utils.HashToken(tokenString))
		c.Next()
	}
}
