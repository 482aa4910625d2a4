package middleware

import (
	"net/http"

	"voicedesk/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyAuthMiddleware guards the admin API. Clients present the raw key
// in X-API-Key; the server only ever stores its bcrypt hash.
func APIKeyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}
		hash := config.AppConfig.APIKeyHash
		if hash == "" {
			logger.Error("API key hash not configured, rejecting admin request")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin API disabled"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			logger.Warn("rejected admin request with bad API key", zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}
		c.Next()
	}
}
