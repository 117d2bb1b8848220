package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brukssoft/navalha-api/internal/config"
)

// CronAuthMiddleware guards the scheduler-only endpoints with a shared
// secret. No secret configured means the endpoints are disabled.
func CronAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.CronSecret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cron_disabled"})
			return
		}

		got := c.GetHeader("X-Cron-Secret")
		if subtle.ConstantTimeCompare([]byte(got), []byte(cfg.CronSecret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_cron_secret"})
			return
		}

		c.Next()
	}
}
