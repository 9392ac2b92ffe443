package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"levelup/cache"
	"levelup/models"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimit limits each gamer (or client IP before authentication) to
// maxRequests per window. It lets everything through when Redis is down.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if gamer, exists := c.Get(GamerKey); exists {
			if g, ok := gamer.(models.Gamer); ok {
				key = fmt.Sprintf("gamer:%d", g.ID)
			}
		}

		allowed, remaining, err := cache.CheckRateLimit(c.Request.Context(), key, maxRequests, window)
		if err != nil {
			utils.Log.WithFields(logrus.Fields{"key": key, "error": err}).Warn("Rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": fmt.Sprintf("Too many requests. Retry after %v", window),
			})
			return
		}

		c.Next()
	}
}
