package middleware

import (
	"net/http"

	"levelup/auth"
	"levelup/db"
	"levelup/models"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GamerKey is where AuthMiddleware stores the authenticated models.Gamer.
const GamerKey = "gamer"

// AuthMiddleware resolves the bearer token into the caller's Gamer.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		var gamer models.Gamer
		if err := db.DB.Where("user_id = ?", userID).First(&gamer).Error; err != nil {
			utils.Log.WithFields(logrus.Fields{"user_id": userID, "error": err}).Warn("Token for unknown gamer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			return
		}

		c.Set(GamerKey, gamer)
		c.Next()
	}
}

// CurrentGamer returns the gamer set by AuthMiddleware.
func CurrentGamer(c *gin.Context) models.Gamer {
	return c.MustGet(GamerKey).(models.Gamer)
}
