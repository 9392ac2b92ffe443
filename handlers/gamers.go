package handlers

import (
	"errors"
	"net/http"

	"levelup/cache"
	"levelup/db"
	"levelup/middleware"
	"levelup/models"
	"levelup/monitoring"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetGamers(c *gin.Context) {
	var gamers []models.Gamer
	if err := db.DB.Preload("User").Order("id").Find(&gamers).Error; err != nil {
		internalError(c, err, "Failed to fetch gamers")
		return
	}
	c.JSON(http.StatusOK, SerializeGamers(gamers))
}

func GetGamerByID(c *gin.Context) {
	id, ok := pathID(c, "Gamer")
	if !ok {
		return
	}

	var gamer models.Gamer
	err := db.DB.Preload("User").First(&gamer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gamer not found"})
		return
	}
	if err != nil {
		internalError(c, err, "Failed to fetch gamer")
		return
	}

	c.JSON(http.StatusOK, SerializeGamer(gamer))
}

// DeleteGamer - DELETE /gamers/:id removes the caller's own profile and
// login. Their games, organized events and attendance cascade.
func DeleteGamer(c *gin.Context) {
	id, ok := pathID(c, "Gamer")
	if !ok {
		return
	}

	current := middleware.CurrentGamer(c)
	if current.ID != id {
		c.JSON(http.StatusForbidden, gin.H{"error": "Gamers can only delete themselves"})
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Gamer{}, current.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, current.UserID).Error
	})
	if err != nil {
		internalError(c, err, "Failed to delete gamer")
		return
	}

	ctx := c.Request.Context()
	cacheWarn(cache.InvalidateGames(ctx), "invalidate games")
	cacheWarn(cache.InvalidateEvents(ctx), "invalidate events")
	monitoring.RecordChange("gamer", "delete")
	utils.LogInfo("Gamer deleted", map[string]interface{}{"gamer_id": current.ID, "user_id": current.UserID})

	c.Status(http.StatusNoContent)
}
