package handlers

import (
	"net/http"

	"levelup/cache"
	"levelup/db"
	"levelup/models"
	"levelup/utils"

	"github.com/gin-gonic/gin"
)

// GetGameTypes with Redis caching
func GetGameTypes(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []GameTypeResponse
	if err := cache.GetGameTypes(ctx, &cached); err == nil {
		utils.Log.Debug("Cache HIT: game types")
		c.JSON(http.StatusOK, cached)
		return
	}

	var gameTypes []models.GameType
	if err := db.DB.Order("id").Find(&gameTypes).Error; err != nil {
		internalError(c, err, "Failed to fetch game types")
		return
	}

	resp := SerializeGameTypes(gameTypes)
	cacheWarn(cache.SetGameTypes(ctx, resp), "set game types")
	c.JSON(http.StatusOK, resp)
}

func GetGameTypeByID(c *gin.Context) {
	id, ok := pathID(c, "Game type")
	if !ok {
		return
	}

	var gameType models.GameType
	if !loadOr404(c, &gameType, id, "Game type") {
		return
	}
	c.JSON(http.StatusOK, SerializeGameType(gameType))
}

// CreateGameType with cache invalidation
func CreateGameType(c *gin.Context) {
	var input models.GameTypeInput
	if !bindInput(c, &input) {
		return
	}

	gameType := models.GameType{Label: input.Label}
	if err := db.DB.Create(&gameType).Error; err != nil {
		internalError(c, err, "Failed to create game type")
		return
	}

	cacheWarn(cache.InvalidateGameTypes(c.Request.Context()), "invalidate game types")

	c.JSON(http.StatusCreated, SerializeGameType(gameType))
}
