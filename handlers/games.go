package handlers

import (
	"net/http"

	"levelup/cache"
	"levelup/db"
	"levelup/middleware"
	"levelup/models"
	"levelup/monitoring"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// GetGames - GET /games
func GetGames(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []GameResponse
	if err := cache.GetGames(ctx, &cached); err == nil {
		utils.Log.Debug("Cache HIT: games")
		c.JSON(http.StatusOK, cached)
		return
	}

	var games []models.Game
	if err := db.DB.Order("id").Find(&games).Error; err != nil {
		internalError(c, err, "Failed to fetch games")
		return
	}

	resp := SerializeGames(games)
	cacheWarn(cache.SetGames(ctx, resp), "set games")
	c.JSON(http.StatusOK, resp)
}

// GetGameByID - GET /games/:id
func GetGameByID(c *gin.Context) {
	id, ok := pathID(c, "Game")
	if !ok {
		return
	}

	var game models.Game
	if !loadOr404(c, &game, id, "Game") {
		return
	}
	c.JSON(http.StatusOK, SerializeGame(game))
}

// CreateGame - POST /games, owned by the caller
func CreateGame(c *gin.Context) {
	var input models.CreateGameInput
	if !bindInput(c, &input) {
		return
	}

	gamer := middleware.CurrentGamer(c)

	var gameType models.GameType
	if !loadOr404(c, &gameType, input.GameType, "Game type") {
		return
	}

	game := models.Game{
		Title:           input.Title,
		Maker:           input.Maker,
		NumberOfPlayers: *input.NumberOfPlayers,
		SkillLevel:      *input.SkillLevel,
		GamerID:         gamer.ID,
		GameTypeID:      gameType.ID,
	}
	if err := db.DB.Omit(clause.Associations).Create(&game).Error; err != nil {
		internalError(c, err, "Failed to create game")
		return
	}

	cacheWarn(cache.InvalidateGames(c.Request.Context()), "invalidate games")
	monitoring.RecordChange("game", "create")
	utils.LogInfo("Game created", map[string]interface{}{"game_id": game.ID, "gamer_id": gamer.ID})

	c.JSON(http.StatusCreated, SerializeGame(game))
}

// UpdateGame - PUT /games/:id, full replace of the editable fields
func UpdateGame(c *gin.Context) {
	id, ok := pathID(c, "Game")
	if !ok {
		return
	}

	var game models.Game
	if !loadOr404(c, &game, id, "Game") {
		return
	}

	var input models.UpdateGameInput
	if !bindInput(c, &input) {
		return
	}

	var gamer models.Gamer
	if !loadOr404(c, &gamer, input.Gamer, "Gamer") {
		return
	}
	var gameType models.GameType
	if !loadOr404(c, &gameType, input.GameType, "Game type") {
		return
	}

	game.Title = input.Title
	game.Maker = input.Maker
	game.NumberOfPlayers = *input.NumberOfPlayers
	game.SkillLevel = *input.SkillLevel
	game.GameTypeID = gameType.ID

	// Ownership is fixed at creation. The body's gamer must exist but is
	// never assigned to the game.
	if gamer.ID != game.GamerID {
		utils.LogWarn("Ignoring owner change on game update", map[string]interface{}{
			"game_id":   game.ID,
			"owner_id":  game.GamerID,
			"requested": gamer.ID,
		})
	}

	if err := db.DB.Omit(clause.Associations).Save(&game).Error; err != nil {
		internalError(c, err, "Failed to update game")
		return
	}

	cacheWarn(cache.InvalidateGames(c.Request.Context()), "invalidate games")
	monitoring.RecordChange("game", "update")

	c.Status(http.StatusNoContent)
}

// DeleteGame - DELETE /games/:id, owner only. Events cascade.
func DeleteGame(c *gin.Context) {
	id, ok := pathID(c, "Game")
	if !ok {
		return
	}

	var game models.Game
	if !loadOr404(c, &game, id, "Game") {
		return
	}

	gamer := middleware.CurrentGamer(c)
	if game.GamerID != gamer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the owner can delete a game"})
		return
	}

	if err := db.DB.Delete(&game).Error; err != nil {
		internalError(c, err, "Failed to delete game")
		return
	}

	ctx := c.Request.Context()
	cacheWarn(cache.InvalidateGames(ctx), "invalidate games")
	cacheWarn(cache.InvalidateEvents(ctx), "invalidate events")
	monitoring.RecordChange("game", "delete")

	c.Status(http.StatusNoContent)
}
