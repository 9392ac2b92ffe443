package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"levelup/cache"
	"levelup/db"
	"levelup/middleware"
	"levelup/models"
	"levelup/monitoring"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const invalidGameMessage = "An invalid game id was provided"

var clockLayouts = []string{"15:04:05", "15:04"}

// GetEvents - GET /events, optionally filtered with ?game=<id>
func GetEvents(c *gin.Context) {
	var gameID uint
	if raw, filtered := c.GetQuery("game"); filtered {
		id, err := strconv.ParseUint(raw, 10, 63)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": invalidGameMessage})
			return
		}

		var game models.Game
		err = db.DB.First(&game, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": invalidGameMessage})
			return
		}
		if err != nil {
			internalError(c, err, "Failed to fetch game")
			return
		}
		gameID = game.ID
	}

	ctx := c.Request.Context()

	var cached []EventResponse
	if err := cache.GetEvents(ctx, gameID, &cached); err == nil {
		utils.Log.Debugf("Cache HIT: %s", cache.EventsKey(gameID))
		c.JSON(http.StatusOK, cached)
		return
	}

	query := db.DB.Order("id")
	if gameID != 0 {
		query = query.Where("game_id = ?", gameID)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		internalError(c, err, "Failed to fetch events")
		return
	}

	resp := SerializeEvents(events)
	cacheWarn(cache.SetEvents(ctx, gameID, resp), "set events")
	c.JSON(http.StatusOK, resp)
}

// GetEventByID - GET /events/:id
func GetEventByID(c *gin.Context) {
	id, ok := pathID(c, "Event")
	if !ok {
		return
	}

	var event models.Event
	if !loadOr404(c, &event, id, "Event") {
		return
	}
	c.JSON(http.StatusOK, SerializeEvent(event))
}

// CreateEvent - POST /events. The organizer is always the caller.
// Responds 200, not 201.
func CreateEvent(c *gin.Context) {
	var input models.EventInput
	if !bindInput(c, &input) {
		return
	}

	date, clock, ok := parseSchedule(c, input)
	if !ok {
		return
	}

	var game models.Game
	if !loadOr404(c, &game, input.Game, "Game") {
		return
	}

	organizer := middleware.CurrentGamer(c)

	event := models.Event{
		GameID:      game.ID,
		OrganizerID: organizer.ID,
		Description: input.Description,
		Date:        date,
		Time:        clock,
	}
	if err := db.DB.Omit(clause.Associations).Create(&event).Error; err != nil {
		internalError(c, err, "Failed to create event")
		return
	}

	cacheWarn(cache.InvalidateEvents(c.Request.Context()), "invalidate events")
	monitoring.RecordChange("event", "create")
	utils.LogInfo("Event created", map[string]interface{}{"event_id": event.ID, "game_id": game.ID, "organizer_id": organizer.ID})

	c.JSON(http.StatusOK, SerializeEvent(event))
}

// UpdateEvent - PUT /events/:id. The organizer is left unchanged.
func UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "Event")
	if !ok {
		return
	}

	var event models.Event
	if !loadOr404(c, &event, id, "Event") {
		return
	}

	var input models.EventInput
	if !bindInput(c, &input) {
		return
	}

	date, clock, ok := parseSchedule(c, input)
	if !ok {
		return
	}

	var game models.Game
	if !loadOr404(c, &game, input.Game, "Game") {
		return
	}

	event.Description = input.Description
	event.Date = date
	event.Time = clock
	event.GameID = game.ID

	if err := db.DB.Omit(clause.Associations).Save(&event).Error; err != nil {
		internalError(c, err, "Failed to update event")
		return
	}

	cacheWarn(cache.InvalidateEvents(c.Request.Context()), "invalidate events")
	monitoring.RecordChange("event", "update")

	c.Status(http.StatusNoContent)
}

// DeleteEvent - DELETE /events/:id, organizer only
func DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "Event")
	if !ok {
		return
	}

	var event models.Event
	if !loadOr404(c, &event, id, "Event") {
		return
	}

	gamer := middleware.CurrentGamer(c)
	if event.OrganizerID != gamer.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can delete an event"})
		return
	}

	if err := db.DB.Delete(&event).Error; err != nil {
		internalError(c, err, "Failed to delete event")
		return
	}

	cacheWarn(cache.InvalidateEvents(c.Request.Context()), "invalidate events")
	monitoring.RecordChange("event", "delete")

	c.Status(http.StatusNoContent)
}

// parseSchedule turns the body's date and time strings into column values,
// answering 400 when either does not parse.
func parseSchedule(c *gin.Context, input models.EventInput) (datatypes.Date, datatypes.Time, bool) {
	day, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "date must match the format " + dateLayout}})
		return datatypes.Date{}, 0, false
	}

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, input.Time)
		if err == nil {
			return datatypes.Date(day), datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), true
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"time": "time must match the format 15:04:05"}})
	return datatypes.Date{}, 0, false
}
