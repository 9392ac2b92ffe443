package handlers

import (
	"errors"
	"net/http"

	"levelup/db"
	"levelup/middleware"
	"levelup/models"
	"levelup/monitoring"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SignupForEvent - POST /events/:id/signup adds the caller as an attendee
func SignupForEvent(c *gin.Context) {
	id, ok := pathID(c, "Event")
	if !ok {
		return
	}

	var event models.Event
	if !loadOr404(c, &event, id, "Event") {
		return
	}

	gamer := middleware.CurrentGamer(c)

	var existing models.EventGamer
	err := db.DB.Where("event_id = ? AND gamer_id = ?", event.ID, gamer.ID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already attending this event"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Failed to check attendance")
		return
	}

	attendance := models.EventGamer{EventID: event.ID, GamerID: gamer.ID}
	if err := db.DB.Omit(clause.Associations).Create(&attendance).Error; err != nil {
		internalError(c, err, "Failed to join event")
		return
	}

	monitoring.RecordChange("attendance", "create")
	c.JSON(http.StatusCreated, SerializeAttendance(attendance))
}

// LeaveEvent - DELETE /events/:id/signup removes the caller's attendance
func LeaveEvent(c *gin.Context) {
	id, ok := pathID(c, "Event")
	if !ok {
		return
	}

	gamer := middleware.CurrentGamer(c)

	result := db.DB.Where("event_id = ? AND gamer_id = ?", id, gamer.ID).Delete(&models.EventGamer{})
	if result.Error != nil {
		internalError(c, result.Error, "Failed to leave event")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attendance not found"})
		return
	}

	monitoring.RecordChange("attendance", "delete")
	c.Status(http.StatusNoContent)
}

// GetEventAttendees - GET /events/:id/attendees
func GetEventAttendees(c *gin.Context) {
	id, ok := pathID(c, "Event")
	if !ok {
		return
	}

	var event models.Event
	if !loadOr404(c, &event, id, "Event") {
		return
	}

	var gamers []models.Gamer
	err := db.DB.
		Select("gamers.*").
		Joins("JOIN event_gamers ON event_gamers.gamer_id = gamers.id").
		Where("event_gamers.event_id = ?", event.ID).
		Preload("User").
		Order("gamers.id").
		Find(&gamers).Error
	if err != nil {
		internalError(c, err, "Failed to fetch attendees")
		return
	}

	c.JSON(http.StatusOK, SerializeGamers(gamers))
}
