package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"levelup/cache"
	"levelup/db"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// pathID parses the :id route parameter. Anything that is not a positive
// integer within the range of a bigint key can never match a row, so it is
// answered with 404.
func pathID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return 0, false
	}
	return uint(id), true
}

// loadOr404 fetches dest by primary key, answering 404 or 500 on failure.
func loadOr404(c *gin.Context, dest interface{}, id uint, resource string) bool {
	err := db.DB.First(dest, id).Error
	switch {
	case err == nil:
		return true
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	default:
		internalError(c, err, "Failed to fetch "+strings.ToLower(resource))
	}
	return false
}

// bindInput decodes the JSON body into input and validates it.
func bindInput(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.ValidationErrorResponse(c, err)
		return false
	}
	return true
}

func internalError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// cacheWarn logs cache failures other than "redis is not configured".
func cacheWarn(err error, action string) {
	if err == nil || errors.Is(err, cache.ErrUnavailable) {
		return
	}
	utils.Log.WithFields(logrus.Fields{"error": err, "action": action}).Warn("Cache operation failed")
}
