package handlers

import (
	"errors"
	"net/http"

	"levelup/auth"
	"levelup/db"
	"levelup/models"
	"levelup/monitoring"
	"levelup/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register - POST /register creates the login and its gamer profile
func Register(c *gin.Context) {
	var input models.RegisterInput
	if !bindInput(c, &input) {
		return
	}

	var existing models.User
	err := db.DB.Where("username = ?", input.Username).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(c, err, "Failed to register")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		internalError(c, err, "Failed to register")
		return
	}

	user := models.User{
		Username:  input.Username,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Gamer{UserID: user.ID, Bio: input.Bio}).Error
	})
	if err != nil {
		internalError(c, err, "Failed to register")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		internalError(c, err, "Failed to issue token")
		return
	}

	utils.LogInfo("Gamer registered", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login - POST /login exchanges credentials for a token
func Login(c *gin.Context) {
	var input models.LoginInput
	if !bindInput(c, &input) {
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		internalError(c, err, "Failed to issue token")
		return
	}

	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{"valid": true, "token": token})
}
