package db

import (
	"fmt"
	"time"

	"levelup/models"
	"levelup/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// DefaultGameTypes are inserted by SeedGameTypes into an empty table.
var DefaultGameTypes = []string{"Board game", "Card game", "Tabletop role-playing game", "Miniatures game", "Party game"}

// InitDB connects to PostgreSQL, migrates the schema and stores the handle in DB.
func InitDB(dsn string, seed bool) error {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Setup(conn, seed); err != nil {
		return err
	}

	DB = conn
	utils.Log.Info("Database connected and migrated")
	return nil
}

// Setup migrates the schema on conn and optionally seeds game types.
func Setup(conn *gorm.DB, seed bool) error {
	if err := Migrate(conn); err != nil {
		return err
	}
	if seed {
		if err := SeedGameTypes(conn); err != nil {
			return err
		}
	}
	return nil
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Gamer{},
		&models.GameType{},
		&models.Game{},
		&models.Event{},
		&models.EventGamer{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

func SeedGameTypes(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.GameType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count game types: %w", err)
	}
	if count > 0 {
		return nil
	}

	types := make([]models.GameType, 0, len(DefaultGameTypes))
	for _, label := range DefaultGameTypes {
		types = append(types, models.GameType{Label: label})
	}
	if err := conn.Create(&types).Error; err != nil {
		return fmt.Errorf("failed to seed game types: %w", err)
	}
	utils.LogInfo("Seeded game types", map[string]interface{}{"count": len(types)})
	return nil
}

// Close releases the pool behind DB.
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
