package models

type GameType struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"not null" json:"label"`
}

type GameTypeInput struct {
	Label string `json:"label" validate:"required,max=100"`
}
