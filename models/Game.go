package models

type Game struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	Title           string   `gorm:"not null" json:"title"`
	Maker           string   `gorm:"not null" json:"maker"`
	NumberOfPlayers int      `gorm:"not null" json:"number_of_players"`
	SkillLevel      int      `gorm:"not null" json:"skill_level"`
	GamerID         uint     `gorm:"not null;index" json:"gamer"`
	Gamer           Gamer    `gorm:"foreignKey:GamerID;constraint:OnDelete:CASCADE" json:"-"`
	GameTypeID      uint     `gorm:"not null;index" json:"game_type"`
	GameType        GameType `gorm:"foreignKey:GameTypeID;constraint:OnDelete:CASCADE" json:"-"`
}

// CreateGameInput - body of POST /games
type CreateGameInput struct {
	Title           string `json:"title" validate:"required,max=255"`
	Maker           string `json:"maker" validate:"required,max=255"`
	NumberOfPlayers *int   `json:"numberOfPlayers" validate:"required,gte=1"`
	SkillLevel      *int   `json:"skillLevel" validate:"required,gte=0"`
	GameType        uint   `json:"gameType" validate:"required,gte=1"`
}

// UpdateGameInput - body of PUT /games/:id, the whole record is sent
type UpdateGameInput struct {
	Title           string `json:"title" validate:"required,max=255"`
	Maker           string `json:"maker" validate:"required,max=255"`
	NumberOfPlayers *int   `json:"number_of_players" validate:"required,gte=1"`
	SkillLevel      *int   `json:"skill_level" validate:"required,gte=0"`
	Gamer           uint   `json:"gamer" validate:"required,gte=1"`
	GameType        uint   `json:"game_type" validate:"required,gte=1"`
}
