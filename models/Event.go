package models

import "gorm.io/datatypes"

type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	GameID      uint           `gorm:"not null;index" json:"game"`
	Game        Game           `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Description string         `gorm:"size:300;not null" json:"description"`
	Date        datatypes.Date `gorm:"type:date;not null" json:"date"`
	Time        datatypes.Time `gorm:"type:time;not null" json:"time"`
	OrganizerID uint           `gorm:"not null;index" json:"organizer"`
	Organizer   Gamer          `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"-"`
}

// EventInput - body of POST /events and PUT /events/:id.
// The organizer is never read from the body.
type EventInput struct {
	Game        uint   `json:"game" validate:"required,gte=1"`
	Description string `json:"description" validate:"required,max=300"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
}
