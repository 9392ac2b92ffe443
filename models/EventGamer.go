package models

// EventGamer records one Gamer attending one Event.
type EventGamer struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	EventID uint  `gorm:"not null;uniqueIndex:idx_event_gamer" json:"event"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
	GamerID uint  `gorm:"not null;uniqueIndex:idx_event_gamer" json:"gamer"`
	Gamer   Gamer `gorm:"foreignKey:GamerID;constraint:OnDelete:CASCADE" json:"-"`
}
