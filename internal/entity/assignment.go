package entity

import "time"

// Assignment tells GiverID to prepare a gift for ReceiverID. Rows of a group
// are always replaced as a whole.
type Assignment struct {
	GroupID    string `gorm:"primaryKey;uniqueIndex:idx_draw_assignments_receiver"`
	Group      Group  `gorm:"foreignKey:GroupID"`
	GiverID    string `gorm:"primaryKey"`
	ReceiverID string `gorm:"uniqueIndex:idx_draw_assignments_receiver;not null"`
	Revealed   bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (Assignment) TableName() string {
	return "draw_assignments"
}
