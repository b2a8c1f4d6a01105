package models

import (
	"time"
)

// TeamMember represents one entry of the public team roster. Order
// determines display sequence; new members are appended with max(order)+1.
type TeamMember struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Position  string `gorm:"size:200"`
	Bio       string `gorm:"type:text"`
	ImageURL  string `gorm:"size:500"`
	Order     int    `gorm:"column:display_order;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
