package models

import (
	"time"
)

// ContactMessage represents one submission of the contact lead form.
type ContactMessage struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Email     string `gorm:"size:255;not null"`
	Company   string `gorm:"size:200"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}
