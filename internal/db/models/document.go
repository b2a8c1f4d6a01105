package models

import (
	"time"
)

// Document represents one file of the public document library. The public
// URL is not stored; it is derived from FilePath against the object store
// at read time.
type Document struct {
	ID               uint64 `gorm:"primaryKey"`
	Filename         string `gorm:"unique;size:255;not null"` // generated storage name
	OriginalFilename string `gorm:"size:255;not null"`
	FilePath         string `gorm:"size:500;not null"`
	FileSize         int64
	MimeType         string `gorm:"size:100"`
	Description      string `gorm:"type:text"`
	CreatedAt        time.Time
}
