// Package contact persists contact lead-form submissions.
package contact

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new contact message.
func Create(db *gorm.DB, m *models.ContactMessage) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(m).Error
}

// GetAll retrieves all contact messages, newest first. Admin panel only.
func GetAll(db *gorm.DB) ([]models.ContactMessage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var messages []models.ContactMessage
	result := db.Order("created_at DESC, id DESC").Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}
