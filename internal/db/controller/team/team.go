// Package team provides CRUD operations for the public team roster.
package team

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

var (
	// ErrMemberNotFound is returned when a team member is not found.
	ErrMemberNotFound = errors.New("team member not found")
	// ErrMemberNameEmpty is returned when a member is written with an empty name.
	ErrMemberNameEmpty = errors.New("team member name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all team members in display order.
func GetAll(db *gorm.DB) ([]models.TeamMember, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var members []models.TeamMember
	result := db.Order("display_order ASC, id ASC").Find(&members)
	if result.Error != nil {
		return nil, result.Error
	}

	return members, nil
}

// GetByID retrieves a single team member.
func GetByID(db *gorm.DB, id uint64) (*models.TeamMember, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var m models.TeamMember
	result := db.First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, result.Error
	}

	return &m, nil
}

// Create appends a member to the roster. When no display order was given
// it is assigned as max(order)+1 so new members sort last.
func Create(db *gorm.DB, m *models.TeamMember) error {
	if db == nil {
		return ErrDBNil
	}
	if m.Name == "" {
		return ErrMemberNameEmpty
	}

	if m.Order == 0 {
		var maxOrder int
		row := db.Model(&models.TeamMember{}).Select("COALESCE(MAX(display_order), 0)").Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}

		m.Order = maxOrder + 1
	}

	return db.Create(m).Error
}

// Update saves an existing member.
func Update(db *gorm.DB, m *models.TeamMember) error {
	if db == nil {
		return ErrDBNil
	}
	if m.Name == "" {
		return ErrMemberNameEmpty
	}

	return db.Save(m).Error
}

// Delete removes a member from the roster.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.TeamMember{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
