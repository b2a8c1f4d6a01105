package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

// Service provides authorization checks for the content-management panel.
type Service struct {
	db *gorm.DB
}

// NewService creates a new authorization service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(userID uint64) (*models.User, error) {
	var user models.User

	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// IsAdmin reports whether the user exists, is active and carries the admin
// flag. The flag is read from the database on every call so that revoking
// access takes effect without waiting for the session to expire.
func (s *Service) IsAdmin(userID uint64) (bool, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}

		return false, err
	}

	return user.Active && user.Admin, nil
}
