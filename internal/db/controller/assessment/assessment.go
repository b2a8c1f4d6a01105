// Package assessment persists the AI-readiness assessment sessions and
// responses.
package assessment

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

var (
	// ErrSessionNotFound is returned when a session is not found.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrResponseNotFound is returned when a response is not found.
	ErrResponseNotFound = errors.New("assessment response not found")
	// ErrSessionIDEmpty is returned when a write references an empty session ID.
	ErrSessionIDEmpty = errors.New("assessment session id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// InsertSession creates the session row capturing attribution metadata.
// Called eagerly when the wizard's hero step renders.
func InsertSession(db *gorm.DB, s *models.AssessmentSession) error {
	if db == nil {
		return ErrDBNil
	}
	if s.ID == "" {
		return ErrSessionIDEmpty
	}

	return db.Create(s).Error
}

// GetSession retrieves a session by ID.
func GetSession(db *gorm.DB, id string) (*models.AssessmentSession, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if id == "" {
		return nil, ErrSessionIDEmpty
	}

	var s models.AssessmentSession
	result := db.Where("id = ?", id).First(&s)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, result.Error
	}

	return &s, nil
}

// MarkSessionCompleted stamps the completion time. Best-effort at the end of
// a successful wizard run.
func MarkSessionCompleted(db *gorm.DB, id string, now time.Time) error {
	if db == nil {
		return ErrDBNil
	}
	if id == "" {
		return ErrSessionIDEmpty
	}

	result := db.Model(&models.AssessmentSession{}).
		Where("id = ?", id).
		Update("completed_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// InsertResponse creates the response row. Status starts as "generating"
// unless the caller set one.
func InsertResponse(db *gorm.DB, r *models.AssessmentResponse) error {
	if db == nil {
		return ErrDBNil
	}
	if r.SessionID == "" {
		return ErrSessionIDEmpty
	}

	if r.Status == "" {
		r.Status = models.ResponseStatusGenerating
	}

	return db.Create(r).Error
}

// SetResponseResult stores the generated (or fallback) text and the final
// status tag on a response row.
func SetResponseResult(db *gorm.DB, id uint64, status models.ResponseStatus, result string) error {
	if db == nil {
		return ErrDBNil
	}

	res := db.Model(&models.AssessmentResponse{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "result": result})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrResponseNotFound
	}

	return nil
}
