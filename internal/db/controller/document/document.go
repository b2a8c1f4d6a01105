// Package document provides CRUD operations for the document library
// metadata rows. The file bytes themselves live in the object store; only
// the path is persisted here and the public URL is derived at read time.
package document

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

var (
	// ErrDocumentNotFound is returned when a document is not found.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// PublicURLFunc derives a public URL from a stored file path.
type PublicURLFunc func(path string) string

// Entry is one document row augmented with its derived public URL.
type Entry struct {
	models.Document
	PublicURL string
}

// GetAll retrieves all documents, newest first, with public URLs resolved
// through the given derivation func.
func GetAll(db *gorm.DB, publicURL PublicURLFunc) ([]Entry, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var docs []models.Document
	result := db.Order("created_at DESC, id DESC").Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, Entry{Document: d, PublicURL: publicURL(d.FilePath)})
	}

	return entries, nil
}

// Create inserts a new document metadata row.
func Create(db *gorm.DB, d *models.Document) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(d).Error
}

// GetByID retrieves a single document.
func GetByID(db *gorm.DB, id uint64) (*models.Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var d models.Document
	result := db.First(&d, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, result.Error
	}

	return &d, nil
}

// Delete removes a document metadata row.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Document{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
