// Package category provides lookup and admin operations for blog categories.
package category

import (
	"errors"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameEmpty is returned when a category is written with an empty name.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetAll retrieves all categories ordered by name. Used to build the blog
// filter facets.
func GetAll(db *gorm.DB) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []models.Category
	result := db.Order("name ASC").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// LookupIDByName resolves a category name to its ID with an exact match.
func LookupIDByName(db *gorm.DB, name string) (uint64, error) {
	if db == nil {
		return 0, ErrDBNil
	}
	if name == "" {
		return 0, ErrCategoryNameEmpty
	}

	var c models.Category
	result := db.Where("name = ?", name).First(&c)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, result.Error
	}

	return c.ID, nil
}

// GetOrCreate returns the category with the given name, creating it when
// missing. Used by the admin post form.
func GetOrCreate(db *gorm.DB, name string) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}

	var c models.Category
	result := db.Where("name = ?", name).FirstOrCreate(&c, models.Category{Name: name})
	if result.Error != nil {
		return nil, result.Error
	}

	return &c, nil
}
