// Package post implements the paginated, searchable, filterable blog list
// query plus the admin CRUD operations over blog posts.
package post

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/clearlane-advisory/clearlane-web/internal/db/models"
)

const (
	// PageSize is the fixed number of posts per blog list page.
	PageSize = 6

	// AllCategories is the sentinel category meaning "no category filter".
	AllCategories = "All"

	// publishedDisplayFormat renders published_at as a long date for display.
	publishedDisplayFormat = "January 2, 2006"
)

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrSlugEmpty is returned when a post is requested or written with an empty slug.
	ErrSlugEmpty = errors.New("post slug cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Params are the blog list query inputs. Page is 1-based; values below 1
// are treated as 1. Category equal to AllCategories (or empty) disables the
// facet filter.
type Params struct {
	Search   string
	Category string
	Page     int
}

// Item is one blog list row prepared for display.
type Item struct {
	ID        uint64
	Slug      string
	Title     string
	Excerpt   string
	ImageURL  string
	Published time.Time
	// PublishedDisplay is Published formatted as a long date string.
	PublishedDisplay string
	// Category is the resolved category name, empty when absent.
	Category string
}

// Page is one page of blog list results plus pagination metadata.
type Page struct {
	Items      []Item
	TotalPosts int64
	TotalPages int
}

// scope applies the shared predicate of the count and data queries: a
// case-insensitive OR contains over title and excerpt when a search term is
// present, and an exact-name category subquery when a facet is active. An
// unknown category name yields zero rows, not an error.
func scope(db *gorm.DB, params Params) *gorm.DB {
	q := db.Model(&models.BlogPost{})

	if s := strings.TrimSpace(params.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(excerpt) LIKE ?", pattern, pattern)
	}

	if params.Category != "" && params.Category != AllCategories {
		q = q.Where(
			"category_id IN (?)",
			db.Model(&models.Category{}).Select("id").Where("name = ?", params.Category),
		)
	}

	return q
}

// Query returns one page of posts matching the params. The count and data
// queries share one predicate; ordering is published_at descending with id
// descending as the deterministic tie-break. A page beyond the last yields
// an empty item list, not an error.
func Query(db *gorm.DB, params Params) (*Page, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if params.Page < 1 {
		params.Page = 1
	}

	var total int64
	if err := scope(db, params).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.BlogPost
	err := scope(db, params).
		Preload("Category").
		Order("published_at DESC, id DESC").
		Offset((params.Page - 1) * PageSize).
		Limit(PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	page := &Page{
		Items:      make([]Item, 0, len(posts)),
		TotalPosts: total,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}

	for i := range posts {
		page.Items = append(page.Items, newItem(&posts[i]))
	}

	return page, nil
}

func newItem(p *models.BlogPost) Item {
	return Item{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            p.Title,
		Excerpt:          p.Excerpt,
		ImageURL:         p.ImageURL,
		Published:        p.PublishedAt,
		PublishedDisplay: p.PublishedAt.Format(publishedDisplayFormat),
		Category:         p.CategoryName(),
	}
}

// GetBySlug retrieves a single post by its slug with the category resolved.
func GetBySlug(db *gorm.DB, slug string) (*models.BlogPost, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if slug == "" {
		return nil, ErrSlugEmpty
	}

	var p models.BlogPost
	result := db.Preload("Category").Where("slug = ?", slug).First(&p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// GetByID retrieves a single post by its ID with the category resolved.
func GetByID(db *gorm.DB, id uint64) (*models.BlogPost, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.BlogPost
	result := db.Preload("Category").First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, result.Error
	}

	return &p, nil
}

// Create inserts a new post.
func Create(db *gorm.DB, p *models.BlogPost) error {
	if db == nil {
		return ErrDBNil
	}
	if p.Slug == "" {
		return ErrSlugEmpty
	}

	return db.Create(p).Error
}

// Update saves an existing post.
func Update(db *gorm.DB, p *models.BlogPost) error {
	if db == nil {
		return ErrDBNil
	}
	if p.Slug == "" {
		return ErrSlugEmpty
	}

	return db.Save(p).Error
}

// Delete deletes a post by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.BlogPost{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}
