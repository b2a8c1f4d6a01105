package models

import (
	"time"
)

// Category is a blog post facet. Names are unique and looked up by exact
// match when the blog list is filtered.
type Category struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"unique;size:100;not null"`
}

// BlogPost represents a published article. The slug uniquely identifies a
// post and is used as the URL key; the category name is resolved from the
// foreign key at read time.
type BlogPost struct {
	ID          uint64 `gorm:"primaryKey"`
	Slug        string `gorm:"unique;size:200;not null"`
	Title       string `gorm:"size:255;not null"`
	Excerpt     string `gorm:"type:text"`
	Body        string `gorm:"type:text"`
	ImageURL    string `gorm:"size:500"`
	PublishedAt time.Time
	CategoryID  *uint64
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryName returns the resolved category name, empty when the post has
// no category.
func (p *BlogPost) CategoryName() string {
	if p.Category == nil {
		return ""
	}

	return p.Category.Name
}
