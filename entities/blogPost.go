package entities

import (
	"time"

	"gorm.io/gorm"
)

type BlogPost struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title      string         `gorm:"not null" json:"title"`
	Slug       string         `gorm:"uniqueIndex;not null" json:"slug"`
	Content    string         `gorm:"type:text" json:"content"`
	Excerpt    string         `gorm:"type:text" json:"excerpt"`
	CoverImage string         `json:"cover_image"`
	AuthorID   string         `gorm:"index;type:varchar(36)" json:"author_id"`
	AuthorName string         `json:"author_name,omitempty"`
	Published  bool           `gorm:"index" json:"published"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) (err error) {
	b.ID = newID(b.ID)
	return nil
}
