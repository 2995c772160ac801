package entities

import (
	"time"

	"gorm.io/gorm"
)

type Testimonial struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"index;type:varchar(36);not null" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Rating     int       `gorm:"not null" json:"rating"`
	ServiceID  *string   `gorm:"type:varchar(36)" json:"service_id,omitempty"`
	IsApproved bool      `gorm:"index" json:"is_approved"`
	IsFeatured bool      `json:"is_featured"`
	User       *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Service    *Service  `gorm:"foreignKey:ServiceID;constraint:OnDelete:SET NULL" json:"service,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) (err error) {
	t.ID = newID(t.ID)
	return nil
}
