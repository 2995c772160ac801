package entities

import (
	"time"

	"gorm.io/gorm"
)

// Service is an offering listed on the public site.
type Service struct {
	ID          string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Icon        string           `json:"icon"`
	Price       string           `json:"price"`
	Featured    bool             `json:"featured"`
	IsActive    bool             `json:"is_active"`
	Features    []ServiceFeature `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"service_features"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = newID(s.ID)
	return nil
}

type ServiceFeature struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ServiceID   string `gorm:"index;type:varchar(36);not null" json:"service_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}

func (f *ServiceFeature) BeforeCreate(tx *gorm.DB) (err error) {
	f.ID = newID(f.ID)
	return nil
}
