package entities

import (
	"time"

	"gorm.io/gorm"
)

// Client service statuses, stored in French as displayed.
const (
	ClientServicePlanned    = "Planifié"
	ClientServiceInProgress = "En cours"
	ClientServiceDone       = "Terminé"
	ClientServiceCancelled  = "Annulé"
)

// ClientService is an engagement delivered to one client.
type ClientService struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string     `gorm:"index;type:varchar(36);not null" json:"user_id"`
	ServiceID   string     `gorm:"index;type:varchar(36)" json:"service_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	ServiceDate time.Time  `json:"service_date"`
	Status      string     `gorm:"type:varchar(32)" json:"status"`
	Notes       string     `gorm:"type:text" json:"notes"`
	Documents   []Document `gorm:"foreignKey:ClientServiceID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (cs *ClientService) BeforeCreate(tx *gorm.DB) (err error) {
	cs.ID = newID(cs.ID)
	if cs.Status == "" {
		cs.Status = ClientServicePlanned
	}
	return nil
}

// Document is a file attached to a client service.
type Document struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ClientServiceID string    `gorm:"index;type:varchar(36);not null" json:"client_service_id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	FileURL         string    `gorm:"not null" json:"file_url"`
	FileType        string    `json:"file_type"`
	FileSize        int64     `json:"file_size"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) (err error) {
	d.ID = newID(d.ID)
	return nil
}
