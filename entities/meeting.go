package entities

import (
	"time"

	"gorm.io/gorm"
)

const (
	MeetingPlanned   = "Planifié"
	MeetingConfirmed = "Confirmé"
	MeetingCancelled = "Annulé"
	MeetingDone      = "Terminé"
)

type Meeting struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID      string    `gorm:"index;type:varchar(36);not null" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	MeetingDate time.Time `json:"meeting_date"`
	Status      string    `gorm:"type:varchar(32)" json:"status"`
	Location    string    `json:"location"`
	Client      *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (m *Meeting) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = newID(m.ID)
	if m.Status == "" {
		m.Status = MeetingPlanned
	}
	return nil
}
