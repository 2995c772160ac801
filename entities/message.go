package entities

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	SenderID        string    `gorm:"index;type:varchar(36);not null" json:"sender_id"`
	RecipientID     string    `gorm:"index;type:varchar(36);not null" json:"recipient_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	Read            bool      `json:"read"`
	ParentMessageID *string   `gorm:"type:varchar(36)" json:"parent_message_id,omitempty"`
	Sender          *Profile  `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Recipient       *Profile  `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = newID(m.ID)
	return nil
}
