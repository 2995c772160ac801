package entities

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Profile is a portal account: an administrator or a client of the firm.
type Profile struct {
	ID           string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `gorm:"type:varchar(16);not null;default:client" json:"role"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	Company      string     `json:"company"`
	AvatarURL    string     `json:"avatar_url"`
	Status       string     `gorm:"type:varchar(16);not null;default:active" json:"status"`
	InvitationID string     `gorm:"type:varchar(36)" json:"-"`
	ClientSince  *time.Time `json:"client_since,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = newID(p.ID)
	if p.Role == "" {
		p.Role = RoleClient
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	return nil
}

// IsAdmin reports whether the profile has the admin role.
func (p *Profile) IsAdmin() bool { return p.Role == RoleAdmin }
