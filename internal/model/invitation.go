// internal/model/invitation.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

// Invitation is an admin-issued, email-targeted pending membership
// grant. accepted, expired and revoked are terminal.
type Invitation struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID        `gorm:"type:uuid;not null;index" json:"organization_id"`
	Email          string           `gorm:"type:citext;not null" json:"email"`
	Role           Role             `gorm:"type:text;not null" json:"role"`
	SiteID         *uuid.UUID       `gorm:"type:uuid" json:"site_id,omitempty"`
	Status         InvitationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	ExpiresAt      time.Time        `gorm:"not null" json:"expires_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}

// Expired reports whether the invitation has lapsed at the given
// instant. Status is checked separately.
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
