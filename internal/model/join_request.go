// internal/model/join_request.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a user-initiated request for membership, resolved
// exactly once by an organization admin. The reviewer identity and
// timestamp are recorded on the resolving transition.
type JoinRequest struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"organization_id"`
	UserID         uuid.UUID         `gorm:"type:uuid;not null" json:"user_id"`
	Message        *string           `gorm:"type:text" json:"message,omitempty"`
	Status         JoinRequestStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	ReviewedByID   *uuid.UUID        `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time        `json:"reviewed_at,omitempty"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
