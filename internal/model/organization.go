// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null" json:"created_by_id"`

	// JoinCode is valid only while non-nil and JoinCodeExpires is in
	// the future. Reissuing replaces both fields in one update.
	JoinCode        *string    `gorm:"type:text" json:"-"`
	JoinCodeExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CreatedBy User     `gorm:"foreignKey:CreatedByID" json:"-"`
	Members   []Member `gorm:"foreignKey:OrganizationID" json:"-"`
	Sites     []Site   `gorm:"foreignKey:OrganizationID" json:"-"`
}

// HasActiveJoinCode reports whether the organization's join code
// matches and has not lapsed at the given instant.
func (o *Organization) HasActiveJoinCode(code string, now time.Time) bool {
	if o.JoinCode == nil || o.JoinCodeExpires == nil {
		return false
	}
	return *o.JoinCode == code && now.Before(*o.JoinCodeExpires)
}

type Site struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}
