// internal/model/member.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Member is a user's role-bearing relationship to one organization,
// unique per (organization, user).
type Member struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_org_user" json:"organization_id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_members_org_user" json:"user_id"`
	Role           Role      `gorm:"type:text;not null" json:"role"`

	// SiteID narrows a non-admin member to a single site. Multi-site
	// scoping goes through MemberSiteAssignment rows instead.
	SiteID *uuid.UUID `gorm:"type:uuid" json:"site_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// MemberSiteAssignment links a member to one site, unique per
// (member, site). Cascades from either parent.
type MemberSiteAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_member_sites_member_site" json:"member_id"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_member_sites_member_site" json:"site_id"`
	CreatedAt time.Time `json:"created_at"`

	Member Member `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"-"`
	Site   Site   `gorm:"foreignKey:SiteID;constraint:OnDelete:CASCADE" json:"-"`
}
