// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the local projection of an identity-provider account. The
// identity provider owns credentials and authentication; only the
// stable id and email are mirrored here for directory lookups.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
