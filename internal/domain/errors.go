// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")

	// User-related errors
	ErrUserNotFound = errors.New("user not found")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrSiteNotFound         = errors.New("site not found")
	ErrCrossOrganization    = errors.New("entities belong to different organizations")

	// Membership-related errors
	ErrMemberNotFound     = errors.New("member not found")
	ErrAssignmentNotFound = errors.New("site assignment not found")
	ErrInvalidRole        = errors.New("invalid role")

	// Join-code errors
	ErrJoinCodeNotFound = errors.New("join code not found")
	ErrJoinCodeExpired  = errors.New("join code expired")

	// Invitation errors
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrAlreadyResolved    = errors.New("invitation already resolved")
	ErrEmailMismatch      = errors.New("invitation addressed to a different email")

	// Join-request errors
	ErrJoinRequestNotFound = errors.New("join request not found")
	ErrAlreadyReviewed     = errors.New("join request already reviewed")
)
