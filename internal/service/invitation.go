// internal/service/invitation.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultInvitationTTL is applied when the admin does not pick one.
const DefaultInvitationTTL = 7 * 24 * time.Hour

// InvitationService issues and redeems admin-created, email-targeted
// membership grants.
type InvitationService struct {
	invitationRepo repository.InvitationRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	directory      Directory
	evaluator      *authz.Evaluator
	validate       *validator.Validate
	now            func() time.Time
}

func NewInvitationService(
	invitationRepo repository.InvitationRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	directory Directory,
	evaluator *authz.Evaluator,
) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		orgRepo:        orgRepo,
		directory:      directory,
		evaluator:      evaluator,
		validate:       validator.New(),
		now:            time.Now,
	}
}

type InviteInput struct {
	OrganizationID uuid.UUID     `json:"organization_id" validate:"required"`
	Email          string        `json:"email" validate:"required,email"`
	Role           model.Role    `json:"role" validate:"required"`
	SiteID         *uuid.UUID    `json:"site_id"`
	TTL            time.Duration `json:"-"`
}

// Invite creates a pending invitation. Admin of the organization only.
func (s *InvitationService) Invite(ctx context.Context, callerID uuid.UUID, input InviteInput) (*model.Invitation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, input.Role)
	}

	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin(input.OrganizationID) {
		return nil, domain.ErrUnauthorized
	}

	if input.SiteID != nil {
		site, err := s.orgRepo.FindSiteByID(ctx, *input.SiteID)
		if err != nil {
			return nil, err
		}
		if site.OrganizationID != input.OrganizationID {
			return nil, domain.ErrCrossOrganization
		}
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = DefaultInvitationTTL
	}

	invitation := &model.Invitation{
		OrganizationID: input.OrganizationID,
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Role:           input.Role,
		SiteID:         input.SiteID,
		Status:         model.InvitationPending,
		ExpiresAt:      s.now().Add(ttl),
	}
	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

// Redeem accepts a pending invitation on behalf of the caller. The
// invitation must be addressed to the caller's email, resolved via
// the privileged directory; expiry is enforced lazily against the
// stored timestamp. On success the membership is upserted with the
// invited role and site.
func (s *InvitationService) Redeem(ctx context.Context, callerID, invitationID uuid.UUID) (*model.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	user, err := s.directory.LookupByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(user.Email, invitation.Email) {
		return nil, domain.ErrEmailMismatch
	}

	return s.invitationRepo.Redeem(ctx, invitationID, callerID, s.now())
}

// Revoke cancels a pending invitation. Admin only.
func (s *InvitationService) Revoke(ctx context.Context, callerID, invitationID uuid.UUID) (*model.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanWriteInvitation(caller, *invitation) {
		return nil, domain.ErrUnauthorized
	}
	return s.invitationRepo.Revoke(ctx, invitationID)
}

// ListForOrg returns the organization's invitations. Admin only.
func (s *InvitationService) ListForOrg(ctx context.Context, callerID, orgID uuid.UUID) ([]model.Invitation, error) {
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin(orgID) {
		return nil, domain.ErrUnauthorized
	}
	return s.invitationRepo.FindByOrg(ctx, orgID)
}
