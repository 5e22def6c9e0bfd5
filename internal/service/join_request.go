// internal/service/join_request.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// JoinRequestService runs the two-party membership approval state
// machine: a user submits a pending request, an admin approves or
// rejects it exactly once.
type JoinRequestService struct {
	requestRepo repository.JoinRequestRepositoryIface
	orgRepo     repository.OrganizationRepositoryIface
	evaluator   *authz.Evaluator
	validate    *validator.Validate
	now         func() time.Time
}

func NewJoinRequestService(
	requestRepo repository.JoinRequestRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	evaluator *authz.Evaluator,
) *JoinRequestService {
	return &JoinRequestService{
		requestRepo: requestRepo,
		orgRepo:     orgRepo,
		evaluator:   evaluator,
		validate:    validator.New(),
		now:         time.Now,
	}
}

type SubmitJoinRequestInput struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Message        *string   `json:"message"`
}

// Submit creates a pending join request for the caller. A second
// submission while one is still pending returns the existing request
// instead of inserting a duplicate.
func (s *JoinRequestService) Submit(ctx context.Context, callerID uuid.UUID, input SubmitJoinRequestInput) (*model.JoinRequest, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if _, err := s.orgRepo.FindByID(ctx, input.OrganizationID); err != nil {
		return nil, err
	}

	request := &model.JoinRequest{
		OrganizationID: input.OrganizationID,
		UserID:         callerID,
		Message:        input.Message,
		Status:         model.JoinRequestPending,
	}

	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanSubmitJoinRequest(caller, *request) {
		return nil, domain.ErrUnauthorized
	}

	existing, err := s.requestRepo.FindPendingByOrgAndUser(ctx, input.OrganizationID, callerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrJoinRequestNotFound) {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

type ReviewJoinRequestInput struct {
	Role   model.Role `json:"role" validate:"required"`
	SiteID *uuid.UUID `json:"site_id"`
}

// Approve resolves a pending request, recording the reviewer and
// upserting the membership with the granted role and optional site.
// Re-approving a resolved request fails with ErrAlreadyReviewed and
// leaves the membership and audit fields untouched.
func (s *JoinRequestService) Approve(ctx context.Context, callerID, requestID uuid.UUID, input ReviewJoinRequestInput) (*model.JoinRequest, error) {
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, input.Role)
	}

	request, err := s.authorizeReview(ctx, callerID, requestID)
	if err != nil {
		return nil, err
	}

	if input.SiteID != nil {
		site, err := s.orgRepo.FindSiteByID(ctx, *input.SiteID)
		if err != nil {
			return nil, err
		}
		if site.OrganizationID != request.OrganizationID {
			return nil, domain.ErrCrossOrganization
		}
	}

	return s.requestRepo.Approve(ctx, requestID, callerID, input.Role, input.SiteID, s.now())
}

// Reject resolves a pending request with no membership side effect.
func (s *JoinRequestService) Reject(ctx context.Context, callerID, requestID uuid.UUID) (*model.JoinRequest, error) {
	if _, err := s.authorizeReview(ctx, callerID, requestID); err != nil {
		return nil, err
	}
	return s.requestRepo.Reject(ctx, requestID, callerID, s.now())
}

// ListForOrg returns the organization's join requests, admin only.
func (s *JoinRequestService) ListForOrg(ctx context.Context, callerID, orgID uuid.UUID) ([]model.JoinRequest, error) {
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin(orgID) {
		return nil, domain.ErrUnauthorized
	}
	return s.requestRepo.FindByOrg(ctx, orgID)
}

// ListOwn returns the caller's own join requests across organizations.
func (s *JoinRequestService) ListOwn(ctx context.Context, callerID uuid.UUID) ([]model.JoinRequest, error) {
	return s.requestRepo.FindByUser(ctx, callerID)
}

// Get returns one request, visible to the requester and to admins of
// the target organization.
func (s *JoinRequestService) Get(ctx context.Context, callerID, requestID uuid.UUID) (*model.JoinRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReadJoinRequest(caller, *request) {
		return nil, domain.ErrUnauthorized
	}
	return request, nil
}

func (s *JoinRequestService) authorizeReview(ctx context.Context, callerID, requestID uuid.UUID) (*model.JoinRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReviewJoinRequest(caller, *request) {
		return nil, domain.ErrUnauthorized
	}
	return request, nil
}
