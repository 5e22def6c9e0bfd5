// internal/service/organization.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// OrganizationService creates organizations and manages their sites.
type OrganizationService struct {
	orgRepo    repository.OrganizationRepositoryIface
	memberRepo repository.MemberRepositoryIface
	evaluator  *authz.Evaluator
	validate   *validator.Validate
}

func NewOrganizationService(
	orgRepo repository.OrganizationRepositoryIface,
	memberRepo repository.MemberRepositoryIface,
	evaluator *authz.Evaluator,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		evaluator:  evaluator,
		validate:   validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name string `json:"name" validate:"required"`
}

// Create makes a new organization with the caller as its first admin.
func (s *OrganizationService) Create(ctx context.Context, callerID uuid.UUID, input CreateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	org := &model.Organization{
		Name:        input.Name,
		CreatedByID: callerID,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	if _, err := s.memberRepo.Upsert(ctx, org.ID, callerID, model.RoleAdmin, nil); err != nil {
		return nil, fmt.Errorf("creating founding membership: %w", err)
	}
	return org, nil
}

// ListForCaller returns the organizations the caller belongs to.
func (s *OrganizationService) ListForCaller(ctx context.Context, callerID uuid.UUID) ([]model.Organization, error) {
	return s.orgRepo.FindByUser(ctx, callerID)
}

// Get returns one organization, visible to its members only.
func (s *OrganizationService) Get(ctx context.Context, callerID, orgID uuid.UUID) (*model.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.MemberOf(orgID) {
		return nil, domain.ErrUnauthorized
	}
	return org, nil
}

// Delete removes an organization and everything it owns: members,
// site assignments, sites, invitations, and join requests. Admin only.
func (s *OrganizationService) Delete(ctx context.Context, callerID, orgID uuid.UUID) error {
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin(orgID) {
		return domain.ErrUnauthorized
	}
	return s.orgRepo.Delete(ctx, orgID)
}

type CreateSiteInput struct {
	OrganizationID uuid.UUID `json:"organization_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
}

// CreateSite adds a site to the organization. Admin only.
func (s *OrganizationService) CreateSite(ctx context.Context, callerID uuid.UUID, input CreateSiteInput) (*model.Site, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin(input.OrganizationID) {
		return nil, domain.ErrUnauthorized
	}
	site := &model.Site{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
	}
	if err := s.orgRepo.CreateSite(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// ListSites returns the sites of an organization the caller may see,
// filtered down to the caller's site scope.
func (s *OrganizationService) ListSites(ctx context.Context, callerID, orgID uuid.UUID) ([]model.Site, error) {
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.MemberOf(orgID) {
		return nil, domain.ErrUnauthorized
	}
	sites, err := s.orgRepo.FindSitesByOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}
	scope := caller.SiteScope(orgID)
	if scope.Unscoped {
		return sites, nil
	}
	visible := sites[:0]
	for _, site := range sites {
		if scope.Contains(site.ID) {
			visible = append(visible, site)
		}
	}
	return visible, nil
}

// DeleteSite removes a site and its member assignments. Admin only.
func (s *OrganizationService) DeleteSite(ctx context.Context, callerID, siteID uuid.UUID) error {
	site, err := s.orgRepo.FindSiteByID(ctx, siteID)
	if err != nil {
		return err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return err
	}
	if !authz.CanWriteSite(caller, *site) {
		return domain.ErrUnauthorized
	}
	return s.orgRepo.DeleteSite(ctx, siteID)
}
