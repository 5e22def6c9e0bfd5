// internal/service/member.go
package service

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/google/uuid"
)

// MemberService covers membership administration: listing an
// organization's members, changing roles, removing members, and the
// many-to-many member/site scoping.
type MemberService struct {
	memberRepo repository.MemberRepositoryIface
	orgRepo    repository.OrganizationRepositoryIface
	evaluator  *authz.Evaluator
}

func NewMemberService(
	memberRepo repository.MemberRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	evaluator *authz.Evaluator,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		orgRepo:    orgRepo,
		evaluator:  evaluator,
	}
}

// List returns the organization's members. Any member of the
// organization may read the roster.
func (s *MemberService) List(ctx context.Context, callerID, orgID uuid.UUID) ([]model.Member, error) {
	org, err := s.orgRepo.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanListMembers(caller, *org) {
		return nil, domain.ErrUnauthorized
	}
	return s.memberRepo.FindByOrg(ctx, orgID)
}

// SetRole updates a member's role and single-site scope. Admin only.
func (s *MemberService) SetRole(ctx context.Context, callerID, memberID uuid.UUID, role model.Role, siteID *uuid.UUID) (*model.Member, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	member, err := s.authorizeWrite(ctx, callerID, memberID)
	if err != nil {
		return nil, err
	}
	if siteID != nil {
		if err := s.checkSiteOrg(ctx, *siteID, member.OrganizationID); err != nil {
			return nil, err
		}
	}
	return s.memberRepo.Upsert(ctx, member.OrganizationID, member.UserID, role, siteID)
}

// Remove deletes a membership and its site assignments. Admin only.
func (s *MemberService) Remove(ctx context.Context, callerID, memberID uuid.UUID) error {
	member, err := s.authorizeWrite(ctx, callerID, memberID)
	if err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, member.ID)
}

// AssignSite scopes a member to an additional site. Admin only; both
// the member and the site must belong to the same organization.
func (s *MemberService) AssignSite(ctx context.Context, callerID, memberID, siteID uuid.UUID) (*model.MemberSiteAssignment, error) {
	member, err := s.authorizeWrite(ctx, callerID, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSiteOrg(ctx, siteID, member.OrganizationID); err != nil {
		return nil, err
	}
	assignment := &model.MemberSiteAssignment{
		MemberID: member.ID,
		SiteID:   siteID,
	}
	if err := s.memberRepo.AssignSite(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// UnassignSite removes one member/site link. Admin only.
func (s *MemberService) UnassignSite(ctx context.Context, callerID, memberID, siteID uuid.UUID) error {
	if _, err := s.authorizeWrite(ctx, callerID, memberID); err != nil {
		return err
	}
	return s.memberRepo.UnassignSite(ctx, memberID, siteID)
}

// ListAssignments returns a member's site assignments, visible to any
// member of the same organization.
func (s *MemberService) ListAssignments(ctx context.Context, callerID, memberID uuid.UUID) ([]model.MemberSiteAssignment, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanReadSiteAssignment(caller, *member) {
		return nil, domain.ErrUnauthorized
	}
	return s.memberRepo.FindAssignmentsByMember(ctx, memberID)
}

func (s *MemberService) authorizeWrite(ctx context.Context, callerID, memberID uuid.UUID) (*model.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !authz.CanWriteMember(caller, *member) {
		return nil, domain.ErrUnauthorized
	}
	return member, nil
}

func (s *MemberService) checkSiteOrg(ctx context.Context, siteID, orgID uuid.UUID) error {
	site, err := s.orgRepo.FindSiteByID(ctx, siteID)
	if err != nil {
		return err
	}
	if site.OrganizationID != orgID {
		return domain.ErrCrossOrganization
	}
	return nil
}
