// internal/service/invitation_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/mocks"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type invitationFixture struct {
	invitationRepo *mocks.MockInvitationRepositoryIface
	orgRepo        *mocks.MockOrganizationRepositoryIface
	memberRepo     *mocks.MockMemberRepositoryIface
	userRepo       *mocks.MockUserRepositoryIface
	svc            *InvitationService
}

func newInvitationFixture(ctrl *gomock.Controller) invitationFixture {
	invitationRepo := mocks.NewMockInvitationRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	directory := NewDirectoryService(userRepo)
	return invitationFixture{
		invitationRepo: invitationRepo,
		orgRepo:        orgRepo,
		memberRepo:     memberRepo,
		userRepo:       userRepo,
		svc:            NewInvitationService(invitationRepo, orgRepo, directory, authz.NewEvaluator(memberRepo)),
	}
}

func TestInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()

	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)
	f.invitationRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, invitation *model.Invitation) error {
			assert.Equal(t, orgID, invitation.OrganizationID)
			assert.Equal(t, "new@example.com", invitation.Email)
			assert.Equal(t, model.InvitationPending, invitation.Status)
			assert.WithinDuration(t, time.Now().Add(DefaultInvitationTTL), invitation.ExpiresAt, time.Minute)
			return nil
		})

	invitation, err := f.svc.Invite(context.Background(), adminID, InviteInput{
		OrganizationID: orgID,
		Email:          " New@Example.com ",
		Role:           model.RoleEditor,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEditor, invitation.Role)
}

func TestInviteNonAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleEditor)

	_, err := f.svc.Invite(context.Background(), callerID, InviteInput{
		OrganizationID: orgID,
		Email:          "new@example.com",
		Role:           model.RoleViewer,
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestInviteInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	_, err := f.svc.Invite(context.Background(), uuid.New(), InviteInput{
		OrganizationID: uuid.New(),
		Email:          "not-an-email",
		Role:           model.RoleViewer,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInviteCrossOrganizationSite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()
	siteID := uuid.New()

	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)
	f.orgRepo.EXPECT().FindSiteByID(gomock.Any(), siteID).
		Return(&model.Site{ID: siteID, OrganizationID: uuid.New()}, nil)

	_, err := f.svc.Invite(context.Background(), adminID, InviteInput{
		OrganizationID: orgID,
		Email:          "new@example.com",
		Role:           model.RoleViewer,
		SiteID:         &siteID,
	})
	assert.ErrorIs(t, err, domain.ErrCrossOrganization)
}

func TestInvitationRedeem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	callerID := uuid.New()
	invitationID := uuid.New()
	invitation := &model.Invitation{
		ID:             invitationID,
		OrganizationID: uuid.New(),
		Email:          "invitee@example.com",
		Role:           model.RoleEditor,
		Status:         model.InvitationPending,
		ExpiresAt:      time.Now().Add(time.Hour),
	}

	f.invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).Return(invitation, nil)
	f.userRepo.EXPECT().FindByID(gomock.Any(), callerID).
		Return(&model.User{ID: callerID, Email: "Invitee@Example.com"}, nil)

	accepted := *invitation
	accepted.Status = model.InvitationAccepted
	f.invitationRepo.EXPECT().
		Redeem(gomock.Any(), invitationID, callerID, gomock.Any()).
		Return(&accepted, nil)

	got, err := f.svc.Redeem(context.Background(), callerID, invitationID)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationAccepted, got.Status)
}

func TestInvitationRedeemEmailMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	callerID := uuid.New()
	invitationID := uuid.New()
	invitation := &model.Invitation{
		ID:        invitationID,
		Email:     "invitee@example.com",
		Status:    model.InvitationPending,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	f.invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).Return(invitation, nil)
	f.userRepo.EXPECT().FindByID(gomock.Any(), callerID).
		Return(&model.User{ID: callerID, Email: "someone-else@example.com"}, nil)

	_, err := f.svc.Redeem(context.Background(), callerID, invitationID)
	assert.ErrorIs(t, err, domain.ErrEmailMismatch)
}

func TestInvitationRedeemExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	callerID := uuid.New()
	invitationID := uuid.New()
	invitation := &model.Invitation{
		ID:        invitationID,
		Email:     "invitee@example.com",
		Status:    model.InvitationPending,
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	f.invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).Return(invitation, nil)
	f.userRepo.EXPECT().FindByID(gomock.Any(), callerID).
		Return(&model.User{ID: callerID, Email: "invitee@example.com"}, nil)
	f.invitationRepo.EXPECT().
		Redeem(gomock.Any(), invitationID, callerID, gomock.Any()).
		Return(nil, domain.ErrInvitationExpired)

	_, err := f.svc.Redeem(context.Background(), callerID, invitationID)
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
}

func TestInvitationRevoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()
	invitation := &model.Invitation{
		ID:             invitationID,
		OrganizationID: orgID,
		Email:          "invitee@example.com",
		Status:         model.InvitationPending,
	}

	f.invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).Return(invitation, nil)
	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)

	revoked := *invitation
	revoked.Status = model.InvitationRevoked
	f.invitationRepo.EXPECT().Revoke(gomock.Any(), invitationID).Return(&revoked, nil)

	got, err := f.svc.Revoke(context.Background(), adminID, invitationID)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationRevoked, got.Status)
}

func TestInvitationRevokeNonAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()
	invitation := &model.Invitation{
		ID:             invitationID,
		OrganizationID: orgID,
		Email:          "invitee@example.com",
		Status:         model.InvitationPending,
	}

	f.invitationRepo.EXPECT().FindByID(gomock.Any(), invitationID).Return(invitation, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleViewer)

	_, err := f.svc.Revoke(context.Background(), callerID, invitationID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestInvitationListForOrgAdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newInvitationFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleViewer)

	_, err := f.svc.ListForOrg(context.Background(), callerID, orgID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
