// internal/service/join_request_test.go
package service

import (
	"context"
	"testing"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/mocks"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type joinRequestFixture struct {
	requestRepo *mocks.MockJoinRequestRepositoryIface
	orgRepo     *mocks.MockOrganizationRepositoryIface
	memberRepo  *mocks.MockMemberRepositoryIface
	svc         *JoinRequestService
}

func newJoinRequestFixture(ctrl *gomock.Controller) joinRequestFixture {
	requestRepo := mocks.NewMockJoinRequestRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	return joinRequestFixture{
		requestRepo: requestRepo,
		orgRepo:     orgRepo,
		memberRepo:  memberRepo,
		svc:         NewJoinRequestService(requestRepo, orgRepo, authz.NewEvaluator(memberRepo)),
	}
}

func TestJoinRequestSubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()
	message := "let me in"

	f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, "")
	f.requestRepo.EXPECT().
		FindPendingByOrgAndUser(gomock.Any(), orgID, callerID).
		Return(nil, domain.ErrJoinRequestNotFound)
	f.requestRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, request *model.JoinRequest) error {
			assert.Equal(t, orgID, request.OrganizationID)
			assert.Equal(t, callerID, request.UserID)
			assert.Equal(t, model.JoinRequestPending, request.Status)
			return nil
		})

	request, err := f.svc.Submit(context.Background(), callerID, SubmitJoinRequestInput{
		OrganizationID: orgID,
		Message:        &message,
	})
	require.NoError(t, err)
	assert.Equal(t, model.JoinRequestPending, request.Status)
}

func TestJoinRequestSubmitDeduplicatesPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()
	existing := &model.JoinRequest{
		ID:             uuid.New(),
		OrganizationID: orgID,
		UserID:         callerID,
		Status:         model.JoinRequestPending,
	}

	f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, "")
	f.requestRepo.EXPECT().
		FindPendingByOrgAndUser(gomock.Any(), orgID, callerID).
		Return(existing, nil)
	// No Create call: the pending request is returned as-is.

	request, err := f.svc.Submit(context.Background(), callerID, SubmitJoinRequestInput{OrganizationID: orgID})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, request.ID)
}

func TestJoinRequestSubmitUnknownOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	orgID := uuid.New()
	f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(nil, domain.ErrOrganizationNotFound)

	_, err := f.svc.Submit(context.Background(), uuid.New(), SubmitJoinRequestInput{OrganizationID: orgID})
	assert.ErrorIs(t, err, domain.ErrOrganizationNotFound)
}

func TestJoinRequestApprove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()
	requestID := uuid.New()
	siteID := uuid.New()
	pending := &model.JoinRequest{
		ID:             requestID,
		OrganizationID: orgID,
		UserID:         uuid.New(),
		Status:         model.JoinRequestPending,
	}

	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(pending, nil)
	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)
	f.orgRepo.EXPECT().FindSiteByID(gomock.Any(), siteID).
		Return(&model.Site{ID: siteID, OrganizationID: orgID}, nil)

	approved := *pending
	approved.Status = model.JoinRequestApproved
	f.requestRepo.EXPECT().
		Approve(gomock.Any(), requestID, adminID, model.RoleEditor, &siteID, gomock.Any()).
		Return(&approved, nil)

	request, err := f.svc.Approve(context.Background(), adminID, requestID, ReviewJoinRequestInput{
		Role:   model.RoleEditor,
		SiteID: &siteID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.JoinRequestApproved, request.Status)
}

func TestJoinRequestApproveNonAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()
	requestID := uuid.New()
	pending := &model.JoinRequest{
		ID:             requestID,
		OrganizationID: orgID,
		UserID:         uuid.New(),
		Status:         model.JoinRequestPending,
	}

	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(pending, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleViewer)

	_, err := f.svc.Approve(context.Background(), callerID, requestID, ReviewJoinRequestInput{Role: model.RoleViewer})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJoinRequestApproveInvalidRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	_, err := f.svc.Approve(context.Background(), uuid.New(), uuid.New(), ReviewJoinRequestInput{Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestJoinRequestApproveCrossOrganizationSite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()
	requestID := uuid.New()
	siteID := uuid.New()
	pending := &model.JoinRequest{
		ID:             requestID,
		OrganizationID: orgID,
		UserID:         uuid.New(),
		Status:         model.JoinRequestPending,
	}

	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(pending, nil)
	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)
	f.orgRepo.EXPECT().FindSiteByID(gomock.Any(), siteID).
		Return(&model.Site{ID: siteID, OrganizationID: uuid.New()}, nil)

	_, err := f.svc.Approve(context.Background(), adminID, requestID, ReviewJoinRequestInput{
		Role:   model.RoleEditor,
		SiteID: &siteID,
	})
	assert.ErrorIs(t, err, domain.ErrCrossOrganization)
}

func TestJoinRequestApproveAlreadyReviewed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()
	requestID := uuid.New()
	resolved := &model.JoinRequest{
		ID:             requestID,
		OrganizationID: orgID,
		UserID:         uuid.New(),
		Status:         model.JoinRequestApproved,
	}

	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(resolved, nil)
	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)
	f.requestRepo.EXPECT().
		Approve(gomock.Any(), requestID, adminID, model.RoleEditor, nil, gomock.Any()).
		Return(nil, domain.ErrAlreadyReviewed)

	_, err := f.svc.Approve(context.Background(), adminID, requestID, ReviewJoinRequestInput{Role: model.RoleEditor})
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
}

func TestJoinRequestReject(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	adminID := uuid.New()
	orgID := uuid.New()
	requestID := uuid.New()
	pending := &model.JoinRequest{
		ID:             requestID,
		OrganizationID: orgID,
		UserID:         uuid.New(),
		Status:         model.JoinRequestPending,
	}

	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(pending, nil)
	expectSnapshot(f.memberRepo, adminID, orgID, model.RoleAdmin)

	rejected := *pending
	rejected.Status = model.JoinRequestRejected
	f.requestRepo.EXPECT().
		Reject(gomock.Any(), requestID, adminID, gomock.Any()).
		Return(&rejected, nil)

	request, err := f.svc.Reject(context.Background(), adminID, requestID)
	require.NoError(t, err)
	assert.Equal(t, model.JoinRequestRejected, request.Status)
}

func TestJoinRequestGetVisibility(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	orgID := uuid.New()
	requesterID := uuid.New()
	requestID := uuid.New()
	request := &model.JoinRequest{
		ID:             requestID,
		OrganizationID: orgID,
		UserID:         requesterID,
		Status:         model.JoinRequestPending,
	}

	// The requester can see their own request without any membership.
	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(request, nil)
	expectSnapshot(f.memberRepo, requesterID, orgID, "")
	got, err := f.svc.Get(context.Background(), requesterID, requestID)
	require.NoError(t, err)
	assert.Equal(t, requestID, got.ID)

	// A non-admin member of the organization cannot.
	viewerID := uuid.New()
	f.requestRepo.EXPECT().FindByID(gomock.Any(), requestID).Return(request, nil)
	expectSnapshot(f.memberRepo, viewerID, orgID, model.RoleViewer)
	_, err = f.svc.Get(context.Background(), viewerID, requestID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestJoinRequestListForOrgAdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newJoinRequestFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleEditor)

	_, err := f.svc.ListForOrg(context.Background(), callerID, orgID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
