// internal/service/organization_test.go
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

type orgFixture struct {
	orgRepo    *mocks.MockOrganizationRepositoryIface
	memberRepo *mocks.MockMemberRepositoryIface
	svc        *OrganizationService
}

func newOrgFixture(ctrl *gomock.Controller) orgFixture {
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	return orgFixture{
		orgRepo:    orgRepo,
		memberRepo: memberRepo,
		svc:        NewOrganizationService(orgRepo, memberRepo, authz.NewEvaluator(memberRepo)),
	}
}

func TestOrganizationCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	f.orgRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, org *model.Organization) error {
			assert.Equal(t, "Acme", org.Name)
			assert.Equal(t, callerID, org.CreatedByID)
			org.ID = orgID
			return nil
		})
	// The creator becomes the first admin.
	f.memberRepo.EXPECT().
		Upsert(gomock.Any(), orgID, callerID, model.RoleAdmin, nil).
		Return(&model.Member{OrganizationID: orgID, UserID: callerID, Role: model.RoleAdmin}, nil)

	org, err := f.svc.Create(context.Background(), callerID, CreateOrganizationInput{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, orgID, org.ID)
}

func TestOrganizationCreateInvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	_, err := f.svc.Create(context.Background(), uuid.New(), CreateOrganizationInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrganizationGetMemberOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, "")

	_, err := f.svc.Get(context.Background(), callerID, orgID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrganizationCreateSiteAdminOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleEditor)

	_, err := f.svc.CreateSite(context.Background(), callerID, CreateSiteInput{
		OrganizationID: orgID,
		Name:           "HQ",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrganizationListSitesScoped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()
	memberID := uuid.New()
	siteA := uuid.New()
	siteB := uuid.New()

	f.memberRepo.EXPECT().FindByUser(gomock.Any(), callerID).Return([]model.Member{
		{ID: memberID, OrganizationID: orgID, UserID: callerID, Role: model.RoleViewer},
	}, nil)
	f.memberRepo.EXPECT().FindAssignmentsByUser(gomock.Any(), callerID).Return([]model.MemberSiteAssignment{
		{MemberID: memberID, SiteID: siteA},
	}, nil)
	f.orgRepo.EXPECT().FindSitesByOrg(gomock.Any(), orgID).Return([]model.Site{
		{ID: siteA, OrganizationID: orgID, Name: "North"},
		{ID: siteB, OrganizationID: orgID, Name: "South"},
	}, nil)

	sites, err := f.svc.ListSites(context.Background(), callerID, orgID)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, siteA, sites[0].ID)
}

func TestOrganizationListSitesUnscopedViewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	// A viewer with no site assignments and no membership site sees
	// every site in the organization.
	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleViewer)
	f.orgRepo.EXPECT().FindSitesByOrg(gomock.Any(), orgID).Return([]model.Site{
		{ID: uuid.New(), OrganizationID: orgID},
		{ID: uuid.New(), OrganizationID: orgID},
	}, nil)

	sites, err := f.svc.ListSites(context.Background(), callerID, orgID)
	require.NoError(t, err)
	assert.Len(t, sites, 2)
}

func TestOrganizationDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleAdmin)
	f.orgRepo.EXPECT().Delete(gomock.Any(), orgID).Return(nil)

	err := f.svc.Delete(context.Background(), callerID, orgID)
	require.NoError(t, err)
}

func TestOrganizationDeleteNonAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()

	f.orgRepo.EXPECT().FindByID(gomock.Any(), orgID).Return(&model.Organization{ID: orgID}, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleEditor)

	err := f.svc.Delete(context.Background(), callerID, orgID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestOrganizationDeleteSite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newOrgFixture(ctrl)

	callerID := uuid.New()
	orgID := uuid.New()
	siteID := uuid.New()

	f.orgRepo.EXPECT().FindSiteByID(gomock.Any(), siteID).
		Return(&model.Site{ID: siteID, OrganizationID: orgID}, nil)
	expectSnapshot(f.memberRepo, callerID, orgID, model.RoleViewer)

	err := f.svc.DeleteSite(context.Background(), callerID, siteID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
