// internal/authz/policy_test.go
package authz

import (
	"testing"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	orgID    uuid.UUID
	otherOrg uuid.UUID
	admin    Caller
	viewer   Caller
	outsider Caller
}

func newFixture() fixture {
	orgID := uuid.New()
	otherOrg := uuid.New()

	adminID := uuid.New()
	viewerID := uuid.New()

	return fixture{
		orgID:    orgID,
		otherOrg: otherOrg,
		admin: NewCaller(adminID, []model.Member{
			{ID: uuid.New(), OrganizationID: orgID, UserID: adminID, Role: model.RoleAdmin},
		}, nil),
		viewer: NewCaller(viewerID, []model.Member{
			{ID: uuid.New(), OrganizationID: orgID, UserID: viewerID, Role: model.RoleViewer},
		}, nil),
		outsider: NewCaller(uuid.New(), nil, nil),
	}
}

func TestMemberPredicates(t *testing.T) {
	f := newFixture()
	member := model.Member{OrganizationID: f.orgID, UserID: uuid.New(), Role: model.RoleEditor}

	assert.True(t, CanReadMember(f.admin, member))
	assert.True(t, CanReadMember(f.viewer, member))
	assert.False(t, CanReadMember(f.outsider, member))

	assert.True(t, CanWriteMember(f.admin, member))
	assert.False(t, CanWriteMember(f.viewer, member))
	assert.False(t, CanWriteMember(f.outsider, member))

	crossOrg := model.Member{OrganizationID: f.otherOrg, UserID: uuid.New()}
	assert.False(t, CanReadMember(f.admin, crossOrg))
	assert.False(t, CanWriteMember(f.admin, crossOrg))
}

func TestListMembersPredicate(t *testing.T) {
	f := newFixture()
	org := model.Organization{ID: f.orgID}

	assert.True(t, CanListMembers(f.admin, org))
	assert.True(t, CanListMembers(f.viewer, org))
	assert.False(t, CanListMembers(f.outsider, org))
}

func TestInvitationPredicatesAdminOnly(t *testing.T) {
	f := newFixture()
	invitation := model.Invitation{OrganizationID: f.orgID, Email: "new@example.com"}

	assert.True(t, CanReadInvitation(f.admin, invitation))
	assert.True(t, CanWriteInvitation(f.admin, invitation))

	// Non-admin members cannot see invitations at all.
	assert.False(t, CanReadInvitation(f.viewer, invitation))
	assert.False(t, CanWriteInvitation(f.viewer, invitation))
	assert.False(t, CanReadInvitation(f.outsider, invitation))
}

func TestJoinRequestPredicates(t *testing.T) {
	f := newFixture()
	request := model.JoinRequest{OrganizationID: f.orgID, UserID: f.outsider.UserID}

	// Visible to org admins and to the requester, nobody else.
	assert.True(t, CanReadJoinRequest(f.admin, request))
	assert.True(t, CanReadJoinRequest(f.outsider, request))
	assert.False(t, CanReadJoinRequest(f.viewer, request))

	assert.True(t, CanReviewJoinRequest(f.admin, request))
	assert.False(t, CanReviewJoinRequest(f.viewer, request))
	assert.False(t, CanReviewJoinRequest(f.outsider, request))
}

func TestSubmitJoinRequestOwnBehalfOnly(t *testing.T) {
	f := newFixture()

	own := model.JoinRequest{OrganizationID: f.orgID, UserID: f.outsider.UserID}
	assert.True(t, CanSubmitJoinRequest(f.outsider, own))

	forged := model.JoinRequest{OrganizationID: f.orgID, UserID: uuid.New()}
	assert.False(t, CanSubmitJoinRequest(f.outsider, forged))
}

func TestSiteAssignmentPredicates(t *testing.T) {
	f := newFixture()
	member := model.Member{OrganizationID: f.orgID, UserID: uuid.New(), Role: model.RoleEditor}

	assert.True(t, CanReadSiteAssignment(f.viewer, member))
	assert.False(t, CanWriteSiteAssignment(f.viewer, member))
	assert.True(t, CanWriteSiteAssignment(f.admin, member))
	assert.False(t, CanReadSiteAssignment(f.outsider, member))
}

func TestSitePredicates(t *testing.T) {
	orgID := uuid.New()
	siteA := uuid.New()
	siteB := uuid.New()

	viewerID := uuid.New()
	memberID := uuid.New()
	scopedViewer := NewCaller(viewerID, []model.Member{
		{ID: memberID, OrganizationID: orgID, UserID: viewerID, Role: model.RoleViewer},
	}, []model.MemberSiteAssignment{
		{MemberID: memberID, SiteID: siteA},
	})

	assert.True(t, CanReadSite(scopedViewer, model.Site{ID: siteA, OrganizationID: orgID}))
	assert.False(t, CanReadSite(scopedViewer, model.Site{ID: siteB, OrganizationID: orgID}))
	assert.False(t, CanWriteSite(scopedViewer, model.Site{ID: siteA, OrganizationID: orgID}))

	// Scope never widens past the caller's own organizations.
	assert.False(t, CanReadSite(scopedViewer, model.Site{ID: siteA, OrganizationID: uuid.New()}))

	adminID := uuid.New()
	admin := NewCaller(adminID, []model.Member{
		{ID: uuid.New(), OrganizationID: orgID, UserID: adminID, Role: model.RoleAdmin},
	}, nil)
	assert.True(t, CanReadSite(admin, model.Site{ID: siteB, OrganizationID: orgID}))
	assert.True(t, CanWriteSite(admin, model.Site{ID: siteB, OrganizationID: orgID}))
}
