// internal/service/join_code_test.go
package service

import (
	"context"
	"regexp"
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

// expectSnapshot wires the evaluator's two loader calls for a caller
// holding the given role in the organization. A zero role means no
// membership at all.
func expectSnapshot(memberRepo *mocks.MockMemberRepositoryIface, userID, orgID uuid.UUID, role model.Role) {
	var memberships []model.Member
	if role != "" {
		memberships = []model.Member{
			{ID: uuid.New(), OrganizationID: orgID, UserID: userID, Role: role},
		}
	}
	memberRepo.EXPECT().FindByUser(gomock.Any(), userID).Return(memberships, nil)
	memberRepo.EXPECT().FindAssignmentsByUser(gomock.Any(), userID).Return(nil, nil)
}

func TestJoinCodeIssue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	svc := NewJoinCodeService(orgRepo, authz.NewEvaluator(memberRepo))

	callerID := uuid.New()
	orgID := uuid.New()

	expectSnapshot(memberRepo, callerID, orgID, model.RoleAdmin)

	var issued string
	orgRepo.EXPECT().
		SetJoinCode(gomock.Any(), orgID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, code string, expires time.Time) error {
			issued = code
			assert.WithinDuration(t, time.Now().Add(DefaultJoinCodeTTL), expires, time.Minute)
			return nil
		})

	out, err := svc.Issue(context.Background(), callerID, orgID, 0)
	require.NoError(t, err)
	assert.Equal(t, issued, out.JoinCode)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{12}$`), out.JoinCode)
}

func TestJoinCodeIssueNonAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	svc := NewJoinCodeService(orgRepo, authz.NewEvaluator(memberRepo))

	callerID := uuid.New()
	orgID := uuid.New()

	tests := []struct {
		name string
		role model.Role
	}{
		{name: "editor", role: model.RoleEditor},
		{name: "viewer", role: model.RoleViewer},
		{name: "non-member", role: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectSnapshot(memberRepo, callerID, orgID, tt.role)

			_, err := svc.Issue(context.Background(), callerID, orgID, time.Hour)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestJoinCodeRedeem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	svc := NewJoinCodeService(orgRepo, authz.NewEvaluator(memberRepo))

	callerID := uuid.New()
	org := &model.Organization{ID: uuid.New(), Name: "Acme"}

	// Codes are normalized before lookup.
	orgRepo.EXPECT().
		FindByActiveJoinCode(gomock.Any(), "ABC123DEF456", gomock.Any()).
		Return(org, nil)

	got, err := svc.Redeem(context.Background(), callerID, "  abc123def456 ")
	require.NoError(t, err)
	assert.Equal(t, org.ID, got.ID)
}

func TestJoinCodeRedeemEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	svc := NewJoinCodeService(orgRepo, authz.NewEvaluator(memberRepo))

	_, err := svc.Redeem(context.Background(), uuid.New(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJoinCodeRedeemExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	memberRepo := mocks.NewMockMemberRepositoryIface(ctrl)
	svc := NewJoinCodeService(orgRepo, authz.NewEvaluator(memberRepo))

	orgRepo.EXPECT().
		FindByActiveJoinCode(gomock.Any(), "ABC123DEF456", gomock.Any()).
		Return(nil, domain.ErrJoinCodeExpired)

	_, err := svc.Redeem(context.Background(), uuid.New(), "abc123def456")
	assert.ErrorIs(t, err, domain.ErrJoinCodeExpired)
}
