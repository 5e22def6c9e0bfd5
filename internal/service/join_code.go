// internal/service/join_code.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/dangerclosesec/orgward/internal/authz"
	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/google/uuid"
)

const (
	// DefaultJoinCodeTTL matches the issuing default of one week.
	DefaultJoinCodeTTL = 168 * time.Hour

	joinCodeLength = 12
)

// JoinCodeService issues and redeems time-limited organization join
// codes. Issuing is admin-privileged; redemption is self-service and
// yields the validated organization reference without creating a
// membership.
type JoinCodeService struct {
	orgRepo   repository.OrganizationRepositoryIface
	evaluator *authz.Evaluator
	now       func() time.Time
}

func NewJoinCodeService(orgRepo repository.OrganizationRepositoryIface, evaluator *authz.Evaluator) *JoinCodeService {
	return &JoinCodeService{
		orgRepo:   orgRepo,
		evaluator: evaluator,
		now:       time.Now,
	}
}

type IssueJoinCodeOutput struct {
	JoinCode  string    `json:"join_code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issue generates a fresh join code for the organization, replacing
// and thereby invalidating any previous one.
func (s *JoinCodeService) Issue(ctx context.Context, callerID, orgID uuid.UUID, ttl time.Duration) (*IssueJoinCodeOutput, error) {
	caller, err := s.evaluator.Snapshot(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin(orgID) {
		return nil, domain.ErrUnauthorized
	}

	if ttl <= 0 {
		ttl = DefaultJoinCodeTTL
	}

	code, err := generateJoinCode()
	if err != nil {
		return nil, err
	}

	expires := s.now().Add(ttl)
	if err := s.orgRepo.SetJoinCode(ctx, orgID, code, expires); err != nil {
		return nil, err
	}

	return &IssueJoinCodeOutput{JoinCode: code, ExpiresAt: expires}, nil
}

// Redeem resolves a join code to its organization. It does not create
// a membership; the caller is expected to follow up with a join
// request against the returned organization.
func (s *JoinCodeService) Redeem(ctx context.Context, callerID uuid.UUID, code string) (*model.Organization, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: join code is required", domain.ErrInvalidInput)
	}
	return s.orgRepo.FindByActiveJoinCode(ctx, code, s.now())
}

// generateJoinCode produces a 12-character uppercase hex token from
// crypto/rand.
func generateJoinCode() (string, error) {
	buf := make([]byte, joinCodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating join code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
