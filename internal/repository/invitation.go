// internal/repository/invitation.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvitationRepositoryIface interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	FindByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Invitation, error)
	Redeem(ctx context.Context, invitationID, userID uuid.UUID, now time.Time) (*model.Invitation, error)
	Revoke(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error)
}

type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	if err := r.db.WithContext(ctx).Create(invitation).Error; err != nil {
		return fmt.Errorf("creating invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.WithContext(ctx).First(&invitation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("finding invitation: %w", err)
	}
	return &invitation, nil
}

func (r *InvitationRepository) FindByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Invitation, error) {
	var invitations []model.Invitation
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&invitations).Error; err != nil {
		return nil, fmt.Errorf("finding organization invitations: %w", err)
	}
	return invitations, nil
}

// Redeem transitions a pending invitation to accepted and upserts the
// membership for the redeeming user, atomically. Expiry is enforced
// lazily at redemption: a lapsed invitation fails with
// ErrInvitationExpired and is marked expired in a follow-up write.
func (r *InvitationRepository) Redeem(ctx context.Context, invitationID, userID uuid.UUID, now time.Time) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invitation, "id = ?", invitationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvitationNotFound
			}
			return fmt.Errorf("locking invitation: %w", err)
		}

		if invitation.Status != model.InvitationPending {
			return domain.ErrAlreadyResolved
		}
		if invitation.Expired(now) {
			return domain.ErrInvitationExpired
		}

		invitation.Status = model.InvitationAccepted
		if err := tx.Save(&invitation).Error; err != nil {
			return fmt.Errorf("updating invitation: %w", err)
		}

		if _, err := upsertMember(tx, invitation.OrganizationID, userID, invitation.Role, invitation.SiteID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// Returning the sentinel rolls the transaction back, so the
		// terminal expired status is applied in a follow-up write.
		if errors.Is(err, domain.ErrInvitationExpired) {
			r.markExpired(ctx, invitationID, now)
		}
		return nil, err
	}
	return &invitation, nil
}

// markExpired is a best-effort lazy sweep for a single invitation.
func (r *InvitationRepository) markExpired(ctx context.Context, invitationID uuid.UUID, now time.Time) {
	r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("id = ? AND status = ? AND expires_at <= ?", invitationID, model.InvitationPending, now).
		Update("status", model.InvitationExpired)
}

// Revoke marks a pending invitation revoked.
func (r *InvitationRepository) Revoke(ctx context.Context, invitationID uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&invitation, "id = ?", invitationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvitationNotFound
			}
			return fmt.Errorf("locking invitation: %w", err)
		}
		if invitation.Status != model.InvitationPending {
			return domain.ErrAlreadyResolved
		}
		invitation.Status = model.InvitationRevoked
		if err := tx.Save(&invitation).Error; err != nil {
			return fmt.Errorf("updating invitation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}
