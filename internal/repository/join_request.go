// internal/repository/join_request.go
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

type JoinRequestRepositoryIface interface {
	Create(ctx context.Context, request *model.JoinRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error)
	FindPendingByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.JoinRequest, error)
	FindByOrg(ctx context.Context, orgID uuid.UUID) ([]model.JoinRequest, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.JoinRequest, error)
	Approve(ctx context.Context, requestID, reviewerID uuid.UUID, role model.Role, siteID *uuid.UUID, now time.Time) (*model.JoinRequest, error)
	Reject(ctx context.Context, requestID, reviewerID uuid.UUID, now time.Time) (*model.JoinRequest, error)
}

type JoinRequestRepository struct {
	db *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{db: db}
}

func (r *JoinRequestRepository) Create(ctx context.Context, request *model.JoinRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("creating join request: %w", err)
	}
	return nil
}

func (r *JoinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.JoinRequest, error) {
	var request model.JoinRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("finding join request: %w", err)
	}
	return &request, nil
}

func (r *JoinRequestRepository) FindPendingByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.JoinRequest, error) {
	var request model.JoinRequest
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ? AND status = ?", orgID, userID, model.JoinRequestPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJoinRequestNotFound
		}
		return nil, fmt.Errorf("finding pending join request: %w", err)
	}
	return &request, nil
}

func (r *JoinRequestRepository) FindByOrg(ctx context.Context, orgID uuid.UUID) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("finding organization join requests: %w", err)
	}
	return requests, nil
}

func (r *JoinRequestRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.JoinRequest, error) {
	var requests []model.JoinRequest
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("finding user join requests: %w", err)
	}
	return requests, nil
}

// Approve marks a pending request approved and upserts the resulting
// membership in one transaction. The request row is locked before the
// status check, so of two concurrent approvals exactly one commits
// the transition; the other observes a non-pending status and fails
// with ErrAlreadyReviewed.
func (r *JoinRequestRepository) Approve(ctx context.Context, requestID, reviewerID uuid.UUID, role model.Role, siteID *uuid.UUID, now time.Time) (*model.JoinRequest, error) {
	var request model.JoinRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}

		request.Status = model.JoinRequestApproved
		request.ReviewedByID = &reviewerID
		request.ReviewedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("updating join request: %w", err)
		}

		if _, err := upsertMember(tx, request.OrganizationID, request.UserID, role, siteID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Reject marks a pending request rejected, recording the reviewer.
// No membership side effect.
func (r *JoinRequestRepository) Reject(ctx context.Context, requestID, reviewerID uuid.UUID, now time.Time) (*model.JoinRequest, error) {
	var request model.JoinRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockRequest(tx, requestID, &request); err != nil {
			return err
		}

		request.Status = model.JoinRequestRejected
		request.ReviewedByID = &reviewerID
		request.ReviewedAt = &now
		if err := tx.Save(&request).Error; err != nil {
			return fmt.Errorf("updating join request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func lockRequest(tx *gorm.DB, requestID uuid.UUID, request *model.JoinRequest) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(request, "id = ?", requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrJoinRequestNotFound
		}
		return fmt.Errorf("locking join request: %w", err)
	}
	if request.Status != model.JoinRequestPending {
		return domain.ErrAlreadyReviewed
	}
	return nil
}
