// internal/repository/member.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/orgward/internal/domain"
	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepositoryIface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	FindByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.Member, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Member, error)
	FindByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Member, error)
	Upsert(ctx context.Context, orgID, userID uuid.UUID, role model.Role, siteID *uuid.UUID) (*model.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AssignSite(ctx context.Context, assignment *model.MemberSiteAssignment) error
	UnassignSite(ctx context.Context, memberID, siteID uuid.UUID) error
	FindAssignmentsByMember(ctx context.Context, memberID uuid.UUID) ([]model.MemberSiteAssignment, error)
	FindAssignmentsByUser(ctx context.Context, userID uuid.UUID) ([]model.MemberSiteAssignment, error)
}

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Member, error) {
	var member model.Member
	if err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) FindByOrgAndUser(ctx context.Context, orgID, userID uuid.UUID) (*model.Member, error) {
	var member model.Member
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("finding member: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Member, error) {
	var members []model.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("finding memberships: %w", err)
	}
	return members, nil
}

func (r *MemberRepository) FindByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Member, error) {
	var members []model.Member
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("finding organization members: %w", err)
	}
	return members, nil
}

// Upsert inserts or merges the membership row for (orgID, userID).
// The merge is explicit rather than relying on a driver conflict
// clause: the current row is read under the transaction's lock, then
// inserted or updated. A concurrent insert losing the race surfaces
// as a unique violation and is retried as an update.
func (r *MemberRepository) Upsert(ctx context.Context, orgID, userID uuid.UUID, role model.Role, siteID *uuid.UUID) (*model.Member, error) {
	var member *model.Member
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		member, err = upsertMember(tx, orgID, userID, role, siteID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// upsertMember performs the read-then-merge inside the caller's
// transaction so workflow repositories can compose it with their own
// state transitions atomically.
func upsertMember(tx *gorm.DB, orgID, userID uuid.UUID, role model.Role, siteID *uuid.UUID) (*model.Member, error) {
	var existing model.Member
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&existing).Error

	switch {
	case err == nil:
		existing.Role = role
		existing.SiteID = siteID
		if err := tx.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("updating member: %w", err)
		}
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		member := model.Member{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           role,
			SiteID:         siteID,
		}
		if err := tx.Create(&member).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the insert race; the (org, user) constraint
				// guarantees the row now exists, so merge into it.
				return mergeExistingMember(tx, orgID, userID, role, siteID)
			}
			return nil, fmt.Errorf("creating member: %w", err)
		}
		return &member, nil

	default:
		return nil, fmt.Errorf("reading member for upsert: %w", err)
	}
}

func mergeExistingMember(tx *gorm.DB, orgID, userID uuid.UUID, role model.Role, siteID *uuid.UUID) (*model.Member, error) {
	var existing model.Member
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		First(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("re-reading member after conflict: %w", err)
	}
	existing.Role = role
	existing.SiteID = siteID
	if err := tx.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("merging member: %w", err)
	}
	return &existing, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&model.MemberSiteAssignment{}).Error; err != nil {
			return fmt.Errorf("deleting site assignments: %w", err)
		}
		if err := tx.Delete(&model.Member{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting member: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *MemberRepository) AssignSite(ctx context.Context, assignment *model.MemberSiteAssignment) error {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("creating site assignment: %w", err)
	}
	return nil
}

func (r *MemberRepository) UnassignSite(ctx context.Context, memberID, siteID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("member_id = ? AND site_id = ?", memberID, siteID).
		Delete(&model.MemberSiteAssignment{})
	if result.Error != nil {
		return fmt.Errorf("deleting site assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAssignmentNotFound
	}
	return nil
}

func (r *MemberRepository) FindAssignmentsByMember(ctx context.Context, memberID uuid.UUID) ([]model.MemberSiteAssignment, error) {
	var assignments []model.MemberSiteAssignment
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("finding site assignments: %w", err)
	}
	return assignments, nil
}

// FindAssignmentsByUser returns every site assignment attached to any
// of the user's memberships, across organizations.
func (r *MemberRepository) FindAssignmentsByUser(ctx context.Context, userID uuid.UUID) ([]model.MemberSiteAssignment, error) {
	var assignments []model.MemberSiteAssignment
	err := r.db.WithContext(ctx).
		Joins("JOIN members ON members.id = member_site_assignments.member_id").
		Where("members.user_id = ?", userID).
		Find(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("finding user site assignments: %w", err)
	}
	return assignments, nil
}
