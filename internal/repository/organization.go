// internal/repository/organization.go
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
)

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Organization, error)
	SetJoinCode(ctx context.Context, orgID uuid.UUID, code string, expires time.Time) error
	FindByActiveJoinCode(ctx context.Context, code string, now time.Time) (*model.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateSite(ctx context.Context, site *model.Site) error
	FindSiteByID(ctx context.Context, id uuid.UUID) (*model.Site, error)
	FindSitesByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Site, error)
	DeleteSite(ctx context.Context, id uuid.UUID) error
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

// FindByUser returns all organizations the user has a membership in.
func (r *OrganizationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Organization, error) {
	var orgs []model.Organization
	if err := r.db.WithContext(ctx).
		Joins("JOIN members ON organizations.id = members.organization_id").
		Where("members.user_id = ?", userID).
		Find(&orgs).Error; err != nil {
		return nil, fmt.Errorf("finding user organizations: %w", err)
	}
	return orgs, nil
}

// SetJoinCode replaces the organization's join code and expiry in a
// single-row update, invalidating any prior code immediately.
func (r *OrganizationRepository) SetJoinCode(ctx context.Context, orgID uuid.UUID, code string, expires time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("id = ?", orgID).
		Updates(map[string]interface{}{
			"join_code":         code,
			"join_code_expires": expires,
		})
	if result.Error != nil {
		return fmt.Errorf("setting join code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// FindByActiveJoinCode resolves a join code to its organization.
// Returns ErrJoinCodeExpired when the code exists but has lapsed and
// ErrJoinCodeNotFound when no organization carries it.
func (r *OrganizationRepository) FindByActiveJoinCode(ctx context.Context, code string, now time.Time) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).
		Where("join_code = ?", code).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJoinCodeNotFound
		}
		return nil, fmt.Errorf("finding organization by join code: %w", err)
	}
	if !org.HasActiveJoinCode(code, now) {
		return nil, domain.ErrJoinCodeExpired
	}
	return &org, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Dependent rows first; mirrors the on-delete-cascade layout
		// for databases created without the constraints.
		if err := tx.Where("member_id IN (?)",
			tx.Model(&model.Member{}).Select("id").Where("organization_id = ?", id),
		).Delete(&model.MemberSiteAssignment{}).Error; err != nil {
			return fmt.Errorf("deleting site assignments: %w", err)
		}
		for _, m := range []interface{}{
			&model.Member{}, &model.Site{}, &model.Invitation{}, &model.JoinRequest{},
		} {
			if err := tx.Where("organization_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("deleting organization dependents: %w", err)
			}
		}
		if err := tx.Delete(&model.Organization{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting organization: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) CreateSite(ctx context.Context, site *model.Site) error {
	if err := r.db.WithContext(ctx).Create(site).Error; err != nil {
		return fmt.Errorf("creating site: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindSiteByID(ctx context.Context, id uuid.UUID) (*model.Site, error) {
	var site model.Site
	if err := r.db.WithContext(ctx).First(&site, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, fmt.Errorf("finding site: %w", err)
	}
	return &site, nil
}

func (r *OrganizationRepository) FindSitesByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Site, error) {
	var sites []model.Site
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&sites).Error; err != nil {
		return nil, fmt.Errorf("finding sites: %w", err)
	}
	return sites, nil
}

func (r *OrganizationRepository) DeleteSite(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", id).Delete(&model.MemberSiteAssignment{}).Error; err != nil {
			return fmt.Errorf("deleting site assignments: %w", err)
		}
		if err := tx.Delete(&model.Site{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting site: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
