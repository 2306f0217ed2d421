package persistence

import (
	"context"
	"errors"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(ctx context.Context, company *identity.Company) error {
	model := models.CompanyModelFromDomain(company)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing company
func (r *GormCompanyRepository) Update(ctx context.Context, company *identity.Company) error {
	model := models.CompanyModelFromDomain(company)
	result := r.db.WithContext(ctx).Model(model).
		Select("*").Omit("id", "created_at").
		Where("id = ?", company.ID).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns all companies the user holds a membership in
func (r *GormCompanyRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*identity.Company, error) {
	var companyModels []models.CompanyModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN memberships ON memberships.company_id = companies.id").
		Where("memberships.user_id = ?", userID).
		Order("companies.name ASC").
		Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]*identity.Company, len(companyModels))
	for i := range companyModels {
		companies[i] = companyModels[i].ToDomain()
	}
	return companies, nil
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ identity.CompanyRepository = (*GormCompanyRepository)(nil)

// GormMembershipRepository implements MembershipRepository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// Create creates a new membership
func (r *GormMembershipRepository) Create(ctx context.Context, membership *identity.Membership) error {
	model := &models.MembershipModel{}
	model.FromDomain(membership)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByUser returns all memberships of a user
func (r *GormMembershipRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*identity.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]*identity.Membership, len(membershipModels))
	for i := range membershipModels {
		memberships[i] = membershipModels[i].ToDomain()
	}
	return memberships, nil
}

// FindByUserAndCompany returns the membership of a user in a company
func (r *GormMembershipRepository) FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SetDefault atomically flips the default flag to the membership for the given
// company. Both updates run in one transaction so no window exists where a
// user has two defaults.
func (r *GormMembershipRepository) SetDefault(ctx context.Context, userID, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MembershipModel{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.MembershipModel{}).
			Where("user_id = ? AND company_id = ?", userID, companyID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormMembershipRepository implements MembershipRepository
var _ identity.MembershipRepository = (*GormMembershipRepository)(nil)
