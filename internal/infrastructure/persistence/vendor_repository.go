package persistence

import (
	"context"
	"errors"

	"github.com/fms/backend/internal/domain/partner"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// Create persists a new vendor
func (r *GormVendorRepository) Create(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save updates an existing vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	result := r.db.WithContext(ctx).Model(model).
		Select("*").Omit("id", "created_at").
		Where("tenant_id = ? AND id = ?", vendor.TenantID, vendor.ID).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDForTenant finds a vendor by ID within a tenant
func (r *GormVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds vendors for a tenant, returning the page and total count
func (r *GormVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.PartnerFilter) ([]*partner.Vendor, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.VendorModel{}).Where("tenant_id = ?", tenantID)
	query = applyPartnerFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendorModels []models.VendorModel
	if err := applyPagination(query, filter.Filter).
		Find(&vendorModels).Error; err != nil {
		return nil, 0, err
	}

	vendors := make([]*partner.Vendor, len(vendorModels))
	for i := range vendorModels {
		vendors[i] = vendorModels[i].ToDomain()
	}
	return vendors, total, nil
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
