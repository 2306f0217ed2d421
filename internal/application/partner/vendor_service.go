package partner

import (
	"context"

	"github.com/fms/backend/internal/domain/partner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VendorService manages vendors within a company
type VendorService struct {
	vendorRepo partner.VendorRepository
	logger     *zap.Logger
}

// NewVendorService creates a new vendor service
func NewVendorService(vendorRepo partner.VendorRepository, logger *zap.Logger) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// CreateVendor creates a new vendor
func (s *VendorService) CreateVendor(ctx context.Context, input CreatePartnerInput) (*PartnerDTO, error) {
	vendor, err := partner.NewVendor(input.CompanyID, input.Name, input.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := vendor.Update("", input.ContactName, input.Phone, input.Email, input.Address, input.TaxID, input.Notes); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("Vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("company_id", input.CompanyID.String()),
		zap.String("name", vendor.Name))

	dto := vendorToDTO(vendor)
	return &dto, nil
}

// UpdateVendor updates a vendor's contact details
func (s *VendorService) UpdateVendor(ctx context.Context, input UpdatePartnerInput) (*PartnerDTO, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Update(input.Name, input.ContactName, input.Phone, input.Email, input.Address, input.TaxID, input.Notes); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	dto := vendorToDTO(vendor)
	return &dto, nil
}

// GetVendor returns a vendor scoped to the company
func (s *VendorService) GetVendor(ctx context.Context, companyID, id uuid.UUID) (*PartnerDTO, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	dto := vendorToDTO(vendor)
	return &dto, nil
}

// ListVendors returns a filtered page of the company's vendors
func (s *VendorService) ListVendors(ctx context.Context, input ListPartnersInput) (*PartnerListResult, error) {
	filter := partnerFilterFromInput(input)

	vendors, total, err := s.vendorRepo.FindAllForTenant(ctx, input.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PartnerDTO, len(vendors))
	for i, vendor := range vendors {
		items[i] = vendorToDTO(vendor)
	}

	return &PartnerListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// DeactivateVendor marks a vendor inactive. Existing bills keep referring to
// it; new bills cannot.
func (s *VendorService) DeactivateVendor(ctx context.Context, companyID, id uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, companyID, id)
	if err != nil {
		return err
	}
	vendor.Deactivate()
	return s.vendorRepo.Save(ctx, vendor)
}

// ActivateVendor marks a vendor active again
func (s *VendorService) ActivateVendor(ctx context.Context, companyID, id uuid.UUID) error {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, companyID, id)
	if err != nil {
		return err
	}
	vendor.Activate()
	return s.vendorRepo.Save(ctx, vendor)
}

func vendorToDTO(v *partner.Vendor) PartnerDTO {
	return PartnerDTO{
		ID:          v.ID,
		Name:        v.Name,
		ContactName: v.ContactName,
		Phone:       v.Phone,
		Email:       v.Email,
		Address:     v.Address,
		TaxID:       v.TaxID,
		Status:      string(v.Status),
		Notes:       v.Notes,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
