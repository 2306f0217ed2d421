package partner

import (
	"strings"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

// Vendor represents a supplier in the partner context. AP bills are recorded
// against vendors of the same company.
type Vendor struct {
	shared.TenantAggregateRoot
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	TaxID       string
	Status      VendorStatus
	Notes       string
}

// TableName returns the database table name
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new active vendor for a company
func NewVendor(companyID uuid.UUID, name string, createdBy uuid.UUID) (*Vendor, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(companyID, createdBy),
		Name:                strings.TrimSpace(name),
		Status:              VendorStatusActive,
	}, nil
}

// Update updates the vendor's contact details
func (v *Vendor) Update(name, contactName, phone, email, address, taxID, notes string) error {
	if name != "" {
		if err := validatePartnerName(name); err != nil {
			return err
		}
		v.Name = strings.TrimSpace(name)
	}
	v.ContactName = strings.TrimSpace(contactName)
	v.Phone = strings.TrimSpace(phone)
	v.Email = strings.ToLower(strings.TrimSpace(email))
	v.Address = strings.TrimSpace(address)
	v.TaxID = strings.TrimSpace(taxID)
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// Deactivate marks the vendor inactive; rows are never hard-deleted
func (v *Vendor) Deactivate() {
	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Activate marks the vendor active
func (v *Vendor) Activate() {
	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}
