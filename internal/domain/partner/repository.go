package partner

import (
	"context"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PartnerFilter defines filtering options for customer and vendor queries
type PartnerFilter struct {
	shared.Filter
	Status *string
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// Create persists a new customer
	Create(ctx context.Context, customer *Customer) error

	// Save updates an existing customer
	Save(ctx context.Context, customer *Customer) error

	// FindByIDForTenant finds a customer by ID scoped to the tenant.
	// A tenant mismatch is shared.ErrNotFound.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindAllForTenant finds customers for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PartnerFilter) ([]*Customer, int64, error)
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// Create persists a new vendor
	Create(ctx context.Context, vendor *Vendor) error

	// Save updates an existing vendor
	Save(ctx context.Context, vendor *Vendor) error

	// FindByIDForTenant finds a vendor by ID scoped to the tenant.
	// A tenant mismatch is shared.ErrNotFound.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)

	// FindAllForTenant finds vendors for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PartnerFilter) ([]*Vendor, int64, error)
}
