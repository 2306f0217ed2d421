package partner

import (
	"time"

	"github.com/google/uuid"
)

// CreatePartnerInput contains data for creating a customer or vendor
type CreatePartnerInput struct {
	CompanyID   uuid.UUID
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	TaxID       string
	Notes       string
	CreatedBy   uuid.UUID
}

// UpdatePartnerInput contains data for updating a customer or vendor
type UpdatePartnerInput struct {
	CompanyID   uuid.UUID
	ID          uuid.UUID
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	TaxID       string
	Notes       string
}

// ListPartnersInput contains filters for listing customers or vendors
type ListPartnersInput struct {
	CompanyID uuid.UUID
	Search    string
	Status    string
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
}

// PartnerDTO is the customer/vendor representation returned to callers
type PartnerDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	TaxID       string    `json:"tax_id"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PartnerListResult contains a page of customers or vendors
type PartnerListResult struct {
	Items    []PartnerDTO `json:"items"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}
