package partner

import (
	"strings"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// Customer represents a customer in the partner context. AR invoices are
// issued against customers of the same company.
type Customer struct {
	shared.TenantAggregateRoot
	Name        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	TaxID       string
	Status      CustomerStatus
	Notes       string
}

// TableName returns the database table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new active customer for a company
func NewCustomer(companyID uuid.UUID, name string, createdBy uuid.UUID) (*Customer, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(companyID, createdBy),
		Name:                strings.TrimSpace(name),
		Status:              CustomerStatusActive,
	}, nil
}

// Update updates the customer's contact details
func (c *Customer) Update(name, contactName, phone, email, address, taxID, notes string) error {
	if name != "" {
		if err := validatePartnerName(name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(name)
	}
	c.ContactName = strings.TrimSpace(contactName)
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Address = strings.TrimSpace(address)
	c.TaxID = strings.TrimSpace(taxID)
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate marks the customer inactive; rows are never hard-deleted
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate marks the customer active
func (c *Customer) Activate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

func validatePartnerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
