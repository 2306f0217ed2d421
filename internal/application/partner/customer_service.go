package partner

import (
	"context"

	"github.com/fms/backend/internal/domain/partner"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService manages customers within a company
type CustomerService struct {
	customerRepo partner.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreatePartnerInput) (*PartnerDTO, error) {
	customer, err := partner.NewCustomer(input.CompanyID, input.Name, input.CreatedBy)
	if err != nil {
		return nil, err
	}
	if err := customer.Update("", input.ContactName, input.Phone, input.Email, input.Address, input.TaxID, input.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("company_id", input.CompanyID.String()),
		zap.String("name", customer.Name))

	dto := customerToDTO(customer)
	return &dto, nil
}

// UpdateCustomer updates a customer's contact details
func (s *CustomerService) UpdateCustomer(ctx context.Context, input UpdatePartnerInput) (*PartnerDTO, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, input.CompanyID, input.ID)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(input.Name, input.ContactName, input.Phone, input.Email, input.Address, input.TaxID, input.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	dto := customerToDTO(customer)
	return &dto, nil
}

// GetCustomer returns a customer scoped to the company
func (s *CustomerService) GetCustomer(ctx context.Context, companyID, id uuid.UUID) (*PartnerDTO, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	dto := customerToDTO(customer)
	return &dto, nil
}

// ListCustomers returns a filtered page of the company's customers
func (s *CustomerService) ListCustomers(ctx context.Context, input ListPartnersInput) (*PartnerListResult, error) {
	filter := partnerFilterFromInput(input)

	customers, total, err := s.customerRepo.FindAllForTenant(ctx, input.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PartnerDTO, len(customers))
	for i, customer := range customers {
		items[i] = customerToDTO(customer)
	}

	return &PartnerListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// DeactivateCustomer marks a customer inactive. Existing invoices keep
// referring to it; new invoices cannot.
func (s *CustomerService) DeactivateCustomer(ctx context.Context, companyID, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, companyID, id)
	if err != nil {
		return err
	}
	customer.Deactivate()
	return s.customerRepo.Save(ctx, customer)
}

// ActivateCustomer marks a customer active again
func (s *CustomerService) ActivateCustomer(ctx context.Context, companyID, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, companyID, id)
	if err != nil {
		return err
	}
	customer.Activate()
	return s.customerRepo.Save(ctx, customer)
}

func customerToDTO(c *partner.Customer) PartnerDTO {
	return PartnerDTO{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		TaxID:       c.TaxID,
		Status:      string(c.Status),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// partnerFilterFromInput normalizes list parameters shared by customers and
// vendors
func partnerFilterFromInput(input ListPartnersInput) partner.PartnerFilter {
	filter := partner.PartnerFilter{
		Filter: shared.Filter{
			Page:     input.Page,
			PageSize: input.PageSize,
			OrderBy:  input.OrderBy,
			OrderDir: input.OrderDir,
			Search:   input.Search,
		},
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if input.Status != "" {
		status := input.Status
		filter.Status = &status
	}
	return filter
}
