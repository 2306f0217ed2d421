package identity

import (
	"strings"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/google/uuid"
)

// Company settings defaults
var (
	DefaultTaxRate         = decimal.NewFromInt(5)
	DefaultFiscalYearStart = 1
)

// Company is the tenant boundary of the system. Every financial document
// and business partner belongs to exactly one company.
type Company struct {
	shared.BaseAggregateRoot
	Name            string
	TaxID           string
	Address         string
	Phone           string
	Currency        valueobject.Currency
	TaxRate         decimal.Decimal
	FiscalYearStart int
	CreatedBy       *uuid.UUID
}

// TableName returns the database table name
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company with default settings (TWD, 5% tax, fiscal year
// starting in January)
func NewCompany(name string, createdBy uuid.UUID) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Currency:          valueobject.DefaultCurrency,
		TaxRate:           DefaultTaxRate,
		FiscalYearStart:   DefaultFiscalYearStart,
		CreatedBy:         &createdBy,
	}

	return company, nil
}

// Update updates the company's basic info
func (c *Company) Update(name, taxID, address, phone string) error {
	if name != "" {
		if err := validateCompanyName(name); err != nil {
			return err
		}
		c.Name = strings.TrimSpace(name)
	}
	c.TaxID = strings.TrimSpace(taxID)
	c.Address = strings.TrimSpace(address)
	c.Phone = strings.TrimSpace(phone)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCurrency sets the company's currency code
func (c *Company) SetCurrency(currency valueobject.Currency) error {
	if currency == "" {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency cannot be empty")
	}

	c.Currency = currency
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTaxRate sets the company's tax rate in whole percentage points
func (c *Company) SetTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	if rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot exceed 100")
	}

	c.TaxRate = rate
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetFiscalYearStart sets the month (1-12) the fiscal year starts in
func (c *Company) SetFiscalYearStart(month int) error {
	if month < 1 || month > 12 {
		return shared.NewDomainError("INVALID_FISCAL_YEAR_START", "Fiscal year start must be a month between 1 and 12")
	}

	c.FiscalYearStart = month
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateCompanyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}
