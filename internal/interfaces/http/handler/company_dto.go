package handler

import "github.com/shopspring/decimal"

// CreateCompanyRequest represents the request body for creating a company
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" binding:"max=50"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UpdateCompanyRequest represents the request body for updating company settings
type UpdateCompanyRequest struct {
	Name            string           `json:"name" binding:"omitempty,min=1,max=200"`
	TaxID           string           `json:"tax_id" binding:"max=50"`
	Address         string           `json:"address"`
	Phone           string           `json:"phone" binding:"max=50"`
	Currency        string           `json:"currency" binding:"omitempty,len=3"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	FiscalYearStart *int             `json:"fiscal_year_start" binding:"omitempty,min=1,max=12"`
}

// SwitchCompanyRequest represents the request body for switching the active company
type SwitchCompanyRequest struct {
	CompanyID string `json:"company_id" binding:"required,uuid"`
}
