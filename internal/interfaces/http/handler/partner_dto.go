package handler

// CreatePartnerRequest represents the request body for creating a customer or vendor
type CreatePartnerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	TaxID       string `json:"tax_id" binding:"max=50"`
	Notes       string `json:"notes"`
}

// UpdatePartnerRequest represents the request body for updating a customer or vendor
type UpdatePartnerRequest struct {
	Name        string `json:"name" binding:"omitempty,min=1,max=200"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	TaxID       string `json:"tax_id" binding:"max=50"`
	Notes       string `json:"notes"`
}

// ListPartnersRequest represents query parameters for listing customers or vendors
type ListPartnersRequest struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}
