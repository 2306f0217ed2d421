package handler

import (
	appartner "github.com/fms/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	BaseHandler
	customerService *appartner.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *appartner.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a customer in the active company
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), appartner.CreatePartnerInput{
		CompanyID:   companyID,
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		TaxID:       req.TaxID,
		Notes:       req.Notes,
		CreatedBy:   userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetCustomer returns a single customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// ListCustomers lists the active company's customers
// GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var req ListPartnersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), appartner.ListPartnersInput{
		CompanyID: companyID,
		Search:    req.Search,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateCustomer updates a customer
// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), appartner.UpdatePartnerInput{
		CompanyID:   companyID,
		ID:          id,
		Name:        req.Name,
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		TaxID:       req.TaxID,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customer)
}

// DeactivateCustomer marks a customer inactive; existing documents keep
// referencing it
// POST /api/v1/customers/:id/deactivate
func (h *CustomerHandler) DeactivateCustomer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.customerService.DeactivateCustomer(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ActivateCustomer re-activates a customer
// POST /api/v1/customers/:id/activate
func (h *CustomerHandler) ActivateCustomer(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.customerService.ActivateCustomer(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
