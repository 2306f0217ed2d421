package handler

import (
	appartner "github.com/fms/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// VendorHandler handles vendor HTTP requests
type VendorHandler struct {
	BaseHandler
	vendorService *appartner.VendorService
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorService *appartner.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// CreateVendor creates a vendor in the active company
// POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
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

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), appartner.CreatePartnerInput{
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

	h.Created(c, vendor)
}

// GetVendor returns a single vendor
// GET /api/v1/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	vendor, err := h.vendorService.GetVendor(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vendor)
}

// ListVendors lists the active company's vendors
// GET /api/v1/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
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

	result, err := h.vendorService.ListVendors(c.Request.Context(), appartner.ListPartnersInput{
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

// UpdateVendor updates a vendor
// PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
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

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), appartner.UpdatePartnerInput{
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

	h.Success(c, vendor)
}

// DeactivateVendor marks a vendor inactive
// POST /api/v1/vendors/:id/deactivate
func (h *VendorHandler) DeactivateVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.vendorService.DeactivateVendor(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ActivateVendor re-activates a vendor
// POST /api/v1/vendors/:id/activate
func (h *VendorHandler) ActivateVendor(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.vendorService.ActivateVendor(c.Request.Context(), companyID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
