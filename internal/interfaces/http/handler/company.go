package handler

import (
	"github.com/fms/backend/internal/application/identity"
	"github.com/fms/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles company management HTTP requests
type CompanyHandler struct {
	BaseHandler
	companyService *identity.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *identity.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
	}
}

// CreateCompany creates a new company owned by the authenticated user
// POST /api/v1/companies
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), identity.CreateCompanyInput{
		Name:      req.Name,
		TaxID:     req.TaxID,
		Address:   req.Address,
		Phone:     req.Phone,
		CreatedBy: userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, company)
}

// ListCompanies lists the companies the authenticated user belongs to
// GET /api/v1/companies
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	companies, err := h.companyService.ListCompanies(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, companies)
}

// GetCompany returns the active company's details
// GET /api/v1/companies/current
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	company, err := h.companyService.GetCompany(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// UpdateCompany updates the active company's settings
// PUT /api/v1/companies/current
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	company, err := h.companyService.UpdateCompany(c.Request.Context(), identity.UpdateCompanyInput{
		CompanyID:       companyID,
		Name:            req.Name,
		TaxID:           req.TaxID,
		Address:         req.Address,
		Phone:           req.Phone,
		Currency:        req.Currency,
		TaxRate:         req.TaxRate,
		FiscalYearStart: req.FiscalYearStart,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, company)
}

// SwitchCompany makes another company the session's active tenant and returns
// a re-scoped access token
// POST /api/v1/companies/switch
func (h *CompanyHandler) SwitchCompany(c *gin.Context) {
	var req SwitchCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		h.BadRequest(c, "Invalid company_id")
		return
	}

	result, err := h.companyService.SwitchCompany(c.Request.Context(), identity.SwitchCompanyInput{
		UserID:    userID,
		Username:  middleware.GetJWTUsername(c),
		CompanyID: companyID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
