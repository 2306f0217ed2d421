package handler

import (
	appfinance "github.com/fms/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles invoice or bill HTTP requests. One instance serves
// the /invoices routes and another serves /bills; the wired services decide
// the document kind.
type DocumentHandler struct {
	BaseHandler
	documentService *appfinance.DocumentService
	paymentService  *appfinance.PaymentService
}

// NewDocumentHandler creates a handler bound to one document kind's services
func NewDocumentHandler(documentService *appfinance.DocumentService, paymentService *appfinance.PaymentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		paymentService:  paymentService,
	}
}

// CreateDocument creates an invoice or bill in the active company
// POST /api/v1/invoices | POST /api/v1/bills
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req CreateDocumentRequest
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

	counterpartyID, err := uuid.Parse(req.CounterpartyID)
	if err != nil {
		h.BadRequest(c, "Invalid counterparty_id")
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), appfinance.CreateDocumentInput{
		CompanyID:      companyID,
		CounterpartyID: counterpartyID,
		DocumentDate:   req.DocumentDate,
		DueDate:        req.DueDate,
		Subtotal:       req.Subtotal,
		Status:         req.Status,
		Description:    req.Description,
		Notes:          req.Notes,
		CreatedBy:      userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, doc)
}

// GetDocument returns a single invoice or bill
// GET /api/v1/invoices/:id | GET /api/v1/bills/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	doc, err := h.documentService.GetDocument(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// ListDocuments lists the active company's invoices or bills
// GET /api/v1/invoices | GET /api/v1/bills
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	var req ListDocumentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	input := appfinance.ListDocumentsInput{
		CompanyID: companyID,
		Search:    req.Search,
		Status:    req.Status,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Page:      req.Page,
		PageSize:  req.PageSize,
		OrderBy:   req.OrderBy,
		OrderDir:  req.OrderDir,
	}
	if req.CounterpartyID != "" {
		counterpartyID, err := uuid.Parse(req.CounterpartyID)
		if err != nil {
			h.BadRequest(c, "Invalid counterparty_id")
			return
		}
		input.CounterpartyID = &counterpartyID
	}

	result, err := h.documentService.ListDocuments(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateDocument patches a draft invoice or bill
// PUT /api/v1/invoices/:id | PUT /api/v1/bills/:id
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	input := appfinance.UpdateDocumentInput{
		CompanyID:    companyID,
		ID:           id,
		DocumentDate: req.DocumentDate,
		DueDate:      req.DueDate,
		Subtotal:     req.Subtotal,
		Status:       req.Status,
		Description:  req.Description,
		Notes:        req.Notes,
	}
	if req.CounterpartyID != nil {
		counterpartyID, err := uuid.Parse(*req.CounterpartyID)
		if err != nil {
			h.BadRequest(c, "Invalid counterparty_id")
			return
		}
		input.CounterpartyID = &counterpartyID
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// VoidDocument voids an invoice or bill
// POST /api/v1/invoices/:id/void | POST /api/v1/bills/:id/void
func (h *DocumentHandler) VoidDocument(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	doc, err := h.documentService.VoidDocument(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// ApplyPayment applies a payment to an invoice or bill
// POST /api/v1/invoices/:id/payments | POST /api/v1/bills/:id/payments
func (h *DocumentHandler) ApplyPayment(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ApplyPaymentRequest
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

	result, err := h.paymentService.ApplyPayment(c.Request.Context(), appfinance.ApplyPaymentInput{
		CompanyID:   companyID,
		DocumentID:  id,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		CreatedBy:   userID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPayments lists the payments applied to an invoice or bill
// GET /api/v1/invoices/:id/payments | GET /api/v1/bills/:id/payments
func (h *DocumentHandler) ListPayments(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payments)
}
