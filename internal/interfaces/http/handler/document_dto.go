package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest represents the request body for creating an invoice or bill
type CreateDocumentRequest struct {
	CounterpartyID string          `json:"counterparty_id" binding:"required,uuid"`
	DocumentDate   time.Time       `json:"document_date" binding:"required"`
	DueDate        *time.Time      `json:"due_date"`
	Subtotal       decimal.Decimal `json:"subtotal" binding:"required"`
	Status         string          `json:"status" binding:"omitempty,oneof=DRAFT ISSUED"`
	Description    string          `json:"description" binding:"max=500"`
	Notes          string          `json:"notes"`
}

// UpdateDocumentRequest represents a partial update to a draft document.
// Absent fields are left unchanged.
type UpdateDocumentRequest struct {
	CounterpartyID *string          `json:"counterparty_id" binding:"omitempty,uuid"`
	DocumentDate   *time.Time       `json:"document_date"`
	DueDate        *time.Time       `json:"due_date"`
	Subtotal       *decimal.Decimal `json:"subtotal"`
	Status         *string          `json:"status" binding:"omitempty,oneof=DRAFT ISSUED"`
	Description    *string          `json:"description" binding:"omitempty,max=500"`
	Notes          *string          `json:"notes"`
}

// ListDocumentsRequest represents query parameters for listing invoices or bills
type ListDocumentsRequest struct {
	Search         string     `form:"search"`
	CounterpartyID string     `form:"counterparty_id" binding:"omitempty,uuid"`
	Status         string     `form:"status" binding:"omitempty,oneof=DRAFT ISSUED PARTIALLY_PAID PAID VOID"`
	FromDate       *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate         *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page           int        `form:"page"`
	PageSize       int        `form:"page_size"`
	OrderBy        string     `form:"order_by" binding:"omitempty,oneof=number document_date due_date total_amount status created_at"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ApplyPaymentRequest represents the request body for applying a payment
type ApplyPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"payment_date" binding:"required"`
	Method      string          `json:"method" binding:"omitempty,max=50"`
	Reference   string          `json:"reference" binding:"max=100"`
	Notes       string          `json:"notes"`
}
