package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDocumentInput contains data for creating an invoice or bill
type CreateDocumentInput struct {
	CompanyID      uuid.UUID
	CounterpartyID uuid.UUID
	DocumentDate   time.Time
	DueDate        *time.Time
	Subtotal       decimal.Decimal
	Status         string
	Description    string
	Notes          string
	CreatedBy      uuid.UUID
}

// UpdateDocumentInput contains patch data for a mutable document. Nil fields
// are left unchanged.
type UpdateDocumentInput struct {
	CompanyID      uuid.UUID
	ID             uuid.UUID
	CounterpartyID *uuid.UUID
	DocumentDate   *time.Time
	DueDate        *time.Time
	Subtotal       *decimal.Decimal
	Status         *string
	Description    *string
	Notes          *string
}

// ListDocumentsInput contains filters for listing invoices or bills
type ListDocumentsInput struct {
	CompanyID      uuid.UUID
	Search         string
	CounterpartyID *uuid.UUID
	Status         string
	FromDate       *time.Time
	ToDate         *time.Time
	Page           int
	PageSize       int
	OrderBy        string
	OrderDir       string
}

// ApplyPaymentInput contains data for applying a payment to a document
type ApplyPaymentInput struct {
	CompanyID   uuid.UUID
	DocumentID  uuid.UUID
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Reference   string
	Notes       string
	CreatedBy   uuid.UUID
}

// DocumentDTO is the invoice/bill representation returned to callers
type DocumentDTO struct {
	ID               uuid.UUID       `json:"id"`
	Kind             string          `json:"kind"`
	Number           string          `json:"number"`
	CounterpartyID   uuid.UUID       `json:"counterparty_id"`
	CounterpartyName string          `json:"counterparty_name"`
	DocumentDate     time.Time       `json:"document_date"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
	Currency         string          `json:"currency"`
	Status           string          `json:"status"`
	Description      string          `json:"description"`
	Notes            string          `json:"notes"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	VoidedAt         *time.Time      `json:"voided_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// DocumentListResult contains a page of documents
type DocumentListResult struct {
	Items    []DocumentDTO `json:"items"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// PaymentDTO is the payment representation returned to callers
type PaymentDTO struct {
	ID          uuid.UUID       `json:"id"`
	DocumentID  uuid.UUID       `json:"document_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ApplyPaymentResult contains the payment and the document state it produced
type ApplyPaymentResult struct {
	Payment  PaymentDTO  `json:"payment"`
	Document DocumentDTO `json:"document"`
}
