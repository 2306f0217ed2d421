package finance

import (
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCash         PaymentMethod = "CASH"
	MethodCheck        PaymentMethod = "CHECK"
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodBankTransfer, MethodCash, MethodCheck, MethodCreditCard, MethodOther:
		return true
	}
	return false
}

// Payment is an immutable monetary event against exactly one document. Once
// created it is never edited or deleted; it only accumulates.
type Payment struct {
	shared.BaseEntity
	TenantID    uuid.UUID
	DocumentID  uuid.UUID
	Kind        DocumentKind
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      PaymentMethod
	Reference   string
	Notes       string
	CreatedBy   *uuid.UUID
}

// NewPayment creates a payment record. Method defaults to BANK_TRANSFER.
func NewPayment(
	tenantID uuid.UUID,
	documentID uuid.UUID,
	kind DocumentKind,
	amount decimal.Decimal,
	paymentDate time.Time,
	method PaymentMethod,
	reference string,
	notes string,
	createdBy uuid.UUID,
) (*Payment, error) {
	if documentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		method = MethodBankTransfer
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		DocumentID:  documentID,
		Kind:        kind,
		Amount:      amount,
		PaymentDate: paymentDate,
		Method:      method,
		Reference:   reference,
		Notes:       notes,
	}
	if createdBy != uuid.Nil {
		payment.CreatedBy = &createdBy
	}

	return payment, nil
}
