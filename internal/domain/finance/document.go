package finance

import (
	"fmt"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes AR invoices from AP bills. The state machine and
// numeric rules are identical; only the counterparty and number prefix differ.
type DocumentKind string

const (
	KindInvoice DocumentKind = "INVOICE" // AR, counterparty is a customer
	KindBill    DocumentKind = "BILL"    // AP, counterparty is a vendor
)

// IsValid checks if the kind is a valid DocumentKind
func (k DocumentKind) IsValid() bool {
	return k == KindInvoice || k == KindBill
}

// NumberPrefix returns the document number prefix for the kind
func (k DocumentKind) NumberPrefix() string {
	if k == KindBill {
		return "BIL"
	}
	return "INV"
}

// DocumentStatus represents the lifecycle status of a financial document
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "DRAFT"
	StatusIssued        DocumentStatus = "ISSUED"
	StatusPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	StatusPaid          DocumentStatus = "PAID"
	StatusVoid          DocumentStatus = "VOID"
	// StatusOverdue is stored but never produced by a transition here; an
	// external sweep may set it.
	StatusOverdue DocumentStatus = "OVERDUE"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusIssued, StatusPartiallyPaid, StatusPaid, StatusVoid, StatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the document can no longer be edited
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusVoid
}

// CanApplyPayment returns true if payments can be applied in this status
func (s DocumentStatus) CanApplyPayment() bool {
	return !s.IsTerminal()
}

// CanVoid returns true if the document can be voided from this status
func (s DocumentStatus) CanVoid() bool {
	return s != StatusVoid && s != StatusPaid
}

// ComputeTax computes the tax amount for a subtotal at a whole-point
// percentage rate, rounding to the nearest integer minor unit at the
// multiplication step before dividing by 100.
func ComputeTax(subtotal, ratePercent decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(ratePercent).Round(0).Div(decimal.NewFromInt(100))
}

// Document represents an AR invoice or AP bill. It is the aggregate root for
// the financial document lifecycle.
type Document struct {
	shared.TenantAggregateRoot
	Kind             DocumentKind
	Number           string
	CounterpartyID   uuid.UUID
	CounterpartyName string
	DocumentDate     time.Time
	DueDate          *time.Time
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	TotalAmount      decimal.Decimal
	PaidAmount       decimal.Decimal
	Currency         valueobject.Currency
	Status           DocumentStatus
	Description      string
	Notes            string
	PaidAt           *time.Time
	VoidedAt         *time.Time
}

// NewDocument creates a financial document. Tax and total are derived from the
// subtotal and the tenant's tax rate. Only DRAFT and ISSUED are accepted as a
// creation-time status; an empty status defaults to DRAFT.
func NewDocument(
	kind DocumentKind,
	tenantID uuid.UUID,
	number string,
	counterpartyID uuid.UUID,
	counterpartyName string,
	documentDate time.Time,
	dueDate *time.Time,
	subtotal decimal.Decimal,
	taxRate decimal.Decimal,
	currency valueobject.Currency,
	status DocumentStatus,
	createdBy uuid.UUID,
) (*Document, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Document kind is not valid")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Subtotal cannot be negative")
	}
	if status == "" {
		status = StatusDraft
	}
	if status != StatusDraft && status != StatusIssued {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Documents cannot be created in %s status", status))
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	tax := ComputeTax(subtotal, taxRate)

	doc := &Document{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		Kind:                kind,
		Number:              number,
		CounterpartyID:      counterpartyID,
		CounterpartyName:    counterpartyName,
		DocumentDate:        documentDate,
		DueDate:             dueDate,
		Subtotal:            subtotal,
		TaxAmount:           tax,
		TotalAmount:         subtotal.Add(tax),
		PaidAmount:          decimal.Zero,
		Currency:            currency,
		Status:              status,
	}

	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))

	return doc, nil
}

// Remaining returns the unpaid balance
func (d *Document) Remaining() decimal.Decimal {
	return d.TotalAmount.Sub(d.PaidAmount)
}

// IsMutable returns true if the document can still be edited
func (d *Document) IsMutable() bool {
	return !d.Status.IsTerminal()
}

// UpdateSubtotal replaces the subtotal and recomputes tax and total from the
// tenant's current tax rate
func (d *Document) UpdateSubtotal(subtotal, taxRate decimal.Decimal) error {
	if !d.IsMutable() {
		return shared.ErrInvalidStatus
	}
	if subtotal.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Subtotal cannot be negative")
	}

	d.Subtotal = subtotal
	d.TaxAmount = ComputeTax(subtotal, taxRate)
	d.TotalAmount = subtotal.Add(d.TaxAmount)
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetCounterparty changes the counterparty while the document is mutable
func (d *Document) SetCounterparty(counterpartyID uuid.UUID, name string) error {
	if !d.IsMutable() {
		return shared.ErrInvalidStatus
	}
	if counterpartyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}

	d.CounterpartyID = counterpartyID
	d.CounterpartyName = name
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetDates updates the document and due dates while the document is mutable
func (d *Document) SetDates(documentDate *time.Time, dueDate *time.Time) error {
	if !d.IsMutable() {
		return shared.ErrInvalidStatus
	}

	if documentDate != nil {
		d.DocumentDate = *documentDate
	}
	if dueDate != nil {
		d.DueDate = dueDate
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetDescription updates description and notes while the document is mutable
func (d *Document) SetDescription(description, notes string) error {
	if !d.IsMutable() {
		return shared.ErrInvalidStatus
	}

	d.Description = description
	d.Notes = notes
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// ChangeStatus overwrites the status. Terminal documents are immutable; beyond
// that the transition is applied as given.
func (d *Document) ChangeStatus(status DocumentStatus) error {
	if !d.IsMutable() {
		return shared.ErrInvalidStatus
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("%s is not a valid document status", status))
	}

	d.Status = status
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// ApplyPayment records a payment amount against the document and derives the
// new status. The caller persists the payment row and the document update in
// one transaction.
func (d *Document) ApplyPayment(amount decimal.Decimal) error {
	if !d.Status.CanApplyPayment() {
		return shared.ErrInvalidStatus
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(d.Remaining()) {
		return shared.ErrOverpayment
	}

	d.PaidAmount = d.PaidAmount.Add(amount)

	if d.PaidAmount.GreaterThanOrEqual(d.TotalAmount) {
		now := time.Now()
		d.Status = StatusPaid
		d.PaidAt = &now
		d.AddDomainEvent(NewDocumentPaidEvent(d))
	} else {
		d.Status = StatusPartiallyPaid
		d.AddDomainEvent(NewDocumentPartiallyPaidEvent(d, amount))
	}

	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// Void marks the document VOID. The paid amount is kept as a historical
// record; payments are never reversed here.
func (d *Document) Void() error {
	if !d.Status.CanVoid() {
		return shared.ErrInvalidStatus
	}

	now := time.Now()
	d.Status = StatusVoid
	d.VoidedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	d.AddDomainEvent(NewDocumentVoidedEvent(d))

	return nil
}

// IsPaid returns true if the document is fully paid
func (d *Document) IsPaid() bool {
	return d.Status == StatusPaid
}

// IsVoid returns true if the document is voided
func (d *Document) IsVoid() bool {
	return d.Status == StatusVoid
}

// IsOverdue returns true if the document is past due and not terminal
func (d *Document) IsOverdue() bool {
	if d.Status.IsTerminal() {
		return false
	}
	if d.DueDate == nil {
		return false
	}
	return time.Now().After(*d.DueDate)
}
