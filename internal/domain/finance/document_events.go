package finance

import (
	"github.com/fms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Document domain event types
const (
	EventTypeDocumentCreated       = "DocumentCreated"
	EventTypeDocumentPartiallyPaid = "DocumentPartiallyPaid"
	EventTypeDocumentPaid          = "DocumentPaid"
	EventTypeDocumentVoided        = "DocumentVoided"
)

// DocumentCreatedEvent is published when a document is created
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	Kind        DocumentKind    `json:"kind"`
	Number      string          `json:"number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(doc *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCreated, doc.ID, doc.TenantID),
		Kind:            doc.Kind,
		Number:          doc.Number,
		TotalAmount:     doc.TotalAmount,
	}
}

// DocumentPartiallyPaidEvent is published when a payment leaves a balance open
type DocumentPartiallyPaidEvent struct {
	shared.BaseDomainEvent
	Kind       DocumentKind    `json:"kind"`
	Number     string          `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// NewDocumentPartiallyPaidEvent creates a new DocumentPartiallyPaidEvent
func NewDocumentPartiallyPaidEvent(doc *Document, amount decimal.Decimal) *DocumentPartiallyPaidEvent {
	return &DocumentPartiallyPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentPartiallyPaid, doc.ID, doc.TenantID),
		Kind:            doc.Kind,
		Number:          doc.Number,
		Amount:          amount,
		PaidAmount:      doc.PaidAmount,
		Remaining:       doc.Remaining(),
	}
}

// DocumentPaidEvent is published when a document becomes fully paid
type DocumentPaidEvent struct {
	shared.BaseDomainEvent
	Kind        DocumentKind    `json:"kind"`
	Number      string          `json:"number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewDocumentPaidEvent creates a new DocumentPaidEvent
func NewDocumentPaidEvent(doc *Document) *DocumentPaidEvent {
	return &DocumentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentPaid, doc.ID, doc.TenantID),
		Kind:            doc.Kind,
		Number:          doc.Number,
		TotalAmount:     doc.TotalAmount,
	}
}

// DocumentVoidedEvent is published when a document is voided
type DocumentVoidedEvent struct {
	shared.BaseDomainEvent
	Kind       DocumentKind    `json:"kind"`
	Number     string          `json:"number"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// NewDocumentVoidedEvent creates a new DocumentVoidedEvent
func NewDocumentVoidedEvent(doc *Document) *DocumentVoidedEvent {
	return &DocumentVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentVoided, doc.ID, doc.TenantID),
		Kind:            doc.Kind,
		Number:          doc.Number,
		PaidAmount:      doc.PaidAmount,
	}
}
