package models

import (
	"time"

	"github.com/fms/backend/internal/domain/finance"
	"github.com/fms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentModel is the persistence model for AR invoices and AP bills.
// Both kinds share one table; the kind column discriminates.
type DocumentModel struct {
	TenantAggregateModel
	Kind finance.DocumentKind `gorm:"type:varchar(10);not null;index:idx_documents_tenant_kind"`
	// Uniqueness of (tenant_id, number) is enforced by migration
	Number           string                 `gorm:"type:varchar(50);not null;index"`
	CounterpartyID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	CounterpartyName string                 `gorm:"type:varchar(200)"`
	DocumentDate     time.Time              `gorm:"not null;index"`
	DueDate          *time.Time             `gorm:"index"`
	Subtotal         decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	TaxAmount        decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	TotalAmount      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PaidAmount       decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Currency         string                 `gorm:"type:varchar(10);not null;default:'TWD'"`
	Status           finance.DocumentStatus `gorm:"type:varchar(20);not null;index"`
	Description      string                 `gorm:"type:text"`
	Notes            string                 `gorm:"type:text"`
	PaidAt           *time.Time
	VoidedAt         *time.Time
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *finance.Document {
	doc := &finance.Document{
		Kind:             m.Kind,
		Number:           m.Number,
		CounterpartyID:   m.CounterpartyID,
		CounterpartyName: m.CounterpartyName,
		DocumentDate:     m.DocumentDate,
		DueDate:          m.DueDate,
		Subtotal:         m.Subtotal,
		TaxAmount:        m.TaxAmount,
		TotalAmount:      m.TotalAmount,
		PaidAmount:       m.PaidAmount,
		Currency:         valueobject.Currency(m.Currency),
		Status:           m.Status,
		Description:      m.Description,
		Notes:            m.Notes,
		PaidAt:           m.PaidAt,
		VoidedAt:         m.VoidedAt,
	}
	m.PopulateTenantAggregateRoot(&doc.TenantAggregateRoot)
	return doc
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *finance.Document) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Kind = d.Kind
	m.Number = d.Number
	m.CounterpartyID = d.CounterpartyID
	m.CounterpartyName = d.CounterpartyName
	m.DocumentDate = d.DocumentDate
	m.DueDate = d.DueDate
	m.Subtotal = d.Subtotal
	m.TaxAmount = d.TaxAmount
	m.TotalAmount = d.TotalAmount
	m.PaidAmount = d.PaidAmount
	m.Currency = string(d.Currency)
	m.Status = d.Status
	m.Description = d.Description
	m.Notes = d.Notes
	m.PaidAt = d.PaidAt
	m.VoidedAt = d.VoidedAt
}

// DocumentModelFromDomain creates a new persistence model from a domain Document entity.
func DocumentModelFromDomain(d *finance.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
// Payment rows are append-only.
type PaymentModel struct {
	BaseModel
	TenantID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	DocumentID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	Kind        finance.DocumentKind  `gorm:"type:varchar(10);not null"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	PaymentDate time.Time             `gorm:"not null;index"`
	Method      finance.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference   string                `gorm:"type:varchar(100)"`
	Notes       string                `gorm:"type:text"`
	CreatedBy   *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *finance.Payment {
	return &finance.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		TenantID:    m.TenantID,
		DocumentID:  m.DocumentID,
		Kind:        m.Kind,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      m.Method,
		Reference:   m.Reference,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *finance.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TenantID = p.TenantID
	m.DocumentID = p.DocumentID
	m.Kind = p.Kind
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.Method = p.Method
	m.Reference = p.Reference
	m.Notes = p.Notes
	m.CreatedBy = p.CreatedBy
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *finance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
