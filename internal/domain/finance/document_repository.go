package finance

import (
	"context"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentFilter defines filtering options for document queries
type DocumentFilter struct {
	shared.Filter
	CounterpartyID *uuid.UUID
	Status         *DocumentStatus
	FromDate       *time.Time
	ToDate         *time.Time
}

// DocumentRepository defines the interface for financial document persistence
type DocumentRepository interface {
	// Create persists a new document
	Create(ctx context.Context, doc *Document) error

	// Save updates an existing document with optimistic locking
	Save(ctx context.Context, doc *Document) error

	// FindByIDForTenant finds a document of the given kind by ID, scoped to
	// the tenant. A tenant mismatch is shared.ErrNotFound.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID, kind DocumentKind) (*Document, error)

	// FindAllForTenant finds documents of a kind for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind DocumentKind, filter DocumentFilter) ([]*Document, int64, error)

	// NextNumber generates the next sequential number for (tenant, kind,
	// year). Implementations must serialize concurrent calls for the same
	// tenant and year so numbers stay unique.
	NextNumber(ctx context.Context, tenantID uuid.UUID, kind DocumentKind, year int) (string, error)
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// Create persists a new payment
	Create(ctx context.Context, payment *Payment) error

	// FindByDocument returns all payments applied to a document
	FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) ([]*Payment, error)
}
