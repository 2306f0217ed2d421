package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fms/backend/internal/domain/finance"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// Create persists a new document
func (r *GormDocumentRepository) Create(ctx context.Context, doc *finance.Document) error {
	model := models.DocumentModelFromDomain(doc)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// Save updates an existing document with optimistic locking. The domain
// increments the version before saving, so we match on version-1.
func (r *GormDocumentRepository) Save(ctx context.Context, doc *finance.Document) error {
	model := models.DocumentModelFromDomain(doc)
	result := r.db.WithContext(ctx).Model(model).
		Select("*").Omit("id", "created_at").
		Where("tenant_id = ? AND id = ? AND version = ?", doc.TenantID, doc.ID, doc.Version-1).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The document has been modified by another transaction")
	}
	return nil
}

// FindByIDForTenant finds a document of the given kind by ID within a tenant
func (r *GormDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID, kind finance.DocumentKind) (*finance.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ? AND kind = ?", tenantID, id, kind).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds documents of a kind for a tenant, returning the page
// and total count
func (r *GormDocumentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind finance.DocumentKind, filter finance.DocumentFilter) ([]*finance.Document, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.DocumentModel{}).
		Where("tenant_id = ? AND kind = ?", tenantID, kind)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.OrderBy != "" {
		direction := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			direction = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + direction)
	} else {
		query = query.Order("document_date DESC, number DESC")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var documentModels []models.DocumentModel
	if err := query.Find(&documentModels).Error; err != nil {
		return nil, 0, err
	}

	documents := make([]*finance.Document, len(documentModels))
	for i := range documentModels {
		documents[i] = documentModels[i].ToDomain()
	}
	return documents, total, nil
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter finance.DocumentFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR counterparty_name LIKE ? OR description LIKE ?",
			pattern, pattern, pattern)
	}
	if filter.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *filter.CounterpartyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("document_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("document_date <= ?", *filter.ToDate)
	}
	return query
}

// NextNumber generates the next sequential document number for (tenant, kind,
// year). Format: PREFIX-YYYY-NNNN (e.g., INV-2026-0001). On PostgreSQL an
// advisory transaction lock serializes concurrent generation for the same
// tenant and year; the lock is released when the surrounding transaction ends.
func (r *GormDocumentRepository) NextNumber(ctx context.Context, tenantID uuid.UUID, kind finance.DocumentKind, year int) (string, error) {
	db := r.db.WithContext(ctx)
	prefix := fmt.Sprintf("%s-%d-", kind.NumberPrefix(), year)

	if db.Dialector.Name() == "postgres" {
		lockKey := fmt.Sprintf("%s:%s:%d", tenantID, kind, year)
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockKey).Error; err != nil {
			return "", fmt.Errorf("failed to acquire number lock: %w", err)
		}
	}

	// Length-first ordering keeps the comparison numeric once the sequence
	// grows past four digits (INV-2026-10000 > INV-2026-9999).
	var last models.DocumentModel
	err := db.Model(&models.DocumentModel{}).
		Where("tenant_id = ? AND kind = ? AND number LIKE ?", tenantID, kind, prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := 1
	if err == nil && last.Number != "" {
		parts := strings.Split(last.Number, "-")
		if len(parts) == 3 {
			var seq int
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &seq); parseErr == nil {
				next = seq + 1
			}
		}
	}

	return fmt.Sprintf("%s%04d", prefix, next), nil
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ finance.DocumentRepository = (*GormDocumentRepository)(nil)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create persists a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	model := models.PaymentModelFromDomain(payment)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByDocument returns all payments applied to a document
func (r *GormPaymentRepository) FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) ([]*finance.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_id = ?", tenantID, documentID).
		Order("payment_date ASC, created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*finance.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToDomain()
	}
	return payments, nil
}

// Ensure GormPaymentRepository implements PaymentRepository
var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
