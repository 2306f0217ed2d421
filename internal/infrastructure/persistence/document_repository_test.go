package persistence

import (
	"context"
	"testing"
	"time"

	appfinance "github.com/fms/backend/internal/application/finance"
	"github.com/fms/backend/internal/domain/finance"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFinanceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.DocumentModel{}, &models.PaymentModel{})
	require.NoError(t, err)

	return db
}

func newTestDocument(t *testing.T, tenantID uuid.UUID, kind finance.DocumentKind, number string) *finance.Document {
	t.Helper()
	doc, err := finance.NewDocument(
		kind,
		tenantID,
		number,
		uuid.New(),
		"Formosa Plastics",
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		nil,
		decimal.NewFromInt(1000),
		decimal.NewFromInt(5),
		"TWD",
		finance.StatusIssued,
		uuid.New(),
	)
	require.NoError(t, err)
	return doc
}

func TestGormDocumentRepository_CreateAndFind(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	doc := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	require.NoError(t, repo.Create(ctx, doc))

	found, err := repo.FindByIDForTenant(ctx, tenantID, doc.ID, finance.KindInvoice)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", found.Number)
	assert.Equal(t, tenantID, found.TenantID)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1050)))
	assert.Equal(t, finance.StatusIssued, found.Status)
}

func TestGormDocumentRepository_FindByIDForTenant_Scoping(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	doc := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	require.NoError(t, repo.Create(ctx, doc))

	// Another tenant cannot see the document.
	_, err := repo.FindByIDForTenant(ctx, uuid.New(), doc.ID, finance.KindInvoice)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// The wrong kind does not match either.
	_, err = repo.FindByIDForTenant(ctx, tenantID, doc.ID, finance.KindBill)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDocumentRepository_Save_OptimisticLock(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	doc := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	require.NoError(t, repo.Create(ctx, doc))

	require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(100)))
	require.NoError(t, repo.Save(ctx, doc))

	found, err := repo.FindByIDForTenant(ctx, tenantID, doc.ID, finance.KindInvoice)
	require.NoError(t, err)
	assert.True(t, found.PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, finance.StatusPartiallyPaid, found.Status)

	// A writer holding a stale version must not overwrite.
	stale := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	stale.ID = doc.ID
	stale.Version = doc.Version + 5
	err = repo.Save(ctx, stale)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "OPTIMISTIC_LOCK_ERROR", domainErr.Code)
}

func TestGormDocumentRepository_NextNumber_Sequence(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	number, err := repo.NextNumber(ctx, tenantID, finance.KindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", number)

	doc := newTestDocument(t, tenantID, finance.KindInvoice, number)
	require.NoError(t, repo.Create(ctx, doc))

	number, err = repo.NextNumber(ctx, tenantID, finance.KindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0002", number)
}

func TestGormDocumentRepository_NextNumber_BeyondFourDigits(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	// Five-digit sequences sort below four-digit ones lexicographically;
	// the max must still be found numerically.
	for _, number := range []string{"INV-2026-9999", "INV-2026-10000"} {
		require.NoError(t, repo.Create(ctx, newTestDocument(t, tenantID, finance.KindInvoice, number)))
	}

	number, err := repo.NextNumber(ctx, tenantID, finance.KindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-10001", number)
}

func TestGormDocumentRepository_NextNumber_IndependentSequences(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	invoice := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0007")
	require.NoError(t, repo.Create(ctx, invoice))

	// Bills number independently of invoices.
	number, err := repo.NextNumber(ctx, tenantID, finance.KindBill, 2026)
	require.NoError(t, err)
	assert.Equal(t, "BIL-2026-0001", number)

	// A new year restarts the sequence.
	number, err = repo.NextNumber(ctx, tenantID, finance.KindInvoice, 2027)
	require.NoError(t, err)
	assert.Equal(t, "INV-2027-0001", number)

	// Another tenant starts from 0001 as well.
	number, err = repo.NextNumber(ctx, uuid.New(), finance.KindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", number)

	// The same tenant and year continue from the highest.
	number, err = repo.NextNumber(ctx, tenantID, finance.KindInvoice, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0008", number)
}

func TestGormDocumentRepository_FindAllForTenant_Filters(t *testing.T) {
	db := setupFinanceTestDB(t)
	repo := NewGormDocumentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	require.NoError(t, repo.Create(ctx, first))

	second := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0002")
	require.NoError(t, second.ApplyPayment(second.TotalAmount))
	require.NoError(t, repo.Create(ctx, second))

	other := newTestDocument(t, uuid.New(), finance.KindInvoice, "INV-2026-0001")
	require.NoError(t, repo.Create(ctx, other))

	all, total, err := repo.FindAllForTenant(ctx, tenantID, finance.KindInvoice, finance.DocumentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	paid := finance.StatusPaid
	filtered, total, err := repo.FindAllForTenant(ctx, tenantID, finance.KindInvoice, finance.DocumentFilter{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "INV-2026-0002", filtered[0].Number)

	searched, total, err := repo.FindAllForTenant(ctx, tenantID, finance.KindInvoice, finance.DocumentFilter{
		Filter: shared.Filter{Search: "0001"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, searched, 1)
	assert.Equal(t, "INV-2026-0001", searched[0].Number)
}

func TestGormPaymentRepository_CreateAndFindByDocument(t *testing.T) {
	db := setupFinanceTestDB(t)
	docRepo := NewGormDocumentRepository(db)
	payRepo := NewGormPaymentRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	doc := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	require.NoError(t, docRepo.Create(ctx, doc))

	first, err := finance.NewPayment(tenantID, doc.ID, finance.KindInvoice,
		decimal.NewFromInt(400), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		finance.MethodBankTransfer, "TX-1", "", uuid.New())
	require.NoError(t, err)
	second, err := finance.NewPayment(tenantID, doc.ID, finance.KindInvoice,
		decimal.NewFromInt(650), time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		finance.MethodCash, "TX-2", "", uuid.New())
	require.NoError(t, err)

	require.NoError(t, payRepo.Create(ctx, first))
	require.NoError(t, payRepo.Create(ctx, second))

	payments, err := payRepo.FindByDocument(ctx, tenantID, doc.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	// Ordered by payment date.
	assert.Equal(t, "TX-2", payments[0].Reference)
	assert.Equal(t, "TX-1", payments[1].Reference)

	// Another tenant sees nothing.
	payments, err = payRepo.FindByDocument(ctx, uuid.New(), doc.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupFinanceTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	tenantID := uuid.New()

	doc := newTestDocument(t, tenantID, finance.KindInvoice, "INV-2026-0001")
	err := scope.Execute(ctx, func(repos appfinance.TransactionalRepositories) error {
		if err := repos.DocumentRepo().Create(ctx, doc); err != nil {
			return err
		}
		return shared.ErrOverpayment
	})
	require.Error(t, err)

	_, err = NewGormDocumentRepository(db).FindByIDForTenant(ctx, tenantID, doc.ID, finance.KindInvoice)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
