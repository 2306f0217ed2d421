package finance

import (
	"testing"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(t *testing.T, subtotal string, status DocumentStatus) *Document {
	t.Helper()
	sub, err := decimal.NewFromString(subtotal)
	require.NoError(t, err)

	doc, err := NewDocument(
		KindInvoice,
		uuid.New(),
		"INV-2026-0001",
		uuid.New(),
		"Acme Customer",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		nil,
		sub,
		decimal.NewFromInt(5),
		"TWD",
		status,
		uuid.New(),
	)
	require.NoError(t, err)
	return doc
}

func TestComputeTax(t *testing.T) {
	t.Run("whole amounts", func(t *testing.T) {
		tax := ComputeTax(decimal.NewFromInt(1000), decimal.NewFromInt(5))
		assert.True(t, tax.Equal(decimal.NewFromInt(50)), "got %s", tax)
	})

	t.Run("rounds at the multiplication step", func(t *testing.T) {
		// 100.1 * 5 = 500.5, rounds to 501, tax 5.01
		tax := ComputeTax(decimal.NewFromFloat(100.1), decimal.NewFromInt(5))
		assert.True(t, tax.Equal(decimal.NewFromFloat(5.01)), "got %s", tax)

		// 100.05 * 5 = 500.25, rounds to 500, tax 5.00
		tax = ComputeTax(decimal.NewFromFloat(100.05), decimal.NewFromInt(5))
		assert.True(t, tax.Equal(decimal.NewFromInt(5)), "got %s", tax)
	})

	t.Run("zero rate", func(t *testing.T) {
		tax := ComputeTax(decimal.NewFromInt(1000), decimal.Zero)
		assert.True(t, tax.IsZero())
	})
}

func TestNewDocument(t *testing.T) {
	t.Run("derives tax and total from subtotal", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusDraft)
		assert.True(t, doc.TaxAmount.Equal(decimal.NewFromInt(50)))
		assert.True(t, doc.TotalAmount.Equal(decimal.NewFromInt(1050)))
		assert.True(t, doc.PaidAmount.IsZero())
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("empty status defaults to draft", func(t *testing.T) {
		doc := newTestDocument(t, "1000", "")
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("accepts issued at creation", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		assert.Equal(t, StatusIssued, doc.Status)
	})

	t.Run("rejects other creation statuses", func(t *testing.T) {
		_, err := NewDocument(KindInvoice, uuid.New(), "INV-2026-0001", uuid.New(), "",
			time.Now(), nil, decimal.NewFromInt(100), decimal.NewFromInt(5), "TWD", StatusPaid, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects negative subtotal", func(t *testing.T) {
		_, err := NewDocument(KindInvoice, uuid.New(), "INV-2026-0001", uuid.New(), "",
			time.Now(), nil, decimal.NewFromInt(-1), decimal.NewFromInt(5), "TWD", StatusDraft, uuid.New())
		assert.Error(t, err)
	})
}

func TestDocumentApplyPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)

		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(500)))
		assert.Equal(t, StatusPartiallyPaid, doc.Status)
		assert.True(t, doc.PaidAmount.Equal(decimal.NewFromInt(500)))
		assert.True(t, doc.Remaining().Equal(decimal.NewFromInt(550)))
	})

	t.Run("exact remaining completes the document", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(500)))

		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(550)))
		assert.Equal(t, StatusPaid, doc.Status)
		assert.True(t, doc.PaidAmount.Equal(doc.TotalAmount))
		assert.NotNil(t, doc.PaidAt)
	})

	t.Run("overpayment is rejected and leaves paid amount unchanged", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)

		err := doc.ApplyPayment(decimal.NewFromInt(1051))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
		assert.True(t, doc.PaidAmount.IsZero())
		assert.Equal(t, StatusIssued, doc.Status)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		assert.Error(t, doc.ApplyPayment(decimal.Zero))
		assert.Error(t, doc.ApplyPayment(decimal.NewFromInt(-5)))
	})

	t.Run("rejects payment on paid document", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(1050)))

		err := doc.ApplyPayment(decimal.NewFromInt(1))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("rejects payment on void document", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		require.NoError(t, doc.Void())
		assert.Error(t, doc.ApplyPayment(decimal.NewFromInt(1)))
	})
}

func TestDocumentVoid(t *testing.T) {
	t.Run("voidable from draft, issued and partially paid", func(t *testing.T) {
		for _, status := range []DocumentStatus{StatusDraft, StatusIssued} {
			doc := newTestDocument(t, "1000", status)
			require.NoError(t, doc.Void())
			assert.Equal(t, StatusVoid, doc.Status)
			assert.NotNil(t, doc.VoidedAt)
		}

		doc := newTestDocument(t, "1000", StatusIssued)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(100)))
		require.NoError(t, doc.Void())
		assert.Equal(t, StatusVoid, doc.Status)
		// Paid amount stays as a historical record
		assert.True(t, doc.PaidAmount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("not voidable from paid", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(1050)))
		assert.Error(t, doc.Void())
	})

	t.Run("not voidable twice", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusDraft)
		require.NoError(t, doc.Void())
		assert.Error(t, doc.Void())
	})
}

func TestDocumentUpdateSubtotal(t *testing.T) {
	t.Run("recomputes tax and total", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusDraft)

		require.NoError(t, doc.UpdateSubtotal(decimal.NewFromInt(2000), decimal.NewFromInt(5)))
		assert.True(t, doc.TaxAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, doc.TotalAmount.Equal(decimal.NewFromInt(2100)))
	})

	t.Run("immutable once terminal", func(t *testing.T) {
		doc := newTestDocument(t, "1000", StatusIssued)
		require.NoError(t, doc.ApplyPayment(decimal.NewFromInt(1050)))
		assert.Error(t, doc.UpdateSubtotal(decimal.NewFromInt(10), decimal.NewFromInt(5)))

		voided := newTestDocument(t, "1000", StatusDraft)
		require.NoError(t, voided.Void())
		assert.Error(t, voided.UpdateSubtotal(decimal.NewFromInt(10), decimal.NewFromInt(5)))
		assert.Error(t, voided.SetDescription("x", ""))
		assert.Error(t, voided.ChangeStatus(StatusIssued))
	})
}

func TestDocumentKindPrefix(t *testing.T) {
	assert.Equal(t, "INV", KindInvoice.NumberPrefix())
	assert.Equal(t, "BIL", KindBill.NumberPrefix())
}

func TestNewPayment(t *testing.T) {
	t.Run("defaults method to bank transfer", func(t *testing.T) {
		p, err := NewPayment(uuid.New(), uuid.New(), KindInvoice,
			decimal.NewFromInt(100), time.Now(), "", "", "", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, MethodBankTransfer, p.Method)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), uuid.New(), KindInvoice,
			decimal.Zero, time.Now(), MethodCash, "", "", uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), uuid.New(), KindInvoice,
			decimal.NewFromInt(1), time.Now(), "WIRE", "", "", uuid.New())
		assert.Error(t, err)
	})
}
