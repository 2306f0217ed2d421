package finance

import (
	"context"

	"github.com/fms/backend/internal/domain/finance"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService applies payments to documents of one kind
type PaymentService struct {
	kind        finance.DocumentKind
	paymentRepo finance.PaymentRepository
	txScope     TransactionScope
	logger      *zap.Logger
}

// NewInvoicePaymentService creates a payment service for AR invoices
func NewInvoicePaymentService(paymentRepo finance.PaymentRepository, txScope TransactionScope, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		kind:        finance.KindInvoice,
		paymentRepo: paymentRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// NewBillPaymentService creates a payment service for AP bills
func NewBillPaymentService(paymentRepo finance.PaymentRepository, txScope TransactionScope, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		kind:        finance.KindBill,
		paymentRepo: paymentRepo,
		txScope:     txScope,
		logger:      logger,
	}
}

// ApplyPayment records a payment against a document and updates the
// document's paid amount and status. The payment insert and the document
// update commit in one transaction; the document row is re-read inside it so
// the overpayment guard sees the latest paid amount.
func (s *PaymentService) ApplyPayment(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentResult, error) {
	var doc *finance.Document
	var payment *finance.Payment

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		doc, err = repos.DocumentRepo().FindByIDForTenant(ctx, input.CompanyID, input.DocumentID, s.kind)
		if err != nil {
			return err
		}

		if err := doc.ApplyPayment(input.Amount); err != nil {
			return err
		}

		payment, err = finance.NewPayment(
			input.CompanyID,
			doc.ID,
			s.kind,
			input.Amount,
			input.PaymentDate,
			finance.PaymentMethod(input.Method),
			input.Reference,
			input.Notes,
			input.CreatedBy,
		)
		if err != nil {
			return err
		}

		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.DocumentRepo().Save(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment applied",
		zap.String("payment_id", payment.ID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number),
		zap.String("amount", input.Amount.String()),
		zap.String("status", string(doc.Status)))

	return &ApplyPaymentResult{
		Payment:  paymentToDTO(payment),
		Document: documentToDTO(doc),
	}, nil
}

// ListPayments returns the payments applied to a document in order
func (s *PaymentService) ListPayments(ctx context.Context, companyID, documentID uuid.UUID) ([]PaymentDTO, error) {
	payments, err := s.paymentRepo.FindByDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, payment := range payments {
		dtos[i] = paymentToDTO(payment)
	}
	return dtos, nil
}

func paymentToDTO(p *finance.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID,
		DocumentID:  p.DocumentID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
