package finance

import (
	"context"

	"github.com/fms/backend/internal/domain/finance"
	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/partner"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService manages the lifecycle of one document kind. Invoices and
// bills share the state machine and numbering rules; the kind only selects the
// counterparty registry and the number prefix.
type DocumentService struct {
	kind         finance.DocumentKind
	companyRepo  identity.CompanyRepository
	customerRepo partner.CustomerRepository
	vendorRepo   partner.VendorRepository
	documentRepo finance.DocumentRepository
	txScope      TransactionScope
	logger       *zap.Logger
}

// NewInvoiceService creates a document service for AR invoices
func NewInvoiceService(
	companyRepo identity.CompanyRepository,
	customerRepo partner.CustomerRepository,
	documentRepo finance.DocumentRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		kind:         finance.KindInvoice,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		documentRepo: documentRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// NewBillService creates a document service for AP bills
func NewBillService(
	companyRepo identity.CompanyRepository,
	vendorRepo partner.VendorRepository,
	documentRepo finance.DocumentRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		kind:         finance.KindBill,
		companyRepo:  companyRepo,
		vendorRepo:   vendorRepo,
		documentRepo: documentRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// CreateDocument creates an invoice or bill. The document number is generated
// inside the same transaction that inserts the row, so concurrent creations
// for one tenant and year cannot collide.
func (s *DocumentService) CreateDocument(ctx context.Context, input CreateDocumentInput) (*DocumentDTO, error) {
	company, err := s.companyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	counterpartyName, err := s.resolveCounterparty(ctx, input.CompanyID, input.CounterpartyID)
	if err != nil {
		return nil, err
	}

	var doc *finance.Document
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		number, err := repos.DocumentRepo().NextNumber(ctx, input.CompanyID, s.kind, input.DocumentDate.Year())
		if err != nil {
			return err
		}

		doc, err = finance.NewDocument(
			s.kind,
			input.CompanyID,
			number,
			input.CounterpartyID,
			counterpartyName,
			input.DocumentDate,
			input.DueDate,
			input.Subtotal,
			company.TaxRate,
			company.Currency,
			finance.DocumentStatus(input.Status),
			input.CreatedBy,
		)
		if err != nil {
			return err
		}
		if input.Description != "" || input.Notes != "" {
			if err := doc.SetDescription(input.Description, input.Notes); err != nil {
				return err
			}
		}

		return repos.DocumentRepo().Create(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("kind", string(s.kind)),
		zap.String("number", doc.Number),
		zap.String("company_id", input.CompanyID.String()))

	dto := documentToDTO(doc)
	return &dto, nil
}

// UpdateDocument patches a mutable document. A subtotal change recomputes tax
// and total from the company's current tax rate.
func (s *DocumentService) UpdateDocument(ctx context.Context, input UpdateDocumentInput) (*DocumentDTO, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, input.CompanyID, input.ID, s.kind)
	if err != nil {
		return nil, err
	}
	if !doc.IsMutable() {
		return nil, shared.ErrInvalidStatus
	}

	if input.CounterpartyID != nil {
		name, err := s.resolveCounterparty(ctx, input.CompanyID, *input.CounterpartyID)
		if err != nil {
			return nil, err
		}
		if err := doc.SetCounterparty(*input.CounterpartyID, name); err != nil {
			return nil, err
		}
	}
	if input.DocumentDate != nil || input.DueDate != nil {
		if err := doc.SetDates(input.DocumentDate, input.DueDate); err != nil {
			return nil, err
		}
	}
	if input.Subtotal != nil {
		company, err := s.companyRepo.FindByID(ctx, input.CompanyID)
		if err != nil {
			return nil, err
		}
		if err := doc.UpdateSubtotal(*input.Subtotal, company.TaxRate); err != nil {
			return nil, err
		}
	}
	if input.Description != nil || input.Notes != nil {
		description := doc.Description
		notes := doc.Notes
		if input.Description != nil {
			description = *input.Description
		}
		if input.Notes != nil {
			notes = *input.Notes
		}
		if err := doc.SetDescription(description, notes); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := doc.ChangeStatus(finance.DocumentStatus(*input.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	dto := documentToDTO(doc)
	return &dto, nil
}

// GetDocument returns a document scoped to the company
func (s *DocumentService) GetDocument(ctx context.Context, companyID, id uuid.UUID) (*DocumentDTO, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, companyID, id, s.kind)
	if err != nil {
		return nil, err
	}
	dto := documentToDTO(doc)
	return &dto, nil
}

// ListDocuments returns a filtered page of the company's documents
func (s *DocumentService) ListDocuments(ctx context.Context, input ListDocumentsInput) (*DocumentListResult, error) {
	filter := finance.DocumentFilter{
		Filter: shared.Filter{
			Page:     input.Page,
			PageSize: input.PageSize,
			OrderBy:  input.OrderBy,
			OrderDir: input.OrderDir,
			Search:   input.Search,
		},
		CounterpartyID: input.CounterpartyID,
		FromDate:       input.FromDate,
		ToDate:         input.ToDate,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	if input.Status != "" {
		status := finance.DocumentStatus(input.Status)
		filter.Status = &status
	}

	documents, total, err := s.documentRepo.FindAllForTenant(ctx, input.CompanyID, s.kind, filter)
	if err != nil {
		return nil, err
	}

	items := make([]DocumentDTO, len(documents))
	for i, doc := range documents {
		items[i] = documentToDTO(doc)
	}

	return &DocumentListResult{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// VoidDocument marks a document VOID. Applied payments stay on record.
func (s *DocumentService) VoidDocument(ctx context.Context, companyID, id uuid.UUID) (*DocumentDTO, error) {
	doc, err := s.documentRepo.FindByIDForTenant(ctx, companyID, id, s.kind)
	if err != nil {
		return nil, err
	}

	if err := doc.Void(); err != nil {
		return nil, err
	}
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("Document voided",
		zap.String("document_id", doc.ID.String()),
		zap.String("number", doc.Number))

	dto := documentToDTO(doc)
	return &dto, nil
}

// resolveCounterparty checks the counterparty exists in the tenant and is
// active, and returns its display name
func (s *DocumentService) resolveCounterparty(ctx context.Context, tenantID, counterpartyID uuid.UUID) (string, error) {
	if s.kind == finance.KindBill {
		vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, counterpartyID)
		if err != nil {
			return "", err
		}
		if !vendor.IsActive() {
			return "", shared.NewDomainError("COUNTERPARTY_INACTIVE", "Vendor is inactive")
		}
		return vendor.Name, nil
	}

	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, counterpartyID)
	if err != nil {
		return "", err
	}
	if !customer.IsActive() {
		return "", shared.NewDomainError("COUNTERPARTY_INACTIVE", "Customer is inactive")
	}
	return customer.Name, nil
}

func documentToDTO(d *finance.Document) DocumentDTO {
	return DocumentDTO{
		ID:               d.ID,
		Kind:             string(d.Kind),
		Number:           d.Number,
		CounterpartyID:   d.CounterpartyID,
		CounterpartyName: d.CounterpartyName,
		DocumentDate:     d.DocumentDate,
		DueDate:          d.DueDate,
		Subtotal:         d.Subtotal,
		TaxAmount:        d.TaxAmount,
		TotalAmount:      d.TotalAmount,
		PaidAmount:       d.PaidAmount,
		RemainingAmount:  d.Remaining(),
		Currency:         string(d.Currency),
		Status:           string(d.Status),
		Description:      d.Description,
		Notes:            d.Notes,
		PaidAt:           d.PaidAt,
		VoidedAt:         d.VoidedAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
