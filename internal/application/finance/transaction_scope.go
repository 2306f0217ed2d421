package finance

import (
	"context"

	"github.com/fms/backend/internal/domain/finance"
)

// TransactionalRepositories exposes repositories bound to one database
// transaction. Number generation, document writes, and payment inserts that
// must commit together go through these.
type TransactionalRepositories interface {
	DocumentRepo() finance.DocumentRepository
	PaymentRepo() finance.PaymentRepository
}

// TransactionScope executes a function within a database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// NoOpTransactionScope runs the function without transaction semantics,
// passing through fixed repositories. Intended for tests.
type NoOpTransactionScope struct {
	Documents finance.DocumentRepository
	Payments  finance.PaymentRepository
}

// Execute runs fn directly with the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DocumentRepo returns the configured document repository
func (s *NoOpTransactionScope) DocumentRepo() finance.DocumentRepository {
	return s.Documents
}

// PaymentRepo returns the configured payment repository
func (s *NoOpTransactionScope) PaymentRepo() finance.PaymentRepository {
	return s.Payments
}
