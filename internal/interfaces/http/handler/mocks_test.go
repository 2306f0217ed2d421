package handler

import (
	"context"

	"github.com/fms/backend/internal/domain/finance"
	"github.com/fms/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockMembershipRepository is a mock implementation of identity.MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *identity.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*identity.Membership, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, userID, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepository) SetDefault(ctx context.Context, userID, companyID uuid.UUID) error {
	args := m.Called(ctx, userID, companyID)
	return args.Error(0)
}

// MockRoleAssignmentRepository is a mock implementation of identity.RoleAssignmentRepository
type MockRoleAssignmentRepository struct {
	mock.Mock
}

func (m *MockRoleAssignmentRepository) Replace(ctx context.Context, userID, companyID uuid.UUID, roleIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, companyID, roleIDs)
	return args.Error(0)
}

func (m *MockRoleAssignmentRepository) FindRoles(ctx context.Context, userID, companyID uuid.UUID) ([]*identity.Role, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).([]*identity.Role), args.Error(1)
}

// MockDocumentRepository is a mock implementation of finance.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *finance.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *finance.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID, kind finance.DocumentKind) (*finance.Document, error) {
	args := m.Called(ctx, tenantID, id, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, kind finance.DocumentKind, filter finance.DocumentFilter) ([]*finance.Document, int64, error) {
	args := m.Called(ctx, tenantID, kind, filter)
	return args.Get(0).([]*finance.Document), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) NextNumber(ctx context.Context, tenantID uuid.UUID, kind finance.DocumentKind, year int) (string, error) {
	args := m.Called(ctx, tenantID, kind, year)
	return args.String(0), args.Error(1)
}

// MockPaymentRepository is a mock implementation of finance.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *finance.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByDocument(ctx context.Context, tenantID, documentID uuid.UUID) ([]*finance.Payment, error) {
	args := m.Called(ctx, tenantID, documentID)
	return args.Get(0).([]*finance.Payment), args.Error(1)
}
