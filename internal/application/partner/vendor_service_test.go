package partner

import (
	"context"
	"testing"

	"github.com/fms/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.PartnerFilter) ([]*partner.Vendor, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*partner.Vendor), args.Get(1).(int64), args.Error(2)
}

func TestVendorService_CreateVendor(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVendorRepository)
	service := NewVendorService(repo, zap.NewNop())
	companyID := uuid.New()

	var created *partner.Vendor
	repo.On("Create", ctx, mock.AnythingOfType("*partner.Vendor")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*partner.Vendor)
		}).Return(nil)

	result, err := service.CreateVendor(ctx, CreatePartnerInput{
		CompanyID: companyID,
		Name:      "Chunghwa Telecom",
		CreatedBy: uuid.New(),
	})

	require.NoError(t, err)
	assert.Equal(t, "Chunghwa Telecom", result.Name)
	assert.Equal(t, "ACTIVE", result.Status)
	require.NotNil(t, created)
	assert.Equal(t, companyID, created.TenantID)
}

func TestVendorService_DeactivateVendor(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVendorRepository)
	service := NewVendorService(repo, zap.NewNop())
	companyID := uuid.New()

	vendor, err := partner.NewVendor(companyID, "Chunghwa Telecom", uuid.New())
	require.NoError(t, err)

	repo.On("FindByIDForTenant", ctx, companyID, vendor.ID).Return(vendor, nil)
	repo.On("Save", ctx, vendor).Return(nil)

	require.NoError(t, service.DeactivateVendor(ctx, companyID, vendor.ID))
	assert.False(t, vendor.IsActive())
}

func TestVendorService_ListVendors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVendorRepository)
	service := NewVendorService(repo, zap.NewNop())
	companyID := uuid.New()

	vendor, err := partner.NewVendor(companyID, "Chunghwa Telecom", uuid.New())
	require.NoError(t, err)

	repo.On("FindAllForTenant", ctx, companyID, mock.AnythingOfType("partner.PartnerFilter")).
		Return([]*partner.Vendor{vendor}, int64(1), nil)

	result, err := service.ListVendors(ctx, ListPartnersInput{CompanyID: companyID, Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Chunghwa Telecom", result.Items[0].Name)
}
