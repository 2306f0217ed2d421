package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingPermissionCache struct{}

func (failingPermissionCache) Get(context.Context, uuid.UUID, uuid.UUID) ([]string, bool, error) {
	return nil, false, errors.New("cache unavailable")
}

func (failingPermissionCache) Set(context.Context, uuid.UUID, uuid.UUID, []string, time.Duration) error {
	return errors.New("cache unavailable")
}

func (failingPermissionCache) Invalidate(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("cache unavailable")
}

func (failingPermissionCache) Close() error { return nil }

func TestPermissionService_Resolve_UnionsAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyID := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)

	arClerk := createTestRole(t, companyID, "ar.read", "ar.write", "customer.read")
	viewer := createTestRole(t, companyID, "ar.read", "ap.read", "customer.read")
	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{arClerk, viewer}, nil)

	service := NewPermissionService(assignmentRepo, cache.NewInMemoryPermissionCache(), zap.NewNop())

	permissions, err := service.Resolve(ctx, userID, companyID)

	require.NoError(t, err)
	assert.Equal(t, []string{"ap.read", "ar.read", "ar.write", "customer.read"}, permissions)
}

func TestPermissionService_Resolve_NoRoles(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyID := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)
	assignmentRepo.On("FindRoles", ctx, userID, companyID).Return([]*identity.Role{}, nil)

	service := NewPermissionService(assignmentRepo, cache.NewInMemoryPermissionCache(), zap.NewNop())

	permissions, err := service.Resolve(ctx, userID, companyID)

	require.NoError(t, err)
	assert.Empty(t, permissions)
}

func TestPermissionService_Resolve_SecondCallHitsCache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyID := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)

	role := createTestRole(t, companyID, "ar.read")
	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{role}, nil).Once()

	service := NewPermissionService(assignmentRepo, cache.NewInMemoryPermissionCache(), zap.NewNop())

	first, err := service.Resolve(ctx, userID, companyID)
	require.NoError(t, err)

	// The repository expectation is exhausted; a second hit would fail.
	second, err := service.Resolve(ctx, userID, companyID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assignmentRepo.AssertExpectations(t)
}

func TestPermissionService_Resolve_ScopedPerCompany(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyA := uuid.New()
	companyB := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)

	assignmentRepo.On("FindRoles", ctx, userID, companyA).
		Return([]*identity.Role{createTestRole(t, companyA, "ar.read", "ar.write")}, nil)
	assignmentRepo.On("FindRoles", ctx, userID, companyB).
		Return([]*identity.Role{createTestRole(t, companyB, "ap.read")}, nil)

	service := NewPermissionService(assignmentRepo, cache.NewInMemoryPermissionCache(), zap.NewNop())

	inA, err := service.Resolve(ctx, userID, companyA)
	require.NoError(t, err)
	inB, err := service.Resolve(ctx, userID, companyB)
	require.NoError(t, err)

	assert.Equal(t, []string{"ar.read", "ar.write"}, inA)
	assert.Equal(t, []string{"ap.read"}, inB)
}

func TestPermissionService_Resolve_StaleEntryRefreshed(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyID := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)

	now := time.Now()
	clock := func() time.Time { return now }
	permissionCache := cache.NewInMemoryPermissionCache(cache.WithPermissionClock(clock))
	service := NewPermissionService(assignmentRepo, permissionCache, zap.NewNop())

	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{createTestRole(t, companyID, "ar.read")}, nil).Once()
	first, err := service.Resolve(ctx, userID, companyID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ar.read"}, first)

	now = now.Add(cache.DefaultPermissionTTL + time.Second)

	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{createTestRole(t, companyID, "ar.read", "ar.write")}, nil).Once()
	second, err := service.Resolve(ctx, userID, companyID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ar.read", "ar.write"}, second)

	assignmentRepo.AssertExpectations(t)
}

func TestPermissionService_Invalidate_ForcesReload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyID := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)

	service := NewPermissionService(assignmentRepo, cache.NewInMemoryPermissionCache(), zap.NewNop())

	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{createTestRole(t, companyID, "ar.read", "ar.write")}, nil).Once()
	_, err := service.Resolve(ctx, userID, companyID)
	require.NoError(t, err)

	service.Invalidate(ctx, userID, companyID)

	// Revocation is visible immediately, not after TTL expiry.
	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{createTestRole(t, companyID, "ar.read")}, nil).Once()
	permissions, err := service.Resolve(ctx, userID, companyID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ar.read"}, permissions)

	assignmentRepo.AssertExpectations(t)
}

func TestPermissionService_Resolve_CacheFailureDegradesToDatabase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	companyID := uuid.New()
	assignmentRepo := new(MockRoleAssignmentRepository)
	assignmentRepo.On("FindRoles", ctx, userID, companyID).
		Return([]*identity.Role{createTestRole(t, companyID, "ar.read")}, nil)

	service := NewPermissionService(assignmentRepo, failingPermissionCache{}, zap.NewNop())

	permissions, err := service.Resolve(ctx, userID, companyID)

	require.NoError(t, err)
	assert.Equal(t, []string{"ar.read"}, permissions)
}
