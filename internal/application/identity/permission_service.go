package identity

import (
	"context"
	"sort"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionService resolves the effective permission set of a user in a
// company: the deduplicated union of all permissions carried by the user's
// assigned roles. Results are cached per (user, company); role mutations
// must invalidate the cache explicitly.
type PermissionService struct {
	assignmentRepo identity.RoleAssignmentRepository
	cache          cache.PermissionCache
	logger         *zap.Logger
}

// NewPermissionService creates a new permission service
func NewPermissionService(
	assignmentRepo identity.RoleAssignmentRepository,
	permissionCache cache.PermissionCache,
	logger *zap.Logger,
) *PermissionService {
	return &PermissionService{
		assignmentRepo: assignmentRepo,
		cache:          permissionCache,
		logger:         logger,
	}
}

// Resolve returns the user's effective permission codes in a company.
// A cached set is returned as long as it is fresh; cache errors degrade to a
// database resolution rather than failing the request.
func (s *PermissionService) Resolve(ctx context.Context, userID, companyID uuid.UUID) ([]string, error) {
	if cached, found, err := s.cache.Get(ctx, userID, companyID); err == nil && found {
		return cached, nil
	} else if err != nil {
		s.logger.Warn("Permission cache read failed, resolving from database", zap.Error(err))
	}

	roles, err := s.assignmentRepo.FindRoles(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	permissions := unionPermissionCodes(roles)

	if err := s.cache.Set(ctx, userID, companyID, permissions, 0); err != nil {
		s.logger.Warn("Failed to cache resolved permissions", zap.Error(err))
	}

	return permissions, nil
}

// Invalidate drops the cached permission set for (user, company). Called on
// every role assignment change so revocation takes effect immediately.
func (s *PermissionService) Invalidate(ctx context.Context, userID, companyID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, userID, companyID); err != nil {
		s.logger.Warn("Failed to invalidate permission cache",
			zap.String("user_id", userID.String()),
			zap.String("company_id", companyID.String()),
			zap.Error(err))
	}
}

// unionPermissionCodes deduplicates permission codes across roles and returns
// them sorted for stable output
func unionPermissionCodes(roles []*identity.Role) []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0)
	for _, role := range roles {
		for _, code := range role.PermissionCodes() {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
