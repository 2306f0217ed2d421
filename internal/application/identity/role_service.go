package identity

import (
	"context"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService manages roles and the permission catalog
type RoleService struct {
	roleRepo       identity.RoleRepository
	permissionRepo identity.PermissionRepository
	logger         *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo identity.RoleRepository,
	permissionRepo identity.PermissionRepository,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		logger:         logger,
	}
}

// CreateRole creates a company-scoped role with the given permissions
func (s *RoleService) CreateRole(ctx context.Context, companyID uuid.UUID, name, description string, permissionCodes []string) (*RoleDTO, error) {
	role, err := identity.NewRole(companyID, name, description)
	if err != nil {
		return nil, err
	}

	if len(permissionCodes) > 0 {
		permissions, err := s.permissionRepo.FindByCodes(ctx, permissionCodes)
		if err != nil {
			return nil, err
		}
		role.SetPermissions(permissions)
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name),
		zap.String("company_id", companyID.String()))

	dto := roleToDTO(role)
	return &dto, nil
}

// GetRole returns a role by ID
func (s *RoleService) GetRole(ctx context.Context, roleID uuid.UUID) (*RoleDTO, error) {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	dto := roleToDTO(role)
	return &dto, nil
}

// ListRoles returns the roles visible to a company: the system roles plus the
// company's own
func (s *RoleService) ListRoles(ctx context.Context, companyID uuid.UUID) ([]RoleDTO, error) {
	roles, err := s.roleRepo.FindAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	dtos := make([]RoleDTO, len(roles))
	for i, role := range roles {
		dtos[i] = roleToDTO(role)
	}
	return dtos, nil
}

// ListPermissions returns the full permission catalog
func (s *RoleService) ListPermissions(ctx context.Context) ([]PermissionDTO, error) {
	permissions, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]PermissionDTO, len(permissions))
	for i, p := range permissions {
		dtos[i] = PermissionDTO{
			Code:        p.Code,
			Module:      p.Module,
			Action:      p.Action,
			Description: p.Description,
		}
	}
	return dtos, nil
}

func roleToDTO(r *identity.Role) RoleDTO {
	return RoleDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		Permissions: r.PermissionCodes(),
	}
}
