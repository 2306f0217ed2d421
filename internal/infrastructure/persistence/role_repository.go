package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role with its permission links
func (r *GormRoleRepository) Create(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RoleModelFromDomain(role)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceRolePermissions(tx, role.ID, role.PermissionCodes())
	})
}

// FindByID finds a role by ID with its permissions loaded
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	role := model.ToDomain()
	permissions, err := r.loadPermissions(ctx, []uuid.UUID{role.ID})
	if err != nil {
		return nil, err
	}
	role.Permissions = permissions[role.ID]
	return role, nil
}

// FindByName finds a role by name, preferring a company-scoped role over a
// system role of the same name
func (r *GormRoleRepository) FindByName(ctx context.Context, companyID uuid.UUID, name string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("name = ? AND (company_id = ? OR company_id IS NULL)", name, companyID).
		Order("company_id DESC NULLS LAST").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, model.ID)
}

// FindAll returns the system roles plus the company's own roles
func (r *GormRoleRepository) FindAll(ctx context.Context, companyID uuid.UUID) ([]*identity.Role, error) {
	var roleModels []models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("is_system = ? OR company_id = ?", true, companyID).
		Order("is_system DESC, name ASC").
		Find(&roleModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainWithPermissions(ctx, roleModels)
}

// FindByIDs finds multiple roles by IDs with permissions loaded
func (r *GormRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.Role, error) {
	if len(ids) == 0 {
		return []*identity.Role{}, nil
	}

	var roleModels []models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&roleModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainWithPermissions(ctx, roleModels)
}

func (r *GormRoleRepository) toDomainWithPermissions(ctx context.Context, roleModels []models.RoleModel) ([]*identity.Role, error) {
	roleIDs := make([]uuid.UUID, len(roleModels))
	for i := range roleModels {
		roleIDs[i] = roleModels[i].ID
	}

	permissions, err := r.loadPermissions(ctx, roleIDs)
	if err != nil {
		return nil, err
	}

	roles := make([]*identity.Role, len(roleModels))
	for i := range roleModels {
		role := roleModels[i].ToDomain()
		role.Permissions = permissions[role.ID]
		roles[i] = role
	}
	return roles, nil
}

// loadPermissions loads the permission catalog entries linked to the roles
func (r *GormRoleRepository) loadPermissions(ctx context.Context, roleIDs []uuid.UUID) (map[uuid.UUID][]identity.Permission, error) {
	if len(roleIDs) == 0 {
		return map[uuid.UUID][]identity.Permission{}, nil
	}

	type rolePermissionRow struct {
		RoleID      uuid.UUID
		Code        string
		Module      string
		Action      string
		Description string
	}

	var rows []rolePermissionRow
	if err := r.db.WithContext(ctx).
		Table("role_permissions").
		Select("role_permissions.role_id, permissions.code, permissions.module, permissions.action, permissions.description").
		Joins("JOIN permissions ON permissions.code = role_permissions.permission_code").
		Where("role_permissions.role_id IN ?", roleIDs).
		Order("permissions.code ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]identity.Permission, len(roleIDs))
	for _, id := range roleIDs {
		result[id] = make([]identity.Permission, 0)
	}
	for _, row := range rows {
		result[row.RoleID] = append(result[row.RoleID], identity.Permission{
			Code:        row.Code,
			Module:      row.Module,
			Action:      row.Action,
			Description: row.Description,
		})
	}
	return result, nil
}

func replaceRolePermissions(tx *gorm.DB, roleID uuid.UUID, codes []string) error {
	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return err
	}
	if len(codes) == 0 {
		return nil
	}

	links := make([]models.RolePermissionModel, len(codes))
	for i, code := range codes {
		links[i] = models.RolePermissionModel{
			RoleID:         roleID,
			PermissionCode: code,
			CreatedAt:      time.Now(),
		}
	}
	return tx.Create(&links).Error
}

// Ensure GormRoleRepository implements RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)

// GormPermissionRepository implements PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// FindAll returns every permission in the catalog
func (r *GormPermissionRepository) FindAll(ctx context.Context) ([]identity.Permission, error) {
	var permissionModels []models.PermissionModel
	if err := r.db.WithContext(ctx).
		Order("module ASC, action ASC").
		Find(&permissionModels).Error; err != nil {
		return nil, err
	}

	permissions := make([]identity.Permission, len(permissionModels))
	for i := range permissionModels {
		permissions[i] = permissionModels[i].ToDomain()
	}
	return permissions, nil
}

// FindByCodes finds permissions by their codes
func (r *GormPermissionRepository) FindByCodes(ctx context.Context, codes []string) ([]identity.Permission, error) {
	if len(codes) == 0 {
		return []identity.Permission{}, nil
	}

	var permissionModels []models.PermissionModel
	if err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Order("code ASC").
		Find(&permissionModels).Error; err != nil {
		return nil, err
	}

	permissions := make([]identity.Permission, len(permissionModels))
	for i := range permissionModels {
		permissions[i] = permissionModels[i].ToDomain()
	}
	return permissions, nil
}

// Ensure GormPermissionRepository implements PermissionRepository
var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)

// GormRoleAssignmentRepository implements RoleAssignmentRepository using GORM
type GormRoleAssignmentRepository struct {
	db    *gorm.DB
	roles *GormRoleRepository
}

// NewGormRoleAssignmentRepository creates a new GormRoleAssignmentRepository
func NewGormRoleAssignmentRepository(db *gorm.DB) *GormRoleAssignmentRepository {
	return &GormRoleAssignmentRepository{db: db, roles: NewGormRoleRepository(db)}
}

// Replace replaces all of the user's role assignments in a company
func (r *GormRoleAssignmentRepository) Replace(ctx context.Context, userID, companyID uuid.UUID, roleIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND company_id = ?", userID, companyID).
			Delete(&models.RoleAssignmentModel{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}

		assignments := make([]models.RoleAssignmentModel, len(roleIDs))
		for i, roleID := range roleIDs {
			assignments[i] = models.RoleAssignmentModel{
				ID:        uuid.New(),
				UserID:    userID,
				RoleID:    roleID,
				CompanyID: companyID,
				CreatedAt: time.Now(),
			}
		}
		return tx.Create(&assignments).Error
	})
}

// FindRoles returns the roles assigned to a user in a company, with
// permissions loaded
func (r *GormRoleAssignmentRepository) FindRoles(ctx context.Context, userID, companyID uuid.UUID) ([]*identity.Role, error) {
	var assignmentModels []models.RoleAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Find(&assignmentModels).Error; err != nil {
		return nil, err
	}

	roleIDs := make([]uuid.UUID, len(assignmentModels))
	for i := range assignmentModels {
		roleIDs[i] = assignmentModels[i].RoleID
	}
	return r.roles.FindByIDs(ctx, roleIDs)
}

// Ensure GormRoleAssignmentRepository implements RoleAssignmentRepository
var _ identity.RoleAssignmentRepository = (*GormRoleAssignmentRepository)(nil)
