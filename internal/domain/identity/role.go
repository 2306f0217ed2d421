package identity

import (
	"strings"
	"time"

	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Permission represents an atomic capability code grouped by module,
// e.g. "ar.write". It is a value object.
type Permission struct {
	Code        string // e.g., "ar.write"
	Module      string // e.g., "ar"
	Action      string // e.g., "write"
	Description string
}

// NewPermission creates a new Permission value object
func NewPermission(module, action string) (*Permission, error) {
	module = strings.ToLower(strings.TrimSpace(module))
	action = strings.ToLower(strings.TrimSpace(action))
	if module == "" || action == "" {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission module and action cannot be empty")
	}

	return &Permission{
		Code:   module + "." + action,
		Module: module,
		Action: action,
	}, nil
}

// NewPermissionFromCode creates a Permission from a code string (e.g., "ar.write")
func NewPermissionFromCode(code string) (*Permission, error) {
	parts := strings.SplitN(code, ".", 2)
	if len(parts) != 2 {
		return nil, shared.NewDomainError("INVALID_PERMISSION", "Permission code must be in format 'module.action'")
	}
	return NewPermission(parts[0], parts[1])
}

// Equals checks if two permissions are equal
func (p Permission) Equals(other Permission) bool {
	return p.Code == other.Code
}

// Role is a named bundle of permission codes. System roles are seeded and
// shared across tenants; non-system roles belong to one company.
type Role struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	IsSystem    bool
	CompanyID   *uuid.UUID
	Permissions []Permission
}

// TableName returns the database table name
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a company-scoped role
func NewRole(companyID uuid.UUID, name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		CompanyID:         &companyID,
	}, nil
}

// NewSystemRole creates a seeded role shared across tenants
func NewSystemRole(name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	return &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		IsSystem:          true,
	}, nil
}

// SetPermissions replaces the role's permissions, deduplicated by code
func (r *Role) SetPermissions(permissions []Permission) {
	seen := make(map[string]struct{}, len(permissions))
	unique := make([]Permission, 0, len(permissions))
	for _, p := range permissions {
		if _, ok := seen[p.Code]; ok {
			continue
		}
		seen[p.Code] = struct{}{}
		unique = append(unique, p)
	}

	r.Permissions = unique
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// HasPermission checks if the role carries a permission code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// PermissionCodes returns the role's permission codes
func (r *Role) PermissionCodes() []string {
	codes := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		codes = append(codes, p.Code)
	}
	return codes
}

// RoleAssignment grants a role's permissions to a user within one company
type RoleAssignment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	RoleID    uuid.UUID
	CompanyID uuid.UUID
	CreatedAt time.Time
}

// TableName returns the database table name
func (RoleAssignment) TableName() string {
	return "role_assignments"
}

// NewRoleAssignment creates a role assignment
func NewRoleAssignment(userID, roleID, companyID uuid.UUID) *RoleAssignment {
	return &RoleAssignment{
		ID:        uuid.New(),
		UserID:    userID,
		RoleID:    roleID,
		CompanyID: companyID,
		CreatedAt: time.Now(),
	}
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}
