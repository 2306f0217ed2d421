package identity

import (
	"context"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *Role) error

	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByName finds a role by name, preferring a company-scoped role
	// over a system role of the same name
	FindByName(ctx context.Context, companyID uuid.UUID, name string) (*Role, error)

	// FindAll returns the system roles plus the company's own roles
	FindAll(ctx context.Context, companyID uuid.UUID) ([]*Role, error)

	// FindByIDs finds multiple roles by IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Role, error)
}

// PermissionRepository defines the interface for the permission catalog
type PermissionRepository interface {
	// FindAll returns every permission grouped in catalog order
	FindAll(ctx context.Context) ([]Permission, error)

	// FindByCodes finds permissions by their codes
	FindByCodes(ctx context.Context, codes []string) ([]Permission, error)
}

// RoleAssignmentRepository defines the interface for role assignments
type RoleAssignmentRepository interface {
	// Replace replaces all of the user's role assignments in a company
	Replace(ctx context.Context, userID, companyID uuid.UUID, roleIDs []uuid.UUID) error

	// FindRoles returns the roles assigned to a user in a company,
	// with permissions loaded
	FindRoles(ctx context.Context, userID, companyID uuid.UUID) ([]*Role, error)
}
