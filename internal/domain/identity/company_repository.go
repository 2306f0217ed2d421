package identity

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// Create creates a new company
	Create(ctx context.Context, company *Company) error

	// Update updates an existing company
	Update(ctx context.Context, company *Company) error

	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByUser returns all companies the user holds a membership in
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Company, error)
}

// MembershipRepository defines the interface for membership persistence
type MembershipRepository interface {
	// Create creates a new membership
	Create(ctx context.Context, membership *Membership) error

	// FindByUser returns all memberships of a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Membership, error)

	// FindByUserAndCompany returns the membership of a user in a company,
	// or shared.ErrNotFound if the user has none
	FindByUserAndCompany(ctx context.Context, userID, companyID uuid.UUID) (*Membership, error)

	// SetDefault atomically clears the default flag on all of the user's
	// memberships and sets it on the one for the given company
	SetDefault(ctx context.Context, userID, companyID uuid.UUID) error
}
