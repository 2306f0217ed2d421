package identity

import (
	"time"

	"github.com/google/uuid"
)

// Membership links a user to a company. A user must hold at least one
// membership to log in, and at most one membership per user is the default.
type Membership struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
	IsDefault bool
	CreatedAt time.Time
}

// TableName returns the database table name
func (Membership) TableName() string {
	return "memberships"
}

// NewMembership creates a membership for a user in a company
func NewMembership(userID, companyID uuid.UUID, isDefault bool) *Membership {
	return &Membership{
		ID:        uuid.New(),
		UserID:    userID,
		CompanyID: companyID,
		IsDefault: isDefault,
		CreatedAt: time.Now(),
	}
}

// DefaultMembership picks the membership marked default, falling back to the
// first one. Returns nil for an empty slice.
func DefaultMembership(memberships []*Membership) *Membership {
	for _, m := range memberships {
		if m.IsDefault {
			return m
		}
	}
	if len(memberships) > 0 {
		return memberships[0]
	}
	return nil
}
