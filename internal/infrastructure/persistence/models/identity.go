package models

import (
	"time"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the persistence model for the User domain entity.
// Users are global; company access is granted through memberships.
type UserModel struct {
	AggregateModel
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(200)"`
	DisplayName    string              `gorm:"type:varchar(200)"`
	PasswordHash   string              `gorm:"type:varchar(255);not null"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	FailedAttempts int                 `gorm:"not null;default:0"`
	LockedUntil    *time.Time
	LastLoginAt    *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Username:       m.Username,
		Email:          m.Email,
		DisplayName:    m.DisplayName,
		PasswordHash:   m.PasswordHash,
		Status:         m.Status,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
		LastLoginAt:    m.LastLoginAt,
	}
	m.PopulateAggregateRoot(&user.BaseAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.PasswordHash = u.PasswordHash
	m.Status = u.Status
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// CompanyModel is the persistence model for the Company domain entity.
type CompanyModel struct {
	AggregateModel
	Name            string          `gorm:"type:varchar(200);not null"`
	TaxID           string          `gorm:"type:varchar(50)"`
	Address         string          `gorm:"type:text"`
	Phone           string          `gorm:"type:varchar(50)"`
	Currency        string          `gorm:"type:varchar(10);not null;default:'TWD'"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:5"`
	FiscalYearStart int             `gorm:"not null;default:1"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *identity.Company {
	company := &identity.Company{
		Name:            m.Name,
		TaxID:           m.TaxID,
		Address:         m.Address,
		Phone:           m.Phone,
		Currency:        valueobject.Currency(m.Currency),
		TaxRate:         m.TaxRate,
		FiscalYearStart: m.FiscalYearStart,
		CreatedBy:       m.CreatedBy,
	}
	m.PopulateAggregateRoot(&company.BaseAggregateRoot)
	return company
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *identity.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.TaxID = c.TaxID
	m.Address = c.Address
	m.Phone = c.Phone
	m.Currency = string(c.Currency)
	m.TaxRate = c.TaxRate
	m.FiscalYearStart = c.FiscalYearStart
	m.CreatedBy = c.CreatedBy
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *identity.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// MembershipModel is the persistence model for the Membership relationship.
type MembershipModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_company"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_company"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "memberships"
}

// ToDomain converts the persistence model to a domain Membership.
func (m *MembershipModel) ToDomain() *identity.Membership {
	return &identity.Membership{
		ID:        m.ID,
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		IsDefault: m.IsDefault,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Membership.
func (m *MembershipModel) FromDomain(mem *identity.Membership) {
	m.ID = mem.ID
	m.UserID = mem.UserID
	m.CompanyID = mem.CompanyID
	m.IsDefault = mem.IsDefault
	m.CreatedAt = mem.CreatedAt
}

// RoleModel is the persistence model for the Role domain entity.
// System roles have a NULL company_id and are shared across tenants.
type RoleModel struct {
	AggregateModel
	Name        string     `gorm:"type:varchar(100);not null"`
	Description string     `gorm:"type:text"`
	IsSystem    bool       `gorm:"not null;default:false"`
	CompanyID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role entity.
// Note: Permissions must be loaded separately by the repository.
func (m *RoleModel) ToDomain() *identity.Role {
	role := &identity.Role{
		Name:        m.Name,
		Description: m.Description,
		IsSystem:    m.IsSystem,
		CompanyID:   m.CompanyID,
		Permissions: make([]identity.Permission, 0),
	}
	m.PopulateAggregateRoot(&role.BaseAggregateRoot)
	return role
}

// FromDomain populates the persistence model from a domain Role entity.
func (m *RoleModel) FromDomain(r *identity.Role) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Name = r.Name
	m.Description = r.Description
	m.IsSystem = r.IsSystem
	m.CompanyID = r.CompanyID
}

// RoleModelFromDomain creates a new persistence model from a domain Role entity.
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{}
	m.FromDomain(r)
	return m
}

// PermissionModel is the persistence model for the permission catalog.
type PermissionModel struct {
	Code        string    `gorm:"type:varchar(100);primaryKey"`
	Module      string    `gorm:"type:varchar(50);not null;index"`
	Action      string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:varchar(200)"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PermissionModel) TableName() string {
	return "permissions"
}

// ToDomain converts the persistence model to a domain Permission.
func (m *PermissionModel) ToDomain() identity.Permission {
	return identity.Permission{
		Code:        m.Code,
		Module:      m.Module,
		Action:      m.Action,
		Description: m.Description,
	}
}

// RolePermissionModel links a role to a permission code.
type RolePermissionModel struct {
	RoleID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionCode string    `gorm:"type:varchar(100);primaryKey"`
	CreatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// RoleAssignmentModel is the persistence model for role assignments.
type RoleAssignmentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_role_assignments_user_company"`
	RoleID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_role_assignments_user_company"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoleAssignmentModel) TableName() string {
	return "role_assignments"
}

// ToDomain converts the persistence model to a domain RoleAssignment.
func (m *RoleAssignmentModel) ToDomain() identity.RoleAssignment {
	return identity.RoleAssignment{
		ID:        m.ID,
		UserID:    m.UserID,
		RoleID:    m.RoleID,
		CompanyID: m.CompanyID,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain RoleAssignment.
func (m *RoleAssignmentModel) FromDomain(ra identity.RoleAssignment) {
	m.ID = ra.ID
	m.UserID = ra.UserID
	m.RoleID = ra.RoleID
	m.CompanyID = ra.CompanyID
	m.CreatedAt = ra.CreatedAt
}
