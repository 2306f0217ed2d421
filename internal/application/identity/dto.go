package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoginInput contains login credentials
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the outcome of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains user details returned with authentication results
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	CompanyID   uuid.UUID
	Permissions []string
}

// RefreshTokenInput contains a refresh token to exchange
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains a fresh token pair
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the session tokens to revoke
type LogoutInput struct {
	AccessToken  string
	RefreshToken string
}

// ChangePasswordInput contains password change data
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// CreateUserInput contains data for creating a user
type CreateUserInput struct {
	Username    string
	Password    string
	Email       string
	DisplayName string
	CompanyID   uuid.UUID
	RoleIDs     []uuid.UUID
}

// UpdateUserInput contains data for updating a user
type UpdateUserInput struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

// ListUsersInput contains filters for listing users
type ListUsersInput struct {
	Keyword  string
	Status   string
	Page     int
	PageSize int
}

// UserDTO is the user representation returned to callers
type UserDTO struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	DisplayName    string     `json:"display_name"`
	Status         string     `json:"status"`
	FailedAttempts int        `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// UserListResult contains a page of users
type UserListResult struct {
	Users    []UserDTO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// AssignRolesInput contains data for replacing a user's roles in a company
type AssignRolesInput struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	RoleIDs   []uuid.UUID
}

// RoleDTO is the role representation returned to callers
type RoleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system"`
	Permissions []string  `json:"permissions"`
}

// PermissionDTO is the permission catalog representation
type PermissionDTO struct {
	Code        string `json:"code"`
	Module      string `json:"module"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// CreateCompanyInput contains data for creating a company
type CreateCompanyInput struct {
	Name      string
	TaxID     string
	Address   string
	Phone     string
	CreatedBy uuid.UUID
}

// UpdateCompanyInput contains data for updating company settings
type UpdateCompanyInput struct {
	CompanyID       uuid.UUID
	Name            string
	TaxID           string
	Address         string
	Phone           string
	Currency        string
	TaxRate         *decimal.Decimal
	FiscalYearStart *int
}

// CompanyDTO is the company representation returned to callers
type CompanyDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	Currency        string          `json:"currency"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	FiscalYearStart int             `json:"fiscal_year_start"`
	IsDefault       bool            `json:"is_default"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SwitchCompanyInput contains data for switching the session's company
type SwitchCompanyInput struct {
	UserID    uuid.UUID
	Username  string
	CompanyID uuid.UUID
}

// SwitchCompanyResult contains the re-scoped access token
type SwitchCompanyResult struct {
	AccessToken          string    `json:"access_token"`
	AccessTokenExpiresAt time.Time `json:"access_token_expires_at"`
	TokenType            string    `json:"token_type"`
	Company              CompanyDTO
}
