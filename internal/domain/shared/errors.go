package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrDuplicate          = NewDomainError("DUPLICATE", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrNotAuthenticated   = NewDomainError("NOT_AUTHENTICATED", "Authentication required")
	ErrInvalidToken       = NewDomainError("INVALID_TOKEN", "Token is invalid or expired")
	ErrTokenExpired       = NewDomainError("TOKEN_EXPIRED", "Token has expired")
	ErrTokenRevoked       = NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrAccountLocked      = NewDomainError("ACCOUNT_LOCKED", "Account is locked due to too many failed login attempts")
	ErrAccountInactive    = NewDomainError("ACCOUNT_INACTIVE", "Account is inactive")
	ErrInvalidPassword    = NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrNoAccess           = NewDomainError("NO_ACCESS", "No access to the requested company")
	ErrNoCompanyAssigned  = NewDomainError("NO_COMPANY_ASSIGNED", "User is not assigned to any company")
	ErrInvalidStatus      = NewDomainError("INVALID_STATUS", "Operation not allowed in current document status")
	ErrOverpayment        = NewDomainError("OVERPAYMENT", "Payment amount exceeds the remaining balance")
)
