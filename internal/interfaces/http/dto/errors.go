package dto

import "net/http"

// Error codes mirror the domain error codes so clients see a stable taxonomy.
const (
	ErrCodeInternal   = "INTERNAL"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Codes not in the
// map fall back to 500.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	"INVALID_INPUT": http.StatusBadRequest,

	"NOT_AUTHENTICATED":   http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	// Locked accounts are distinguishable from bad credentials so clients can
	// show a retry-later message.
	"ACCOUNT_LOCKED":   http.StatusLocked,
	"ACCOUNT_INACTIVE": http.StatusForbidden,
	"INVALID_PASSWORD": http.StatusBadRequest,

	"FORBIDDEN":           http.StatusForbidden,
	"NO_ACCESS":           http.StatusForbidden,
	"NO_COMPANY_ASSIGNED": http.StatusForbidden,

	"NOT_FOUND":             http.StatusNotFound,
	"DUPLICATE":             http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,

	"INVALID_STATUS":        http.StatusUnprocessableEntity,
	"OVERPAYMENT":           http.StatusUnprocessableEntity,
	"COUNTERPARTY_INACTIVE": http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
