package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"DUPLICATE", http.StatusConflict},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"ACCOUNT_LOCKED", http.StatusLocked},
		{"ACCOUNT_INACTIVE", http.StatusForbidden},
		{"NO_ACCESS", http.StatusForbidden},
		{"NO_COMPANY_ASSIGNED", http.StatusForbidden},
		{"TOKEN_REVOKED", http.StatusUnauthorized},
		{"INVALID_STATUS", http.StatusUnprocessableEntity},
		{"OVERPAYMENT", http.StatusUnprocessableEntity},
		{"COUNTERPARTY_INACTIVE", http.StatusUnprocessableEntity},
		{"OPTIMISTIC_LOCK_ERROR", http.StatusConflict},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta_TotalPages(t *testing.T) {
	resp := NewSuccessResponseWithMeta(nil, 41, 1, 20)
	assert.Equal(t, 3, resp.Meta.TotalPages)

	resp = NewSuccessResponseWithMeta(nil, 40, 1, 20)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}
