package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SetTypeAndCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("title is required"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("ticket not found"), ErrorTypeNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("login required"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("access denied"), ErrorTypeForbidden, http.StatusForbidden},
		{"conflict", NewConflictError("ticket was modified concurrently"), ErrorTypeConflict, http.StatusConflict},
		{"rate limited", NewRateLimitedError("slow down"), ErrorTypeRateLimited, http.StatusTooManyRequests},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Empty(t, tt.err.Details)
		})
	}
}

func TestAppError_ErrorIncludesDetails(t *testing.T) {
	err := NewValidationError("invalid status", "status must be one of Open, InProgress, Closed")
	assert.Equal(t, "validation_error: invalid status (status must be one of Open, InProgress, Closed)", err.Error())
	assert.Equal(t, "forbidden: access denied", NewForbiddenError("access denied").Error())
}

func TestTypePredicates_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading ticket: %w", NewNotFoundError("ticket 7 not found"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsNotFoundError(wrapped))
	assert.False(t, IsForbiddenError(wrapped))
	assert.True(t, IsConflictError(fmt.Errorf("saving: %w", NewConflictError("stale"))))
	assert.Equal(t, http.StatusNotFound, GetAppError(wrapped).Code)

	plain := fmt.Errorf("disk full")
	assert.False(t, IsAppError(plain))
	assert.Nil(t, GetAppError(plain))
	assert.False(t, IsValidationError(plain))
}

func TestNewInvalidCredentialsError(t *testing.T) {
	err := NewInvalidCredentialsError()
	assert.True(t, IsUnauthorizedError(err))
	assert.NotContains(t, err.Message, "password was")
}
