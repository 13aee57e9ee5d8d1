package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"app error", NewNotFoundError("Product"), http.StatusNotFound},
		{"wrapped app error", fmt.Errorf("update: %w", NewBadRequestError("bad price")), http.StatusBadRequest},
		{"validation error", NewValidationError([]FieldError{{Field: "newPrice", Message: "is required"}}), http.StatusUnprocessableEntity},
		{"conflict", NewConflictError("Product already exists"), http.StatusConflict},
		{"store error", fmt.Errorf("report: %w", NewStoreError("list orders", errors.New("timeout"))), http.StatusServiceUnavailable},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetAppError(tt.err).Code)
		})
	}
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("list inventory", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list inventory: connection refused", err.Error())
}
