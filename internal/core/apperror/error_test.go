package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates_SeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("record issue: %w", NewInsufficientStock("P001", 10, 3))

	assert.True(t, IsInsufficientStock(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(err))

	appErr, ok := AsAppError(err)
	assert.True(t, ok)
	assert.Equal(t, "P001", appErr.Details["product_code"])
	assert.Equal(t, int64(10), appErr.Details["requested"])
	assert.Equal(t, int64(3), appErr.Details["available"])
}

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("bad"), http.StatusBadRequest},
		{"invalid quantity", NewInvalidQuantity(0), http.StatusBadRequest},
		{"not found", NewProductNotFound("X"), http.StatusNotFound},
		{"duplicate", NewDuplicate("product", "code", "X"), http.StatusConflict},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabase(cause)

	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, errors.Is(err, cause))
}
