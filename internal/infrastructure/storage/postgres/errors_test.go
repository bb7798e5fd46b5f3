package postgres

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"stockbook/internal/core/apperror"
)

func TestTranslateError_Unique(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "products_code_key",
		Detail:         "Key (code)=(P001) already exists.",
	}

	err := TranslateError(fmt.Errorf("insert products: %w", pgErr), "product")

	assert.True(t, apperror.IsDuplicate(err))
	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, "code", appErr.Details["field"])
	assert.Equal(t, "P001", appErr.Details["value"])
	assert.True(t, errors.Is(err, pgErr))
}

func TestTranslateError_ForeignKey(t *testing.T) {
	err := TranslateError(&pgconn.PgError{Code: "23503", ConstraintName: "doc_stock_in_lines_product_id_fkey"}, "product")

	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
}

func TestTranslateError_Check(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "products_stock_qty_check"}

	assert.True(t, apperror.HasCode(TranslateError(pgErr, "product"), apperror.CodeValidation))
	assert.True(t, IsCheckViolation(fmt.Errorf("wrapped: %w", pgErr), "products_stock_qty_check"))
	assert.False(t, IsCheckViolation(pgErr, "products_min_qty_check"))
}

func TestTranslateError_NumericOutOfRange(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22003", Message: "bigint out of range"}

	err := TranslateError(fmt.Errorf("adjust stock: %w", pgErr), "product")

	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
	assert.True(t, errors.Is(err, pgErr))
}

func TestTranslateError_PassThrough(t *testing.T) {
	plain := errors.New("conn closed")
	assert.Same(t, plain, TranslateError(plain, "product"))

	other := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(other), TranslateError(other, "product"))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40001"})))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("boom")))
}
