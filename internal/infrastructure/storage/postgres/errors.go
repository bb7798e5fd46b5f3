package postgres

import (
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"stockbook/internal/core/apperror"
)

// SQLSTATE codes translated into AppErrors.
const (
	sqlStateForeignKeyViolation = "23503"
	sqlStateUniqueViolation     = "23505"
	sqlStateCheckViolation      = "23514"
	sqlStateNumericOutOfRange   = "22003"
)

// keyDetail matches the DETAIL of a unique violation:
// Key (code)=(P001) already exists.
var keyDetail = regexp.MustCompile(`Key \((.+?)\)=\((.*?)\)`)

// TranslateError turns constraint violations into AppErrors.
// Any other error is returned unchanged.
func TranslateError(err error, entity string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case sqlStateUniqueViolation:
		field, value := "key", ""
		if m := keyDetail.FindStringSubmatch(pgErr.Detail); m != nil {
			field, value = m[1], m[2]
		}
		return apperror.NewDuplicate(entity, field, value).WithCause(err)

	case sqlStateForeignKeyViolation:
		return apperror.NewConflict("operation violates a reference between records").
			WithDetail("entity", entity).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)

	case sqlStateCheckViolation:
		return apperror.NewValidation("value rejected by database constraint").
			WithDetail("entity", entity).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)

	case sqlStateNumericOutOfRange:
		return apperror.NewValidation("value out of range").
			WithDetail("entity", entity).
			WithCause(err)
	}
	return err
}

// IsCheckViolation reports whether err violates the named CHECK constraint.
func IsCheckViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == sqlStateCheckViolation &&
		pgErr.ConstraintName == constraint
}
