// Package numerator provides the PostgreSQL sequence behind document numbers.
// It implements core/numerator.Generator on the sys_sequences table.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	corenumerator "stockbook/internal/core/numerator"
	"stockbook/internal/infrastructure/storage/postgres"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// nextHintSQL bumps the counter for a key, creating it on first use, and
// returns the value it had before.
const nextHintSQL = `
	INSERT INTO sys_sequences (key, current_val)
	VALUES ($1, 1)
	ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
	RETURNING current_val - 1`

// Service allocates sequence hints on the caller's transaction, so the
// increment commits or rolls back together with the document.
type Service struct {
	querier func(ctx context.Context) Querier
}

// Ensure compile-time interface compliance.
var _ corenumerator.Generator = (*Service)(nil)

// New creates a numerator that runs on the transaction in context.
func New(txm *postgres.TxManager) *Service {
	return &Service{
		querier: func(ctx context.Context) Querier { return txm.GetQuerier(ctx) },
	}
}

// NewWithQuerier creates a numerator bound to a fixed querier.
func NewWithQuerier(q Querier) *Service {
	return &Service{
		querier: func(context.Context) Querier { return q },
	}
}

// NextHint implements corenumerator.Generator.
func (s *Service) NextHint(ctx context.Context, cfg corenumerator.Config, date time.Time) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("numerator service is not initialized")
	}

	key := cfg.Key(date)

	var hint int64
	if err := s.querier(ctx).QueryRow(ctx, nextHintSQL, key).Scan(&hint); err != nil {
		return 0, fmt.Errorf("next hint for %s: %w", key, err)
	}
	return hint, nil
}
