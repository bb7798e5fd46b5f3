// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// Compile-time check that ReportRepo implements reports.Repository.
var _ reports.Repository = (*ReportRepo)(nil)

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// StockLevels reads every product ordered by name, then code, both by
// byte value.
func (r *ReportRepo) StockLevels(ctx context.Context) ([]reports.StockLevel, error) {
	sql, args, err := r.stockLevelsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	// One read-only snapshot, so no row reflects half of a concurrent ledger write.
	levels := make([]reports.StockLevel, 0)
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &levels, sql, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("query stock levels: %w", err)
	}
	return levels, nil
}

func (r *ReportRepo) stockLevelsQuery() squirrel.SelectBuilder {
	return r.builder.
		Select("code", "name", "unit", "min_qty", "stock_qty").
		From("products").
		OrderBy(`name COLLATE "C" ASC`, `code COLLATE "C" ASC`)
}
