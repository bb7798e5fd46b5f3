// Package catalog_repo provides PostgreSQL implementations for catalog repositories.
package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/infrastructure/storage/postgres"
)

// baseCatalogRepo holds what every catalog table repository needs.
// Statements run on the transaction in context, or the pool outside one.
type baseCatalogRepo struct {
	txm        *postgres.TxManager
	tableName  string
	entityName string
	selectCols []string
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *baseCatalogRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// baseSelect creates a SELECT builder.
func (r *baseCatalogRepo) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// insert writes entity's tagged fields that are table columns.
func (r *baseCatalogRepo) insert(ctx context.Context, entity any) error {
	data := postgres.StructToMap(entity)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity")
	}

	filtered := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filtered[col] = val
		}
	}

	sql, args, err := r.Builder().Insert(r.tableName).SetMap(filtered).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(fmt.Errorf("insert %s: %w", r.tableName, err), r.entityName)
	}
	return nil
}

// getOne scans a single row into dest. notFound builds the error returned
// when the query matches nothing.
func (r *baseCatalogRepo) getOne(ctx context.Context, dest any, q squirrel.Sqlizer, notFound func() error) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), dest, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return notFound()
		}
		return fmt.Errorf("get %s: %w", r.entityName, err)
	}
	return nil
}
