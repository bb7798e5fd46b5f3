// Package document_repo provides PostgreSQL implementations for the ledger
// document repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents"
	"stockbook/internal/infrastructure/storage/postgres"
)

var lineCols = []string{"line_id", "document_id", "line_no", "product_id", "quantity"}

// BaseDocumentRepo stores a header table and its lines table.
// T is a pointer to a struct embedding entity.Document.
type BaseDocumentRepo[T any] struct {
	txm        *postgres.TxManager
	tableName  string
	linesTable string
	selectCols []string
	newFn      func() T
}

// NewBaseDocumentRepo creates a new base document repository.
func NewBaseDocumentRepo[T any](
	txm *postgres.TxManager,
	tableName string,
	linesTable string,
	selectCols []string,
	newFn func() T,
) *BaseDocumentRepo[T] {
	return &BaseDocumentRepo[T]{
		txm:        txm,
		tableName:  tableName,
		linesTable: linesTable,
		selectCols: selectCols,
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseDocumentRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts the header using its "db" tags.
func (r *BaseDocumentRepo[T]) Create(ctx context.Context, doc T) error {
	sql, args, err := r.insertQuery(doc).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(fmt.Errorf("insert %s: %w", r.tableName, err), "document")
	}
	return nil
}

func (r *BaseDocumentRepo[T]) insertQuery(doc T) squirrel.InsertBuilder {
	return r.Builder().
		Insert(r.tableName).
		Columns(r.selectCols...).
		Values(postgres.ColumnValues(doc, r.selectCols)...)
}

// GetByNumber retrieves the header by its document number.
func (r *BaseDocumentRepo[T]) GetByNumber(ctx context.Context, number string) (T, error) {
	doc := r.newFn()

	sql, args, err := r.byNumberQuery(number).ToSql()
	if err != nil {
		return doc, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return doc, apperror.NewNotFound("document", number)
		}
		return doc, fmt.Errorf("get by number: %w", err)
	}
	return doc, nil
}

func (r *BaseDocumentRepo[T]) byNumberQuery(number string) squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"number": number}).
		Limit(1)
}

// SaveLines replaces the lines of a document.
func (r *BaseDocumentRepo[T]) SaveLines(ctx context.Context, docID id.ID, lines []entity.DocumentLine) error {
	querier := r.txm.GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + r.linesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	sql, args, err := r.insertLinesQuery(docID, lines).ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(fmt.Errorf("insert lines: %w", err), "document line")
	}
	return nil
}

func (r *BaseDocumentRepo[T]) insertLinesQuery(docID id.ID, lines []entity.DocumentLine) squirrel.InsertBuilder {
	q := r.Builder().
		Insert(r.linesTable).
		Columns(lineCols...)

	for _, line := range lines {
		q = q.Values(line.LineID, docID, line.LineNo, line.ProductID, line.Quantity)
	}
	return q
}

// GetLines returns the lines of a document with product codes resolved.
func (r *BaseDocumentRepo[T]) GetLines(ctx context.Context, docID id.ID) ([]entity.DocumentLine, error) {
	sql, args, err := r.linesQuery(docID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	lines := make([]entity.DocumentLine, 0, 1)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

func (r *BaseDocumentRepo[T]) linesQuery(docID id.ID) squirrel.SelectBuilder {
	return r.Builder().
		Select("l.line_id", "l.line_no", "l.product_id", "p.code AS product_code", "l.quantity").
		From(r.linesTable + " l").
		Join("products p ON p.id = l.product_id").
		Where(squirrel.Eq{"l.document_id": docID}).
		OrderBy("l.line_no")
}

// ListRecentLines returns lines of the newest documents first.
func (r *BaseDocumentRepo[T]) ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error) {
	sql, args, err := r.recentLinesQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	views := make([]documents.LineView, 0, limit)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &views, sql, args...); err != nil {
		return nil, fmt.Errorf("list recent lines: %w", err)
	}
	return views, nil
}

func (r *BaseDocumentRepo[T]) recentLinesQuery(limit int) squirrel.SelectBuilder {
	return r.Builder().
		Select(
			"d.number", "d.date", "d.note", "l.line_no",
			"p.code AS product_code", "p.name AS product_name", "p.unit",
			"l.quantity", "d.created_at",
		).
		From(r.tableName + " d").
		Join(r.linesTable + " l ON l.document_id = d.id").
		Join("products p ON p.id = l.product_id").
		OrderBy("d.created_at DESC", "d.number DESC", "l.line_no").
		Limit(uint64(limit))
}
