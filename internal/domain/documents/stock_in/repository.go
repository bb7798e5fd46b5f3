package stock_in

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents"
)

// Repository defines operations for addition documents.
type Repository interface {
	Create(ctx context.Context, doc *Addition) error
	SaveLines(ctx context.Context, docID id.ID, lines []AdditionLine) error

	// GetByNumber returns the header without lines, NOT_FOUND if absent.
	GetByNumber(ctx context.Context, number string) (*Addition, error)
	GetLines(ctx context.Context, docID id.ID) ([]AdditionLine, error)

	// ListRecentLines returns the newest lines first.
	ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error)
}
