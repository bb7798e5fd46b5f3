package stock_out

import (
	"context"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents"
)

// Repository defines operations for issue documents.
type Repository interface {
	Create(ctx context.Context, doc *Issue) error
	SaveLines(ctx context.Context, docID id.ID, lines []IssueLine) error

	// GetByNumber returns the header without lines, NOT_FOUND if absent.
	GetByNumber(ctx context.Context, number string) (*Issue, error)
	GetLines(ctx context.Context, docID id.ID) ([]IssueLine, error)

	// ListRecentLines returns the newest lines first.
	ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error)
}
