package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// StockLevels returns every product ordered by name, then code.
	StockLevels(ctx context.Context) ([]StockLevel, error)
}
