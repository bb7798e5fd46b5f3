package product

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	// Create inserts a new product. A taken code yields apperror DUPLICATE_ENTRY.
	Create(ctx context.Context, p *Product) error

	// GetByCode returns NOT_FOUND if no product has the code.
	GetByCode(ctx context.Context, code string) (*Product, error)

	// GetForUpdate retrieves the product and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, code string) (*Product, error)

	// Update saves name, unit and minimum quantity. Stock is not written.
	Update(ctx context.Context, p *Product) error

	// AdjustStock adds delta to the stock quantity and returns the new value.
	// A result below zero is rejected with INSUFFICIENT_STOCK.
	AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error)

	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}

// Sort orders accepted by ListFilter. A leading "-" means descending.
const (
	OrderDefault     = ""
	OrderByName      = "name"
	OrderByNameDesc  = "-name"
	OrderByCode      = "code"
	OrderByCodeDesc  = "-code"
	OrderByStock     = "stock_qty"
	OrderByStockDesc = "-stock_qty"
)

var allowedOrders = map[string]bool{
	OrderDefault:     true,
	OrderByName:      true,
	OrderByNameDesc:  true,
	OrderByCode:      true,
	OrderByCodeDesc:  true,
	OrderByStock:     true,
	OrderByStockDesc: true,
}

// ListFilter selects the listing order.
// The default order is registration order.
type ListFilter struct {
	OrderBy string
}

// Validate rejects unknown sort orders.
func (f ListFilter) Validate() error {
	if !allowedOrders[f.OrderBy] {
		return apperror.NewValidation("unsupported order").
			WithDetail("field", "orderBy").
			WithDetail("value", f.OrderBy)
	}
	return nil
}
