// Package documents holds what the stock-in and stock-out ledgers share:
// the record input, the line view used by the recent-activity listings and
// the narrow product contract the ledgers lock and adjust through.
package documents

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
)

// Listing limits for recent lines.
const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 500
)

// MaxNoteLength is the longest note a document header accepts.
const MaxNoteLength = 200

// StockKeeper is the part of the product registry a ledger needs.
type StockKeeper interface {
	// GetForUpdate loads the product and holds its row lock until the
	// transaction ends.
	GetForUpdate(ctx context.Context, code string) (*product.Product, error)

	// AdjustStock applies delta and returns the resulting quantity.
	AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error)
}

// RecordInput is a single-line ledger request.
type RecordInput struct {
	ProductCode string
	Quantity    int64
	Note        string
}

// Validate checks the request before any storage access.
// Quantity is checked first so a bad quantity never reaches the store.
func (in *RecordInput) Validate() error {
	if in.Quantity <= 0 {
		return apperror.NewInvalidQuantity(in.Quantity)
	}

	in.ProductCode = strings.TrimSpace(in.ProductCode)
	if in.ProductCode == "" {
		return apperror.NewValidation("product code is required").
			WithDetail("field", "productCode")
	}

	in.Note = strings.TrimSpace(in.Note)
	if utf8.RuneCountInString(in.Note) > MaxNoteLength {
		return apperror.NewValidation("note is too long").
			WithDetail("field", "note").
			WithDetail("max", MaxNoteLength)
	}
	return nil
}

// LineView is one ledger line joined with its header and product.
type LineView struct {
	Number      string    `db:"number" json:"number"`
	Date        time.Time `db:"date" json:"date"`
	Note        string    `db:"note" json:"note"`
	LineNo      int       `db:"line_no" json:"lineNo"`
	ProductCode string    `db:"product_code" json:"productCode"`
	ProductName string    `db:"product_name" json:"productName"`
	Unit        string    `db:"unit" json:"unit"`
	Quantity    int64     `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// NormalizeLimit applies the default and the upper bound.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}
