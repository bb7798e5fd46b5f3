// Package product provides the product registry.
// A product is identified by its code; its stock quantity is a running total
// changed only by the stock-in and stock-out ledgers.
package product

import (
	"strings"
	"time"
	"unicode/utf8"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
)

// Field limits, mirrored by the products table.
const (
	MaxCodeLength = 50
	MaxNameLength = 100
	MaxUnitLength = 20
)

// Product is a catalog entry with its quantity on hand.
type Product struct {
	ID id.ID `db:"id" json:"id"`

	// Code is the unique business key
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`

	// Unit is a display label such as "pcs" or "kg"
	Unit string `db:"unit" json:"unit"`

	// MinQty is an advisory reorder threshold; nothing enforces it
	MinQty int64 `db:"min_qty" json:"minQty"`

	// StockQty is the authoritative quantity on hand, never negative
	StockQty int64 `db:"stock_qty" json:"stockQty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewProduct creates a product with zero stock.
func NewProduct(code, name, unit string, minQty int64, now time.Time) *Product {
	now = now.UTC()
	return &Product{
		ID:        id.New(),
		Code:      strings.TrimSpace(code),
		Name:      strings.TrimSpace(name),
		Unit:      strings.TrimSpace(unit),
		MinQty:    minQty,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the descriptive fields.
func (p *Product) Validate() error {
	if err := requireText("code", p.Code, MaxCodeLength); err != nil {
		return err
	}
	if err := requireText("name", p.Name, MaxNameLength); err != nil {
		return err
	}
	if err := requireText("unit", p.Unit, MaxUnitLength); err != nil {
		return err
	}
	if p.MinQty < 0 {
		return apperror.NewValidation("minimum quantity must not be negative").
			WithDetail("field", "minQty").
			WithDetail("value", p.MinQty)
	}
	if p.StockQty < 0 {
		return apperror.NewValidation("stock quantity must not be negative").
			WithDetail("field", "stockQty")
	}
	return nil
}

// BelowMinimum reports whether stock has fallen under the advisory threshold.
func (p *Product) BelowMinimum() bool {
	return p.StockQty < p.MinQty
}

func requireText(field, value string, max int) error {
	if value == "" {
		return apperror.NewValidation(field + " is required").
			WithDetail("field", field)
	}
	if utf8.RuneCountInString(value) > max {
		return apperror.NewValidation(field + " is too long").
			WithDetail("field", field).
			WithDetail("max", max)
	}
	return nil
}
