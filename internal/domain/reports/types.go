// Package reports provides read-only views over the registry.
package reports

// StockLevel is one row of the current stock report.
type StockLevel struct {
	Code     string `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	Unit     string `db:"unit" json:"unit"`
	MinQty   int64  `db:"min_qty" json:"minQty"`
	StockQty int64  `db:"stock_qty" json:"stockQty"`

	// BelowMinimum is derived for display; the minimum is advisory.
	BelowMinimum bool `db:"-" json:"belowMinimum"`
}
