// Package stock_in provides the stock-in ledger.
// Every addition document raises the stock of the product on its line.
package stock_in

import (
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents"
)

// NumberPrefix starts every addition number, e.g. ADD-20261016-001.
const NumberPrefix = "ADD"

// RecordInput is the request to record an addition.
type RecordInput = documents.RecordInput

// AdditionLine is one product received by an addition.
type AdditionLine = entity.DocumentLine

// Addition is a stock-in document.
type Addition struct {
	entity.Document

	Lines []AdditionLine `db:"-" json:"lines"`
}

// NewAddition creates an empty addition numbered and dated at now.
func NewAddition(number string, now time.Time, note string) *Addition {
	return &Addition{
		Document: entity.NewDocument(number, now, note),
		Lines:    make([]AdditionLine, 0, 1),
	}
}

// AddLine appends a line for the product.
func (a *Addition) AddLine(productID id.ID, productCode string, quantity int64) {
	a.Lines = append(a.Lines, entity.NewLine(a.Lines, productID, productCode, quantity))
}

// TotalQuantity is the sum over all lines.
func (a *Addition) TotalQuantity() int64 {
	return entity.TotalQuantity(a.Lines)
}
