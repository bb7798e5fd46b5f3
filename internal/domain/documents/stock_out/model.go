// Package stock_out provides the stock-out ledger.
// An issue document lowers the stock of the product on its line and is only
// written when the product holds enough stock.
package stock_out

import (
	"time"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents"
)

// NumberPrefix starts every issue number, e.g. ISS-20261016-001.
const NumberPrefix = "ISS"

// RecordInput is the request to record an issue.
type RecordInput = documents.RecordInput

// IssueLine is one product issued by an issue document.
type IssueLine = entity.DocumentLine

// Issue is a stock-out document.
type Issue struct {
	entity.Document

	Lines []IssueLine `db:"-" json:"lines"`
}

// NewIssue creates an empty issue numbered and dated at now.
func NewIssue(number string, now time.Time, note string) *Issue {
	return &Issue{
		Document: entity.NewDocument(number, now, note),
		Lines:    make([]IssueLine, 0, 1),
	}
}

// AddLine appends a line for the product.
func (i *Issue) AddLine(productID id.ID, productCode string, quantity int64) {
	i.Lines = append(i.Lines, entity.NewLine(i.Lines, productID, productCode, quantity))
}

// TotalQuantity is the sum over all lines.
func (i *Issue) TotalQuantity() int64 {
	return entity.TotalQuantity(i.Lines)
}
