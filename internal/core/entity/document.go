// Package entity holds the shapes shared by ledger documents.
package entity

import (
	"time"

	"stockbook/internal/core/id"
)

// Document is the header of a ledger transaction (stock-in or stock-out).
type Document struct {
	ID id.ID `db:"id" json:"id"`

	// Number is the human-readable document number, unique per document kind
	Number string `db:"number" json:"number"`

	// Date is the business date; defaults to the creation date
	Date time.Time `db:"date" json:"date"`

	Note      string    `db:"note" json:"note"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewDocument creates a header dated on the day of now.
func NewDocument(number string, now time.Time, note string) Document {
	now = now.UTC()
	return Document{
		ID:        id.New(),
		Number:    number,
		Date:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Note:      note,
		CreatedAt: now,
	}
}

// DocumentLine is one product movement within a document.
type DocumentLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// ProductCode is resolved from the product on read
	ProductCode string `db:"product_code" json:"productCode"`

	Quantity int64 `db:"quantity" json:"quantity"`
}

// NewLine builds the next line after existing.
func NewLine(existing []DocumentLine, productID id.ID, productCode string, quantity int64) DocumentLine {
	return DocumentLine{
		LineID:      id.New(),
		LineNo:      len(existing) + 1,
		ProductID:   productID,
		ProductCode: productCode,
		Quantity:    quantity,
	}
}

// TotalQuantity sums the quantities of lines.
func TotalQuantity(lines []DocumentLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Quantity
	}
	return total
}
