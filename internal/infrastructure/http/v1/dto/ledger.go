package dto

import (
	"time"

	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/stock_in"
	"stockbook/internal/domain/documents/stock_out"
)

// --- Request DTOs ---

// RecordMovementRequest is the body of both stock-in and stock-out.
// Quantity is checked by the ledger so a zero or negative value reports
// INVALID_QUANTITY instead of a binding error.
type RecordMovementRequest struct {
	ProductCode string `json:"productCode"`
	Quantity    int64  `json:"quantity"`
	Note        string `json:"note,omitempty"`
}

func (r RecordMovementRequest) ToInput() documents.RecordInput {
	return documents.RecordInput{
		ProductCode: r.ProductCode,
		Quantity:    r.Quantity,
		Note:        r.Note,
	}
}

// --- Response DTOs ---

func FromAddition(a *stock_in.Addition) LedgerDocumentResponse {
	return FromLedgerDocument(a.Document, a.Lines)
}

func FromIssue(i *stock_out.Issue) LedgerDocumentResponse {
	return FromLedgerDocument(i.Document, i.Lines)
}

// LedgerLineResponse is one row of a recent-activity listing.
type LedgerLineResponse struct {
	Number      string    `json:"number"`
	Date        string    `json:"date"`
	Note        string    `json:"note,omitempty"`
	LineNo      int       `json:"lineNo"`
	ProductCode string    `json:"productCode"`
	ProductName string    `json:"productName"`
	Unit        string    `json:"unit"`
	Quantity    int64     `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromLineViews(views []documents.LineView) []LedgerLineResponse {
	out := make([]LedgerLineResponse, 0, len(views))
	for _, v := range views {
		out = append(out, LedgerLineResponse{
			Number:      v.Number,
			Date:        v.Date.Format(time.DateOnly),
			Note:        v.Note,
			LineNo:      v.LineNo,
			ProductCode: v.ProductCode,
			ProductName: v.ProductName,
			Unit:        v.Unit,
			Quantity:    v.Quantity,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out
}
