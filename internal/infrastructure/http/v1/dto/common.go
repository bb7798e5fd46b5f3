// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"stockbook/internal/core/entity"
)

// --- List Response ---

// ListResponse wraps list results.
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
}

// NewListResponse wraps items, never rendering a null list.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, TotalCount: len(items)}
}

// --- Document DTOs ---

// DocumentResponse contains ledger header fields.
type DocumentResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Date      string    `json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DocumentLineResponse is one line of a ledger document.
type DocumentLineResponse struct {
	LineNo      int    `json:"lineNo"`
	ProductCode string `json:"productCode"`
	Quantity    int64  `json:"quantity"`
}

// LedgerDocumentResponse is a header with its lines.
type LedgerDocumentResponse struct {
	DocumentResponse
	Lines         []DocumentLineResponse `json:"lines"`
	TotalQuantity int64                  `json:"totalQuantity"`
}

// FromDocument creates DocumentResponse from entity.Document.
func FromDocument(d entity.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID.String(),
		Number:    d.Number,
		Date:      d.Date.Format(time.DateOnly),
		Note:      d.Note,
		CreatedAt: d.CreatedAt,
	}
}

// FromLedgerDocument maps a header and lines to the response.
func FromLedgerDocument(d entity.Document, lines []entity.DocumentLine) LedgerDocumentResponse {
	resp := LedgerDocumentResponse{
		DocumentResponse: FromDocument(d),
		Lines:            make([]DocumentLineResponse, 0, len(lines)),
		TotalQuantity:    entity.TotalQuantity(lines),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, DocumentLineResponse{
			LineNo:      l.LineNo,
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
		})
	}
	return resp
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
