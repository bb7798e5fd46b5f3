package document_repo

import (
	"stockbook/internal/domain/documents/stock_out"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	stockOutTable      = "doc_stock_out"
	stockOutLinesTable = "doc_stock_out_lines"
)

// StockOutRepo implements stock_out.Repository.
type StockOutRepo struct {
	*BaseDocumentRepo[*stock_out.Issue]
}

// Compile-time check that StockOutRepo implements stock_out.Repository.
var _ stock_out.Repository = (*StockOutRepo)(nil)

// NewStockOutRepo creates a new stock-out repository.
func NewStockOutRepo(txm *postgres.TxManager) *StockOutRepo {
	return &StockOutRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*stock_out.Issue](
			txm,
			stockOutTable,
			stockOutLinesTable,
			postgres.ExtractDBColumns[stock_out.Issue](),
			func() *stock_out.Issue { return &stock_out.Issue{} },
		),
	}
}
