package document_repo

import (
	"stockbook/internal/domain/documents/stock_in"
	"stockbook/internal/infrastructure/storage/postgres"
)

const (
	stockInTable      = "doc_stock_in"
	stockInLinesTable = "doc_stock_in_lines"
)

// StockInRepo implements stock_in.Repository.
type StockInRepo struct {
	*BaseDocumentRepo[*stock_in.Addition]
}

// Compile-time check that StockInRepo implements stock_in.Repository.
var _ stock_in.Repository = (*StockInRepo)(nil)

// NewStockInRepo creates a new stock-in repository.
func NewStockInRepo(txm *postgres.TxManager) *StockInRepo {
	return &StockInRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*stock_in.Addition](
			txm,
			stockInTable,
			stockInLinesTable,
			postgres.ExtractDBColumns[stock_in.Addition](),
			func() *stock_in.Addition { return &stock_in.Addition{} },
		),
	}
}
