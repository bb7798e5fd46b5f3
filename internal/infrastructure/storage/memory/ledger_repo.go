package memory

import (
	"context"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/stock_in"
	"stockbook/internal/domain/documents/stock_out"
)

// ledgerRepo stores headers and lines of one ledger table.
type ledgerRepo struct {
	store *Store
	table string
}

func (r *ledgerRepo) create(ctx context.Context, doc entity.Document) error {
	return r.store.view(ctx, func(st *state) error {
		t := st.ledgers[r.table]
		if _, ok := t.byNumber[doc.Number]; ok {
			return apperror.NewDuplicate("document", "number", doc.Number)
		}
		t.headers = append(t.headers, doc)
		t.byNumber[doc.Number] = len(t.headers) - 1
		t.byID[doc.ID] = len(t.headers) - 1
		return nil
	})
}

// saveLines replaces the lines of a document.
func (r *ledgerRepo) saveLines(ctx context.Context, docID id.ID, lines []entity.DocumentLine) error {
	return r.store.view(ctx, func(st *state) error {
		t := st.ledgers[r.table]
		if _, ok := t.byID[docID]; !ok {
			return apperror.NewConflict("document does not exist").WithDetail("documentId", docID)
		}
		for _, l := range lines {
			if st.productByID(l.ProductID) == nil {
				return apperror.NewConflict("referenced product does not exist").
					WithDetail("productId", l.ProductID)
			}
		}
		t.lines[docID] = append([]entity.DocumentLine(nil), lines...)
		return nil
	})
}

func (r *ledgerRepo) getByNumber(ctx context.Context, number string) (entity.Document, error) {
	var doc entity.Document
	err := r.store.view(ctx, func(st *state) error {
		t := st.ledgers[r.table]
		i, ok := t.byNumber[number]
		if !ok {
			return apperror.NewNotFound("document", number)
		}
		doc = t.headers[i]
		return nil
	})
	return doc, err
}

func (r *ledgerRepo) getLines(ctx context.Context, docID id.ID) ([]entity.DocumentLine, error) {
	var out []entity.DocumentLine
	err := r.store.view(ctx, func(st *state) error {
		lines := st.ledgers[r.table].lines[docID]
		out = make([]entity.DocumentLine, 0, len(lines))
		for _, l := range lines {
			if p := st.productByID(l.ProductID); p != nil {
				l.ProductCode = p.Code
			}
			out = append(out, l)
		}
		return nil
	})
	return out, err
}

func (r *ledgerRepo) listRecentLines(ctx context.Context, limit int) ([]documents.LineView, error) {
	out := make([]documents.LineView, 0, limit)
	err := r.store.view(ctx, func(st *state) error {
		t := st.ledgers[r.table]
		for i := len(t.headers) - 1; i >= 0 && len(out) < limit; i-- {
			h := t.headers[i]
			for _, l := range t.lines[h.ID] {
				if len(out) == limit {
					break
				}
				v := documents.LineView{
					Number:    h.Number,
					Date:      h.Date,
					Note:      h.Note,
					LineNo:    l.LineNo,
					Quantity:  l.Quantity,
					CreatedAt: h.CreatedAt,
				}
				if p := st.productByID(l.ProductID); p != nil {
					v.ProductCode = p.Code
					v.ProductName = p.Name
					v.Unit = p.Unit
				}
				out = append(out, v)
			}
		}
		return nil
	})
	return out, err
}

// AdditionRepo implements stock_in.Repository.
type AdditionRepo struct {
	ledgerRepo
}

// NewAdditionRepo creates a stock-in repository over store.
func NewAdditionRepo(store *Store) *AdditionRepo {
	return &AdditionRepo{ledgerRepo{store: store, table: tableStockIn}}
}

func (r *AdditionRepo) Create(ctx context.Context, doc *stock_in.Addition) error {
	return r.create(ctx, doc.Document)
}

func (r *AdditionRepo) SaveLines(ctx context.Context, docID id.ID, lines []stock_in.AdditionLine) error {
	return r.saveLines(ctx, docID, lines)
}

func (r *AdditionRepo) GetByNumber(ctx context.Context, number string) (*stock_in.Addition, error) {
	doc, err := r.getByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return &stock_in.Addition{Document: doc}, nil
}

func (r *AdditionRepo) GetLines(ctx context.Context, docID id.ID) ([]stock_in.AdditionLine, error) {
	return r.getLines(ctx, docID)
}

func (r *AdditionRepo) ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error) {
	return r.listRecentLines(ctx, limit)
}

// IssueRepo implements stock_out.Repository.
type IssueRepo struct {
	ledgerRepo
}

// NewIssueRepo creates a stock-out repository over store.
func NewIssueRepo(store *Store) *IssueRepo {
	return &IssueRepo{ledgerRepo{store: store, table: tableStockOut}}
}

func (r *IssueRepo) Create(ctx context.Context, doc *stock_out.Issue) error {
	return r.create(ctx, doc.Document)
}

func (r *IssueRepo) SaveLines(ctx context.Context, docID id.ID, lines []stock_out.IssueLine) error {
	return r.saveLines(ctx, docID, lines)
}

func (r *IssueRepo) GetByNumber(ctx context.Context, number string) (*stock_out.Issue, error) {
	doc, err := r.getByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return &stock_out.Issue{Document: doc}, nil
}

func (r *IssueRepo) GetLines(ctx context.Context, docID id.ID) ([]stock_out.IssueLine, error) {
	return r.getLines(ctx, docID)
}

func (r *IssueRepo) ListRecentLines(ctx context.Context, limit int) ([]documents.LineView, error) {
	return r.listRecentLines(ctx, limit)
}
