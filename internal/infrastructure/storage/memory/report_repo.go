package memory

import (
	"cmp"
	"context"
	"slices"

	"stockbook/internal/domain/reports"
)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	store *Store
}

// NewReportRepo creates a report repository over store.
func NewReportRepo(store *Store) *ReportRepo {
	return &ReportRepo{store: store}
}

func (r *ReportRepo) StockLevels(ctx context.Context) ([]reports.StockLevel, error) {
	var out []reports.StockLevel
	err := r.store.view(ctx, func(st *state) error {
		out = make([]reports.StockLevel, 0, len(st.products))
		for _, p := range st.products {
			out = append(out, reports.StockLevel{
				Code:     p.Code,
				Name:     p.Name,
				Unit:     p.Unit,
				MinQty:   p.MinQty,
				StockQty: p.StockQty,
			})
		}
		return nil
	})

	slices.SortFunc(out, func(a, b reports.StockLevel) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Code, b.Code))
	})
	return out, err
}
