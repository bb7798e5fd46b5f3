package memory

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	store *Store
}

// NewProductRepo creates a product repository over store.
func NewProductRepo(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return r.store.view(ctx, func(st *state) error {
		if _, ok := st.products[p.Code]; ok {
			return apperror.NewDuplicate("product", "code", p.Code)
		}
		cp := *p
		st.products[p.Code] = &cp
		st.codeByID[p.ID] = p.Code
		st.order = append(st.order, p.Code)
		return nil
	})
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	var out *product.Product
	err := r.store.view(ctx, func(st *state) error {
		p, ok := st.products[code]
		if !ok {
			return apperror.NewProductNotFound(code)
		}
		cp := *p
		out = &cp
		return nil
	})
	return out, err
}

// GetForUpdate is GetByCode; the store mutex already excludes other writers.
func (r *ProductRepo) GetForUpdate(ctx context.Context, code string) (*product.Product, error) {
	return r.GetByCode(ctx, code)
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	return r.store.view(ctx, func(st *state) error {
		stored, ok := st.products[p.Code]
		if !ok {
			return apperror.NewProductNotFound(p.Code)
		}
		stored.Name = p.Name
		stored.Unit = p.Unit
		stored.MinQty = p.MinQty
		stored.UpdatedAt = p.UpdatedAt
		return nil
	})
}

func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error) {
	var result int64
	err := r.store.view(ctx, func(st *state) error {
		p := st.productByID(productID)
		if p == nil {
			return apperror.NewNotFound("product", productID.String())
		}
		if delta > 0 && p.StockQty > math.MaxInt64-delta {
			return apperror.NewStockOverflow(p.Code, delta, p.StockQty)
		}
		if p.StockQty+delta < 0 {
			return apperror.NewInsufficientStock(p.Code, -delta, p.StockQty)
		}
		p.StockQty += delta
		p.UpdatedAt = time.Now().UTC()
		result = p.StockQty
		return nil
	})
	return result, err
}

func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	var out []*product.Product
	err := r.store.view(ctx, func(st *state) error {
		out = make([]*product.Product, 0, len(st.order))
		for _, code := range st.order {
			cp := *st.products[code]
			out = append(out, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cmpFn := productOrder(filter.OrderBy); cmpFn != nil {
		slices.SortStableFunc(out, cmpFn)
	}
	return out, nil
}

func productOrder(orderBy string) func(a, b *product.Product) int {
	byName := func(a, b *product.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Code, b.Code))
	}
	byCode := func(a, b *product.Product) int { return cmp.Compare(a.Code, b.Code) }
	byStock := func(a, b *product.Product) int {
		return cmp.Or(cmp.Compare(a.StockQty, b.StockQty), cmp.Compare(a.Code, b.Code))
	}

	switch orderBy {
	case product.OrderByName:
		return byName
	case product.OrderByNameDesc:
		return reverse(byName)
	case product.OrderByCode:
		return byCode
	case product.OrderByCodeDesc:
		return reverse(byCode)
	case product.OrderByStock:
		return byStock
	case product.OrderByStockDesc:
		return reverse(byStock)
	}
	return nil
}

func reverse[T any](f func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return f(b, a) }
}
