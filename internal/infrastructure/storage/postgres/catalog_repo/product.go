package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/infrastructure/storage/postgres"
)

const productsTable = "products"

// stockCheckConstraint backs the guarded UPDATE in AdjustStock. The
// transaction is aborted once it fires, so the row cannot be read back.
const stockCheckConstraint = "products_stock_qty_check"

// productOrders maps product.ListFilter orders to ORDER BY terms. Every
// order ends on a unique column so listings are stable. Text columns sort
// by byte value whatever the database collation is.
var productOrders = map[string][]string{
	product.OrderDefault:     {"created_at ASC", "id ASC"},
	product.OrderByName:      {`name COLLATE "C" ASC`, `code COLLATE "C" ASC`},
	product.OrderByNameDesc:  {`name COLLATE "C" DESC`, `code COLLATE "C" DESC`},
	product.OrderByCode:      {`code COLLATE "C" ASC`},
	product.OrderByCodeDesc:  {`code COLLATE "C" DESC`},
	product.OrderByStock:     {"stock_qty ASC", `code COLLATE "C" ASC`},
	product.OrderByStockDesc: {"stock_qty DESC", `code COLLATE "C" DESC`},
}

// ProductRepo implements product.Repository.
type ProductRepo struct {
	baseCatalogRepo
}

// Compile-time check that ProductRepo implements product.Repository.
var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{baseCatalogRepo{
		txm:        txm,
		tableName:  productsTable,
		entityName: "product",
		selectCols: postgres.ExtractDBColumns[product.Product](),
	}}
}

func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	return r.insert(ctx, p)
}

func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	return r.get(ctx, r.byCodeQuery(code, false), code)
}

// GetForUpdate locks the product row with SELECT ... FOR UPDATE.
func (r *ProductRepo) GetForUpdate(ctx context.Context, code string) (*product.Product, error) {
	return r.get(ctx, r.byCodeQuery(code, true), code)
}

func (r *ProductRepo) get(ctx context.Context, q squirrel.SelectBuilder, code string) (*product.Product, error) {
	p := &product.Product{}
	err := r.getOne(ctx, p, q, func() error { return apperror.NewProductNotFound(code) })
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) byCodeQuery(code string, forUpdate bool) squirrel.SelectBuilder {
	q := r.baseSelect().
		Where(squirrel.Eq{"code": code}).
		Limit(1)
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	return q
}

func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	sql, args, err := r.updateQuery(p).ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(fmt.Errorf("update products: %w", err), r.entityName)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewProductNotFound(p.Code)
	}
	return nil
}

func (r *ProductRepo) updateQuery(p *product.Product) squirrel.UpdateBuilder {
	return r.Builder().
		Update(productsTable).
		Set("name", p.Name).
		Set("unit", p.Unit).
		Set("min_qty", p.MinQty).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID})
}

// AdjustStock adds delta in a single guarded UPDATE. When the guard stops
// the update the row is read back to tell a missing product from a short one.
func (r *ProductRepo) AdjustStock(ctx context.Context, productID id.ID, delta int64) (int64, error) {
	sql, args, err := r.adjustStockQuery(productID, delta).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	querier := r.txm.GetQuerier(ctx)

	var stock int64
	err = querier.QueryRow(ctx, sql, args...).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if postgres.IsCheckViolation(err, stockCheckConstraint) {
		return 0, apperror.NewInsufficientStock("", -delta, 0).WithCause(err)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, postgres.TranslateError(fmt.Errorf("adjust stock: %w", err), r.entityName)
	}

	var current struct {
		Code     string `db:"code"`
		StockQty int64  `db:"stock_qty"`
	}
	checkSQL, checkArgs, err := r.Builder().
		Select("code", "stock_qty").
		From(productsTable).
		Where(squirrel.Eq{"id": productID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, querier, &current, checkSQL, checkArgs...); err != nil {
		if pgxscan.NotFound(err) {
			return 0, apperror.NewNotFound("product", productID.String())
		}
		return 0, fmt.Errorf("read stock: %w", err)
	}
	return 0, apperror.NewInsufficientStock(current.Code, -delta, current.StockQty)
}

func (r *ProductRepo) adjustStockQuery(productID id.ID, delta int64) squirrel.UpdateBuilder {
	return r.Builder().
		Update(productsTable).
		Set("stock_qty", squirrel.Expr("stock_qty + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": productID}).
		Where(squirrel.Expr("stock_qty + ? >= 0", delta)).
		Suffix("RETURNING stock_qty")
}

func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	q, err := r.listQuery(filter)
	if err != nil {
		return nil, err
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]*product.Product, 0)
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (r *ProductRepo) listQuery(filter product.ListFilter) (squirrel.SelectBuilder, error) {
	order, ok := productOrders[filter.OrderBy]
	if !ok {
		return squirrel.SelectBuilder{}, apperror.NewValidation("invalid orderBy").
			WithDetail("orderBy", filter.OrderBy)
	}
	return r.baseSelect().OrderBy(order...), nil
}
