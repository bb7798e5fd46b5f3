package catalog_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
)

const productCols = "id, code, name, unit, min_qty, stock_qty, created_at, updated_at"

func TestProductRepo_ByCodeQuery(t *testing.T) {
	repo := NewProductRepo(nil)

	sql, args, err := repo.byCodeQuery("P001", false).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+productCols+" FROM products WHERE code = $1 LIMIT 1", sql)
	assert.Equal(t, []any{"P001"}, args)

	sql, _, err = repo.byCodeQuery("P001", true).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT "+productCols+" FROM products WHERE code = $1 LIMIT 1 FOR UPDATE", sql)
}

func TestProductRepo_AdjustStockQuery(t *testing.T) {
	repo := NewProductRepo(nil)
	pid := id.New()

	sql, args, err := repo.adjustStockQuery(pid, -30).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE products SET stock_qty = stock_qty + $1, updated_at = now() WHERE id = $2 AND stock_qty + $3 >= 0 RETURNING stock_qty",
		sql)
	assert.Equal(t, []any{int64(-30), pid, int64(-30)}, args)
}

func TestProductRepo_UpdateQueryLeavesStockAlone(t *testing.T) {
	repo := NewProductRepo(nil)
	p := product.NewProduct("P001", "Widget", "pcs", 5, time.Now())

	sql, _, err := repo.updateQuery(p).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE products SET name = $1, unit = $2, min_qty = $3, updated_at = $4 WHERE id = $5", sql)
	assert.NotContains(t, sql, "stock_qty")
}

func TestProductRepo_ListQuery(t *testing.T) {
	repo := NewProductRepo(nil)

	tests := []struct {
		orderBy string
		want    string
	}{
		{product.OrderDefault, "created_at ASC, id ASC"},
		{product.OrderByName, `name COLLATE "C" ASC, code COLLATE "C" ASC`},
		{product.OrderByNameDesc, `name COLLATE "C" DESC, code COLLATE "C" DESC`},
		{product.OrderByCode, `code COLLATE "C" ASC`},
		{product.OrderByStockDesc, `stock_qty DESC, code COLLATE "C" DESC`},
	}

	for _, tt := range tests {
		t.Run(tt.orderBy, func(t *testing.T) {
			q, err := repo.listQuery(product.ListFilter{OrderBy: tt.orderBy})
			require.NoError(t, err)

			sql, _, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, "SELECT "+productCols+" FROM products ORDER BY "+tt.want, sql)
		})
	}

	_, err := repo.listQuery(product.ListFilter{OrderBy: "name; DROP TABLE products"})
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}
