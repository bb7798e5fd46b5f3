package document_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/documents/stock_in"
)

var now = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func TestStockInRepo_InsertQuery(t *testing.T) {
	repo := NewStockInRepo(nil)
	doc := stock_in.NewAddition("ADD-20261016-001", now, "first delivery")

	sql, args, err := repo.insertQuery(doc).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO doc_stock_in (id,number,date,note,created_at) VALUES ($1,$2,$3,$4,$5)", sql)
	require.Len(t, args, 5)
	assert.Equal(t, doc.ID, args[0])
	assert.Equal(t, "ADD-20261016-001", args[1])
	assert.Equal(t, "first delivery", args[3])
}

func TestStockInRepo_InsertLinesQuery(t *testing.T) {
	repo := NewStockInRepo(nil)
	doc := stock_in.NewAddition("ADD-20261016-001", now, "")
	pid := id.New()
	doc.AddLine(pid, "P001", 10)
	doc.AddLine(pid, "P001", 5)

	sql, args, err := repo.insertLinesQuery(doc.ID, doc.Lines).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO doc_stock_in_lines (line_id,document_id,line_no,product_id,quantity) VALUES ($1,$2,$3,$4,$5),($6,$7,$8,$9,$10)",
		sql)
	assert.Equal(t, []any{doc.Lines[0].LineID, doc.ID, 1, pid, int64(10)}, args[:5])
}

func TestStockOutRepo_ByNumberQuery(t *testing.T) {
	sql, args, err := NewStockOutRepo(nil).byNumberQuery("ISS-20261016-004").ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, number, date, note, created_at FROM doc_stock_out WHERE number = $1 LIMIT 1", sql)
	assert.Equal(t, []any{"ISS-20261016-004"}, args)
}

func TestLinesQuery_JoinsProductCode(t *testing.T) {
	docID := id.New()

	sql, args, err := NewStockOutRepo(nil).linesQuery(docID).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT l.line_id, l.line_no, l.product_id, p.code AS product_code, l.quantity "+
			"FROM doc_stock_out_lines l JOIN products p ON p.id = l.product_id "+
			"WHERE l.document_id = $1 ORDER BY l.line_no",
		sql)
	assert.Equal(t, []any{docID}, args)
}

func TestRecentLinesQuery_NewestFirst(t *testing.T) {
	sql, _, err := NewStockInRepo(nil).recentLinesQuery(20).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT d.number, d.date, d.note, l.line_no, p.code AS product_code, p.name AS product_name, p.unit, l.quantity, d.created_at "+
			"FROM doc_stock_in d JOIN doc_stock_in_lines l ON l.document_id = d.id JOIN products p ON p.id = l.product_id "+
			"ORDER BY d.created_at DESC, d.number DESC, l.line_no LIMIT 20",
		sql)
}
