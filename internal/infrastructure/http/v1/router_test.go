package v1_test

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/app"
	v1 "stockbook/internal/infrastructure/http/v1"
	"stockbook/internal/infrastructure/http/v1/dto"
	"stockbook/pkg/logger"
)

var numberPattern = regexp.MustCompile(`^(ADD|ISS)-\d{8}-\d{3,}$`)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	backend := app.NewMemoryBackend()
	return v1.NewRouter(v1.RouterConfig{
		Services: app.NewServices(backend),
		Storage:  backend.Pinger,
		Backend:  backend.Name,
		Logger:   logger.NewNop(),
	})
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func registerWidget(t *testing.T, r http.Handler) {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/products", dto.RegisterProductRequest{
		Code: "P001", Name: "Widget", Unit: "pcs", MinQty: 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/health/live", nil).Code)

	w := do(t, r, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backend":"memory"`)
}

func TestTraceHeadersEchoed(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestProducts_RegisterGetUpdate(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)

	w := do(t, r, http.MethodGet, "/api/v1/products/P001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[dto.ProductResponse](t, w)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, int64(0), p.StockQty)
	assert.True(t, p.BelowMinimum)

	w = do(t, r, http.MethodPut, "/api/v1/products/P001", dto.UpdateProductRequest{
		Name: "Widget XL", Unit: "box", MinQty: 0,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p = decode[dto.ProductResponse](t, w)
	assert.Equal(t, "Widget XL", p.Name)
	assert.False(t, p.BelowMinimum)
}

func TestProducts_DuplicateCode(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/products", dto.RegisterProductRequest{
		Code: "P001", Name: "Other", Unit: "pcs",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_ENTRY", decode[dto.ErrorResponse](t, w).Code)
}

func TestProducts_MissingFieldIsValidationError(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/products", map[string]any{"code": "P002"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode[dto.ErrorResponse](t, w).Code)
}

func TestProducts_ListOrdering(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/products", dto.RegisterProductRequest{
		Code: "P002", Name: "Anchor", Unit: "pcs",
	}).Code)

	w := do(t, r, http.MethodGet, "/api/v1/products?orderBy=name", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListResponse[dto.ProductResponse]](t, w)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Anchor", list.Items[0].Name)
	assert.Equal(t, "Widget", list.Items[1].Name)

	w = do(t, r, http.MethodGet, "/api/v1/products?orderBy=price", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProducts_UnknownCode(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/products/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, w).Code)
}

func TestLedger_AddThenIssue(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
		ProductCode: "P001", Quantity: 100, Note: "delivery",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	addition := decode[dto.LedgerDocumentResponse](t, w)
	assert.Regexp(t, numberPattern, addition.Number)
	assert.Equal(t, int64(100), addition.TotalQuantity)

	w = do(t, r, http.MethodPost, "/api/v1/stock-out", dto.RecordMovementRequest{
		ProductCode: "P001", Quantity: 30,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	issue := decode[dto.LedgerDocumentResponse](t, w)
	assert.Regexp(t, numberPattern, issue.Number)
	require.Len(t, issue.Lines, 1)
	assert.Equal(t, "P001", issue.Lines[0].ProductCode)

	w = do(t, r, http.MethodGet, "/api/v1/stock-out/"+issue.Number, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, issue.Number, decode[dto.LedgerDocumentResponse](t, w).Number)

	p := decode[dto.ProductResponse](t, do(t, r, http.MethodGet, "/api/v1/products/P001", nil))
	assert.Equal(t, int64(70), p.StockQty)
}

func TestLedger_InsufficientStock(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
		ProductCode: "P001", Quantity: 5,
	}).Code)

	w := do(t, r, http.MethodPost, "/api/v1/stock-out", dto.RecordMovementRequest{
		ProductCode: "P001", Quantity: 9999,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errResp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)
	assert.EqualValues(t, 5, errResp.Details["available"])

	list := decode[dto.ListResponse[dto.LedgerLineResponse]](t, do(t, r, http.MethodGet, "/api/v1/stock-out", nil))
	assert.Empty(t, list.Items)
}

func TestLedger_InvalidQuantity(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)

	for _, q := range []int64{0, -5} {
		w := do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
			ProductCode: "P001", Quantity: q,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, w).Code)
	}
}

func TestLedger_AdditionOverflow(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
		ProductCode: "P001", Quantity: 100,
	}).Code)

	w := do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
		ProductCode: "P001", Quantity: math.MaxInt64,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
	assert.Equal(t, "quantity", errResp.Details["field"])

	p := decode[dto.ProductResponse](t, do(t, r, http.MethodGet, "/api/v1/products/P001", nil))
	assert.Equal(t, int64(100), p.StockQty)
}

func TestLedger_RecentLinesNewestFirst(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)

	var numbers []string
	for range 3 {
		w := do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
			ProductCode: "P001", Quantity: 1,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		numbers = append(numbers, decode[dto.LedgerDocumentResponse](t, w).Number)
	}

	w := do(t, r, http.MethodGet, "/api/v1/stock-in?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[dto.ListResponse[dto.LedgerLineResponse]](t, w)
	require.Len(t, list.Items, 2)
	assert.Equal(t, numbers[2], list.Items[0].Number)
	assert.Equal(t, numbers[1], list.Items[1].Number)
	assert.Equal(t, "Widget", list.Items[0].ProductName)
}

func TestReports_StockLevels(t *testing.T) {
	r := newTestRouter(t)
	registerWidget(t, r)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/products", dto.RegisterProductRequest{
		Code: "P002", Name: "Anchor", Unit: "kg",
	}).Code)
	require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/api/v1/stock-in", dto.RecordMovementRequest{
		ProductCode: "P002", Quantity: 12,
	}).Code)

	w := do(t, r, http.MethodGet, "/api/v1/reports/stock-levels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[dto.StockLevelsResponse](t, w)

	require.Len(t, report.Items, 2)
	assert.Equal(t, "Anchor", report.Items[0].Name)
	assert.Equal(t, "Widget", report.Items[1].Name)
	assert.True(t, report.Items[1].BelowMinimum)
	assert.Equal(t, 1, report.BelowMinimum)
	assert.Equal(t, int64(12), report.TotalQuantity)
}
