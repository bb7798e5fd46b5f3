package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/stock_out"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// StockOutHandler handles HTTP requests for stock issues.
type StockOutHandler struct {
	*BaseHandler
	service *stock_out.Service
}

// NewStockOutHandler creates a new stock-out handler.
func NewStockOutHandler(base *BaseHandler, service *stock_out.Service) *StockOutHandler {
	return &StockOutHandler{BaseHandler: base, service: service}
}

// Record handles POST /stock-out
func (h *StockOutHandler) Record(c *gin.Context) {
	var req dto.RecordMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.RecordIssue(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromIssue(doc))
}

// Get handles GET /stock-out/:number
func (h *StockOutHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIssue(doc))
}

// ListRecent handles GET /stock-out?limit=N
func (h *StockOutHandler) ListRecent(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", documents.DefaultRecentLimit)

	lines, err := h.service.ListRecentLines(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromLineViews(lines)))
}
