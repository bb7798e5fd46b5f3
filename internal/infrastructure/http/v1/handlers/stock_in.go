package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/stock_in"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// StockInHandler handles HTTP requests for stock additions.
type StockInHandler struct {
	*BaseHandler
	service *stock_in.Service
}

// NewStockInHandler creates a new stock-in handler.
func NewStockInHandler(base *BaseHandler, service *stock_in.Service) *StockInHandler {
	return &StockInHandler{BaseHandler: base, service: service}
}

// Record handles POST /stock-in
func (h *StockInHandler) Record(c *gin.Context) {
	var req dto.RecordMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.RecordAddition(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromAddition(doc))
}

// Get handles GET /stock-in/:number
func (h *StockInHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAddition(doc))
}

// ListRecent handles GET /stock-in?limit=N
func (h *StockInHandler) ListRecent(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", documents.DefaultRecentLimit)

	lines, err := h.service.ListRecentLines(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromLineViews(lines)))
}
