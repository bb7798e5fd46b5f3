package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetStockLevels handles GET /reports/stock-levels
func (h *ReportsHandler) GetStockLevels(c *gin.Context) {
	levels, err := h.service.CurrentLevels(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStockLevels(levels))
}
