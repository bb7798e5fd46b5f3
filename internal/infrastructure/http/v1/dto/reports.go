package dto

import (
	"stockbook/internal/domain/reports"
)

// --- Stock Levels Report ---

// StockLevelsResponse represents the current stock report.
type StockLevelsResponse struct {
	Items         []StockLevelItemResponse `json:"items"`
	TotalItems    int                      `json:"totalItems"`
	BelowMinimum  int                      `json:"belowMinimum"`
	TotalQuantity int64                    `json:"totalQuantity"`
}

// StockLevelItemResponse represents a single product in the report.
type StockLevelItemResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	MinQty       int64  `json:"minQty"`
	StockQty     int64  `json:"stockQty"`
	BelowMinimum bool   `json:"belowMinimum"`
}

// FromStockLevels converts the domain report to response DTO.
func FromStockLevels(levels []reports.StockLevel) StockLevelsResponse {
	resp := StockLevelsResponse{
		Items:      make([]StockLevelItemResponse, 0, len(levels)),
		TotalItems: len(levels),
	}
	for _, l := range levels {
		resp.Items = append(resp.Items, StockLevelItemResponse{
			Code:         l.Code,
			Name:         l.Name,
			Unit:         l.Unit,
			MinQty:       l.MinQty,
			StockQty:     l.StockQty,
			BelowMinimum: l.BelowMinimum,
		})
		resp.TotalQuantity += l.StockQty
		if l.BelowMinimum {
			resp.BelowMinimum++
		}
	}
	return resp
}
