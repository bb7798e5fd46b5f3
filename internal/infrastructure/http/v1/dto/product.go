package dto

import (
	"time"

	"stockbook/internal/domain/catalogs/product"
)

// --- Request DTOs ---

type RegisterProductRequest struct {
	Code   string `json:"code" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Unit   string `json:"unit" binding:"required"`
	MinQty int64  `json:"minQty"`
}

func (r RegisterProductRequest) ToInput() product.RegisterInput {
	return product.RegisterInput{
		Code:   r.Code,
		Name:   r.Name,
		Unit:   r.Unit,
		MinQty: r.MinQty,
	}
}

type UpdateProductRequest struct {
	Name   string `json:"name" binding:"required"`
	Unit   string `json:"unit" binding:"required"`
	MinQty int64  `json:"minQty"`
}

func (r UpdateProductRequest) ToInput() product.UpdateInput {
	return product.UpdateInput{
		Name:   r.Name,
		Unit:   r.Unit,
		MinQty: r.MinQty,
	}
}

type ListProductsRequest struct {
	OrderBy string `form:"orderBy"`
}

// --- Response DTOs ---

type ProductResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	MinQty       int64     `json:"minQty"`
	StockQty     int64     `json:"stockQty"`
	BelowMinimum bool      `json:"belowMinimum"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromProduct(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		Unit:         p.Unit,
		MinQty:       p.MinQty,
		StockQty:     p.StockQty,
		BelowMinimum: p.BelowMinimum(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromProducts(items []*product.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromProduct(p))
	}
	return out
}
