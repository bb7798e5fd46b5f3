package handlers

import (
	"github.com/gin-gonic/gin"

	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for the product registry.
type ProductHandler struct {
	*BaseHandler
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// Register handles POST /products
func (h *ProductHandler) Register(c *gin.Context) {
	var req dto.RegisterProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromProduct(p))
}

// Get handles GET /products/:code
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	items, err := h.service.ListAll(c.Request.Context(), product.ListFilter{OrderBy: req.OrderBy})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(dto.FromProducts(items)))
}

// Update handles PUT /products/:code
func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("code"), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}
