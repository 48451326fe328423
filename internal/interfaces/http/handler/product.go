package handler

import (
	catalogapp "github.com/erp/accounting/internal/application/catalog"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "product created", product)
}

// GetByCode handles GET /products/:code
func (h *ProductHandler) GetByCode(c *gin.Context) {
	product, err := h.productService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "product found", product)
}

// Exists handles GET /products/:code/exists
func (h *ProductHandler) Exists(c *gin.Context) {
	exists, err := h.productService.Exists(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.ExistsData{Exists: exists})
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "products listed", page)
}

// Search handles GET /products/search?keyword=
func (h *ProductHandler) Search(c *gin.Context) {
	keyword, filter, ok := h.bindSearch(c)
	if !ok {
		return
	}

	page, err := h.productService.Search(c.Request.Context(), keyword, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "products found", page)
}

// ListByUnit handles GET /products/unit/:unit
func (h *ProductHandler) ListByUnit(c *gin.Context) {
	products, err := h.productService.ListByUnit(c.Request.Context(), c.Param("unit"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "products found", products)
}

// Update handles PUT /products/:code
func (h *ProductHandler) Update(c *gin.Context) {
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "product updated", product)
}

// Delete handles DELETE /products/:code
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.productService.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "product deleted", nil)
}

// CheckName handles GET /products/check-name?name=&exclude=
func (h *ProductHandler) CheckName(c *gin.Context) {
	name, ok := h.queryRequired(c, "name")
	if !ok {
		return
	}

	exists, err := h.productService.NameExists(c.Request.Context(), name, c.Query("exclude"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.ExistsData{Exists: exists})
}

// NextCode handles GET /products/next-code
func (h *ProductHandler) NextCode(c *gin.Context) {
	code, err := h.productService.NextCode(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.CodeData{Code: code})
}
