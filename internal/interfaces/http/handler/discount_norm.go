package handler

import (
	"time"

	catalogapp "github.com/erp/accounting/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DiscountNormHandler handles discount norm API endpoints. Norms are addressed by
// product code, effective date and amount threshold.
type DiscountNormHandler struct {
	BaseHandler
	normService *catalogapp.DiscountNormService
}

// NewDiscountNormHandler creates a new DiscountNormHandler
func NewDiscountNormHandler(normService *catalogapp.DiscountNormService) *DiscountNormHandler {
	return &DiscountNormHandler{
		normService: normService,
	}
}

// normKey parses the :from and :threshold path parameters
func (h *DiscountNormHandler) normKey(c *gin.Context) (time.Time, decimal.Decimal, bool) {
	from, ok := h.pathDate(c, "from")
	if !ok {
		return time.Time{}, decimal.Decimal{}, false
	}
	threshold, ok := h.pathDecimal(c, "threshold")
	if !ok {
		return time.Time{}, decimal.Decimal{}, false
	}
	return from, threshold, true
}

// Create handles POST /discount-norms
func (h *DiscountNormHandler) Create(c *gin.Context) {
	var req catalogapp.CreateDiscountNormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	norm, err := h.normService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "discount norm created", norm)
}

// Get handles GET /discount-norms/:product/:from/:threshold
func (h *DiscountNormHandler) Get(c *gin.Context) {
	from, threshold, ok := h.normKey(c)
	if !ok {
		return
	}

	norm, err := h.normService.Get(c.Request.Context(), c.Param("product"), from, threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "discount norm found", norm)
}

// Update handles PUT /discount-norms/:product/:from/:threshold
func (h *DiscountNormHandler) Update(c *gin.Context) {
	from, threshold, ok := h.normKey(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateDiscountNormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	norm, err := h.normService.Update(c.Request.Context(), c.Param("product"), from, threshold, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "discount norm updated", norm)
}

// Delete handles DELETE /discount-norms/:product/:from/:threshold
func (h *DiscountNormHandler) Delete(c *gin.Context) {
	from, threshold, ok := h.normKey(c)
	if !ok {
		return
	}

	if err := h.normService.Delete(c.Request.Context(), c.Param("product"), from, threshold); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "discount norm deleted", nil)
}

// List handles GET /discount-norms
func (h *DiscountNormHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.normService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "discount norms listed", page)
}

// ByProduct handles GET /discount-norms/:product
func (h *DiscountNormHandler) ByProduct(c *gin.Context) {
	norms, err := h.normService.ByProduct(c.Request.Context(), c.Param("product"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "discount norms found", norms)
}

// Applicable handles GET /discount-norms/:product/applicable?amount=&date=
func (h *DiscountNormHandler) Applicable(c *gin.Context) {
	amount, ok := h.queryRequiredDecimal(c, "amount")
	if !ok {
		return
	}
	date, ok := h.queryDateOrNow(c, "date")
	if !ok {
		return
	}

	norm, err := h.normService.Applicable(c.Request.Context(), c.Param("product"), amount, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "applicable discount norm", norm)
}
