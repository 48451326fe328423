package handler

import (
	catalogapp "github.com/erp/accounting/internal/application/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// PriceListHandler handles price-list API endpoints. Entries are addressed by
// product code and effective date.
type PriceListHandler struct {
	BaseHandler
	priceListService *catalogapp.PriceListService
}

// NewPriceListHandler creates a new PriceListHandler
func NewPriceListHandler(priceListService *catalogapp.PriceListService) *PriceListHandler {
	return &PriceListHandler{
		priceListService: priceListService,
	}
}

// Create handles POST /price-lists
func (h *PriceListHandler) Create(c *gin.Context) {
	var req catalogapp.CreatePriceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.priceListService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "price entry created", entry)
}

// Get handles GET /price-lists/:product/:from
func (h *PriceListHandler) Get(c *gin.Context) {
	from, ok := h.pathDate(c, "from")
	if !ok {
		return
	}

	entry, err := h.priceListService.Get(c.Request.Context(), c.Param("product"), from)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price entry found", entry)
}

// Update handles PUT /price-lists/:product/:from
func (h *PriceListHandler) Update(c *gin.Context) {
	from, ok := h.pathDate(c, "from")
	if !ok {
		return
	}

	var req catalogapp.UpdatePriceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.priceListService.Update(c.Request.Context(), c.Param("product"), from, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price entry updated", entry)
}

// Delete handles DELETE /price-lists/:product/:from
func (h *PriceListHandler) Delete(c *gin.Context) {
	from, ok := h.pathDate(c, "from")
	if !ok {
		return
	}

	if err := h.priceListService.Delete(c.Request.Context(), c.Param("product"), from); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price entry deleted", nil)
}

// List handles GET /price-lists
func (h *PriceListHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.priceListService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price entries listed", page)
}

// History handles GET /price-lists/:product/history
func (h *PriceListHandler) History(c *gin.Context) {
	entries, err := h.priceListService.History(c.Request.Context(), c.Param("product"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price history", entries)
}

// ValidAt handles GET /price-lists/valid-at?date=
func (h *PriceListHandler) ValidAt(c *gin.Context) {
	asOf, ok := h.queryDateOrNow(c, "date")
	if !ok {
		return
	}

	entries, err := h.priceListService.ValidAt(c.Request.Context(), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "valid price entries", entries)
}

// Latest handles GET /price-lists/:product/latest?date=
func (h *PriceListHandler) Latest(c *gin.Context) {
	asOf, ok := h.queryDateOrNow(c, "date")
	if !ok {
		return
	}

	entry, err := h.priceListService.Latest(c.Request.Context(), c.Param("product"), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "latest price entry", entry)
}

// InRange handles GET /price-lists/:product/range?from=&to=
func (h *PriceListHandler) InRange(c *gin.Context) {
	from, ok := h.queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := h.queryDate(c, "to")
	if !ok {
		return
	}

	var r shared.DateRange
	if from != nil {
		r.From = *from
	}
	if to != nil {
		r.To = *to
	}

	entries, err := h.priceListService.InRange(c.Request.Context(), c.Param("product"), r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price entries in range", entries)
}

// Resolve handles GET /price-lists/:product/resolve?date=
func (h *PriceListHandler) Resolve(c *gin.Context) {
	asOf, ok := h.queryDateOrNow(c, "date")
	if !ok {
		return
	}

	price, err := h.priceListService.Resolve(c.Request.Context(), c.Param("product"), asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "price resolved", price)
}
