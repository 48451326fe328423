package handler

import (
	partnerapp "github.com/erp/accounting/internal/application/partner"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "customer created", customer)
}

// GetByCode handles GET /customers/:code
func (h *CustomerHandler) GetByCode(c *gin.Context) {
	customer, err := h.customerService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "customer found", customer)
}

// Exists handles GET /customers/:code/exists
func (h *CustomerHandler) Exists(c *gin.Context) {
	exists, err := h.customerService.Exists(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.ExistsData{Exists: exists})
}

// List handles GET /customers
func (h *CustomerHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.customerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "customers listed", page)
}

// Search handles GET /customers/search?keyword=
func (h *CustomerHandler) Search(c *gin.Context) {
	keyword, filter, ok := h.bindSearch(c)
	if !ok {
		return
	}

	page, err := h.customerService.Search(c.Request.Context(), keyword, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "customers found", page)
}

// Update handles PUT /customers/:code
func (h *CustomerHandler) Update(c *gin.Context) {
	var req partnerapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "customer updated", customer)
}

// Delete handles DELETE /customers/:code
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customerService.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "customer deleted", nil)
}

// CheckTaxID handles GET /customers/check-tax-id?taxId=&exclude=
func (h *CustomerHandler) CheckTaxID(c *gin.Context) {
	taxID, ok := h.queryRequired(c, "taxId")
	if !ok {
		return
	}

	exists, err := h.customerService.TaxIDExists(c.Request.Context(), taxID, c.Query("exclude"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.ExistsData{Exists: exists})
}

// NextCode handles GET /customers/next-code
func (h *CustomerHandler) NextCode(c *gin.Context) {
	code, err := h.customerService.NextCode(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.CodeData{Code: code})
}
