package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	billingapp "github.com/erp/accounting/internal/application/billing"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
	statsService   *billingapp.StatsService
	archive        *billingapp.ArchiveService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService, statsService *billingapp.StatsService, archive *billingapp.ArchiveService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		statsService:   statsService,
		archive:        archive,
	}
}

// Create handles POST /invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req billingapp.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "invoice created", invoice)
}

// GetByNumber handles GET /invoices/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	invoice, err := h.invoiceService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoice found", invoice)
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoices listed", page)
}

// Update handles PUT /invoices/:number
func (h *InvoiceHandler) Update(c *gin.Context) {
	var req billingapp.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoice updated", invoice)
}

// Delete handles DELETE /invoices/:number
func (h *InvoiceHandler) Delete(c *gin.Context) {
	number := c.Param("number")
	if err := h.invoiceService.Delete(c.Request.Context(), number); err != nil {
		h.HandleError(c, err)
		return
	}
	h.archive.DiscardInvoice(c.Request.Context(), number)

	h.Success(c, "invoice deleted", nil)
}

// Search handles GET /invoices/search. Only the highest-precedence criterion
// present is applied; payment method and amount range share one tier.
func (h *InvoiceHandler) Search(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	req := billingapp.InvoiceSearchRequest{
		Number:        c.Query("docNo"),
		CustomerCode:  c.Query("customer"),
		PaymentMethod: c.Query("paymentMethod"),
	}
	if req.From, ok = h.queryDate(c, "from"); !ok {
		return
	}
	if req.To, ok = h.queryDate(c, "to"); !ok {
		return
	}
	if req.MinTotal, ok = h.queryDecimal(c, "minTotal"); !ok {
		return
	}
	if req.MaxTotal, ok = h.queryDecimal(c, "maxTotal"); !ok {
		return
	}

	page, err := h.invoiceService.Search(c.Request.Context(), req, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoices found", page)
}

// Stats handles GET /invoices/stats?from=&to=
func (h *InvoiceHandler) Stats(c *gin.Context) {
	from, ok := h.queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := h.queryDate(c, "to")
	if !ok {
		return
	}

	stats, err := h.statsService.Invoices(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoice statistics", stats)
}

// MonthlyRevenue handles GET /invoices/stats/monthly?year=
func (h *InvoiceHandler) MonthlyRevenue(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			h.InvalidParam(c, "year", msgInvalidInteger)
			return
		}
		year = y
	}

	revenue, err := h.statsService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "monthly revenue", revenue)
}

// ByCustomer handles GET /invoices/customer/:code
func (h *InvoiceHandler) ByCustomer(c *gin.Context) {
	invoices, err := h.invoiceService.ByCustomer(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoices found", invoices)
}

// ByProduct handles GET /invoices/product/:code?from=&to=
func (h *InvoiceHandler) ByProduct(c *gin.Context) {
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

	invoices, err := h.invoiceService.ByProduct(c.Request.Context(), c.Param("code"), r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoices found", invoices)
}

// CreditNotes handles GET /invoices/:number/credit-notes
func (h *InvoiceHandler) CreditNotes(c *gin.Context) {
	notes, err := h.invoiceService.CreditNotes(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit notes found", notes)
}

// NextNumber handles GET /invoices/next-number
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.invoiceService.NextNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.CodeData{Code: number})
}

// PDF handles GET /invoices/:number/pdf
func (h *InvoiceHandler) PDF(c *gin.Context) {
	number := c.Param("number")
	content, err := h.invoiceService.PDF(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	writePDF(c, "invoice-"+number+".pdf", content)
}

// PDFLink handles GET /invoices/:number/pdf-link
func (h *InvoiceHandler) PDFLink(c *gin.Context) {
	link, err := h.archive.InvoiceLink(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "invoice archived", link)
}

// writePDF sends content as an inline PDF attachment
func writePDF(c *gin.Context, filename string, content []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", content)
}
