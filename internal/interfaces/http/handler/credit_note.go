package handler

import (
	billingapp "github.com/erp/accounting/internal/application/billing"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CreditNoteHandler handles credit-note API endpoints
type CreditNoteHandler struct {
	BaseHandler
	noteService  *billingapp.CreditNoteService
	statsService *billingapp.StatsService
	archive      *billingapp.ArchiveService
}

// NewCreditNoteHandler creates a new CreditNoteHandler
func NewCreditNoteHandler(noteService *billingapp.CreditNoteService, statsService *billingapp.StatsService, archive *billingapp.ArchiveService) *CreditNoteHandler {
	return &CreditNoteHandler{
		noteService:  noteService,
		statsService: statsService,
		archive:      archive,
	}
}

// Create handles POST /credit-notes
func (h *CreditNoteHandler) Create(c *gin.Context) {
	var req billingapp.CreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "credit note created", note)
}

// GetByNumber handles GET /credit-notes/:number
func (h *CreditNoteHandler) GetByNumber(c *gin.Context) {
	note, err := h.noteService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit note found", note)
}

// List handles GET /credit-notes
func (h *CreditNoteHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.noteService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit notes listed", page)
}

// Update handles PUT /credit-notes/:number
func (h *CreditNoteHandler) Update(c *gin.Context) {
	var req billingapp.CreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), c.Param("number"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit note updated", note)
}

// Delete handles DELETE /credit-notes/:number
func (h *CreditNoteHandler) Delete(c *gin.Context) {
	number := c.Param("number")
	if err := h.noteService.Delete(c.Request.Context(), number); err != nil {
		h.HandleError(c, err)
		return
	}
	h.archive.DiscardCreditNote(c.Request.Context(), number)

	h.Success(c, "credit note deleted", nil)
}

// Search handles GET /credit-notes/search
func (h *CreditNoteHandler) Search(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	req := billingapp.CreditNoteSearchRequest{
		Number:        c.Query("docNo"),
		InvoiceNumber: c.Query("invoice"),
		CustomerCode:  c.Query("customer"),
	}
	if req.From, ok = h.queryDate(c, "from"); !ok {
		return
	}
	if req.To, ok = h.queryDate(c, "to"); !ok {
		return
	}
	if req.MinNet, ok = h.queryDecimal(c, "minNet"); !ok {
		return
	}
	if req.MaxNet, ok = h.queryDecimal(c, "maxNet"); !ok {
		return
	}

	page, err := h.noteService.Search(c.Request.Context(), req, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit notes found", page)
}

// Stats handles GET /credit-notes/stats?from=&to=
func (h *CreditNoteHandler) Stats(c *gin.Context) {
	from, ok := h.queryDate(c, "from")
	if !ok {
		return
	}
	to, ok := h.queryDate(c, "to")
	if !ok {
		return
	}

	stats, err := h.statsService.CreditNotes(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit note statistics", stats)
}

// NextNumber handles GET /credit-notes/next-number
func (h *CreditNoteHandler) NextNumber(c *gin.Context) {
	number, err := h.noteService.NextNumber(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.CodeData{Code: number})
}

// PDF handles GET /credit-notes/:number/pdf
func (h *CreditNoteHandler) PDF(c *gin.Context) {
	number := c.Param("number")
	content, err := h.noteService.PDF(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	writePDF(c, "credit-note-"+number+".pdf", content)
}

// PDFLink handles GET /credit-notes/:number/pdf-link
func (h *CreditNoteHandler) PDFLink(c *gin.Context) {
	link, err := h.archive.CreditNoteLink(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "credit note archived", link)
}
