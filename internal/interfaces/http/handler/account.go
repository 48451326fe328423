package handler

import (
	ledgerapp "github.com/erp/accounting/internal/application/ledger"
	"github.com/erp/accounting/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles chart-of-accounts API endpoints
type AccountHandler struct {
	BaseHandler
	accountService *ledgerapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *ledgerapp.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Create handles POST /accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "account created", account)
}

// GetByCode handles GET /accounts/:code
func (h *AccountHandler) GetByCode(c *gin.Context) {
	account, err := h.accountService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "account found", account)
}

// Exists handles GET /accounts/:code/exists
func (h *AccountHandler) Exists(c *gin.Context) {
	exists, err := h.accountService.Exists(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", dto.ExistsData{Exists: exists})
}

// List handles GET /accounts
func (h *AccountHandler) List(c *gin.Context) {
	filter, ok := h.bindList(c)
	if !ok {
		return
	}

	page, err := h.accountService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "accounts listed", page)
}

// ByLevel handles GET /accounts/level/:level
func (h *AccountHandler) ByLevel(c *gin.Context) {
	level, ok := h.intParam(c, "level")
	if !ok {
		return
	}

	accounts, err := h.accountService.ByLevel(c.Request.Context(), level)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "accounts found", accounts)
}

// ByPrefix handles GET /accounts/prefix/:prefix
func (h *AccountHandler) ByPrefix(c *gin.Context) {
	accounts, err := h.accountService.ByPrefix(c.Request.Context(), c.Param("prefix"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "accounts found", accounts)
}

// Search handles GET /accounts/search?keyword=
func (h *AccountHandler) Search(c *gin.Context) {
	accounts, err := h.accountService.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "accounts found", accounts)
}

// Children handles GET /accounts/:code/children
func (h *AccountHandler) Children(c *gin.Context) {
	accounts, err := h.accountService.Children(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "child accounts", accounts)
}

// NextLevel handles GET /accounts/:code/next-level
func (h *AccountHandler) NextLevel(c *gin.Context) {
	accounts, err := h.accountService.NextLevel(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "next level accounts", accounts)
}

// InUse handles GET /accounts/:code/in-use
func (h *AccountHandler) InUse(c *gin.Context) {
	inUse, err := h.accountService.InUse(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "ok", gin.H{"in_use": inUse})
}

// Update handles PUT /accounts/:code
func (h *AccountHandler) Update(c *gin.Context) {
	var req ledgerapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.Update(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "account updated", account)
}

// Delete handles DELETE /accounts/:code
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.accountService.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, "account deleted", nil)
}
