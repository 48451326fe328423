package router

import (
	"github.com/erp/accounting/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the resource handlers served by the API
type Handlers struct {
	Customer     *handler.CustomerHandler
	Product      *handler.ProductHandler
	PriceList    *handler.PriceListHandler
	DiscountNorm *handler.DiscountNormHandler
	Account      *handler.AccountHandler
	Invoice      *handler.InvoiceHandler
	CreditNote   *handler.CreditNoteHandler
	Auth         *handler.AuthHandler
	System       *handler.SystemHandler
}

// Public API paths, relative to the API group, reachable without a token
var publicAPIPaths = []string{"/auth/register", "/auth/login"}

// domainGroups declares every API route. idempotent wraps the document creates.
func domainGroups(h Handlers, idempotent gin.HandlerFunc) []*DomainGroup {
	customers := NewDomainGroup("customers", "/customers").
		GET("", h.Customer.List).
		POST("", h.Customer.Create).
		GET("/search", h.Customer.Search).
		GET("/check-tax-id", h.Customer.CheckTaxID).
		GET("/next-code", h.Customer.NextCode).
		GET("/:code", h.Customer.GetByCode).
		GET("/:code/exists", h.Customer.Exists).
		PUT("/:code", h.Customer.Update).
		DELETE("/:code", h.Customer.Delete)

	products := NewDomainGroup("products", "/products").
		GET("", h.Product.List).
		POST("", h.Product.Create).
		GET("/search", h.Product.Search).
		GET("/check-name", h.Product.CheckName).
		GET("/next-code", h.Product.NextCode).
		GET("/unit/:unit", h.Product.ListByUnit).
		GET("/:code", h.Product.GetByCode).
		GET("/:code/exists", h.Product.Exists).
		PUT("/:code", h.Product.Update).
		DELETE("/:code", h.Product.Delete)

	priceLists := NewDomainGroup("price-lists", "/price-lists").
		GET("", h.PriceList.List).
		POST("", h.PriceList.Create).
		GET("/valid-at", h.PriceList.ValidAt).
		GET("/:product/history", h.PriceList.History).
		GET("/:product/latest", h.PriceList.Latest).
		GET("/:product/range", h.PriceList.InRange).
		GET("/:product/resolve", h.PriceList.Resolve).
		GET("/:product/:from", h.PriceList.Get).
		PUT("/:product/:from", h.PriceList.Update).
		DELETE("/:product/:from", h.PriceList.Delete)

	discountNorms := NewDomainGroup("discount-norms", "/discount-norms").
		GET("", h.DiscountNorm.List).
		POST("", h.DiscountNorm.Create).
		GET("/:product", h.DiscountNorm.ByProduct).
		GET("/:product/applicable", h.DiscountNorm.Applicable).
		GET("/:product/:from/:threshold", h.DiscountNorm.Get).
		PUT("/:product/:from/:threshold", h.DiscountNorm.Update).
		DELETE("/:product/:from/:threshold", h.DiscountNorm.Delete)

	accounts := NewDomainGroup("accounts", "/accounts").
		GET("", h.Account.List).
		POST("", h.Account.Create).
		GET("/search", h.Account.Search).
		GET("/level/:level", h.Account.ByLevel).
		GET("/prefix/:prefix", h.Account.ByPrefix).
		GET("/:code", h.Account.GetByCode).
		GET("/:code/exists", h.Account.Exists).
		GET("/:code/children", h.Account.Children).
		GET("/:code/next-level", h.Account.NextLevel).
		GET("/:code/in-use", h.Account.InUse).
		PUT("/:code", h.Account.Update).
		DELETE("/:code", h.Account.Delete)

	invoices := NewDomainGroup("invoices", "/invoices").
		GET("", h.Invoice.List).
		POST("", idempotent, h.Invoice.Create).
		GET("/search", h.Invoice.Search).
		GET("/stats", h.Invoice.Stats).
		GET("/stats/monthly", h.Invoice.MonthlyRevenue).
		GET("/next-number", h.Invoice.NextNumber).
		GET("/customer/:code", h.Invoice.ByCustomer).
		GET("/product/:code", h.Invoice.ByProduct).
		GET("/:number", h.Invoice.GetByNumber).
		GET("/:number/credit-notes", h.Invoice.CreditNotes).
		GET("/:number/pdf", h.Invoice.PDF).
		GET("/:number/pdf-link", h.Invoice.PDFLink).
		PUT("/:number", h.Invoice.Update).
		DELETE("/:number", h.Invoice.Delete)

	creditNotes := NewDomainGroup("credit-notes", "/credit-notes").
		GET("", h.CreditNote.List).
		POST("", idempotent, h.CreditNote.Create).
		GET("/search", h.CreditNote.Search).
		GET("/stats", h.CreditNote.Stats).
		GET("/next-number", h.CreditNote.NextNumber).
		GET("/:number", h.CreditNote.GetByNumber).
		GET("/:number/pdf", h.CreditNote.PDF).
		GET("/:number/pdf-link", h.CreditNote.PDFLink).
		PUT("/:number", h.CreditNote.Update).
		DELETE("/:number", h.CreditNote.Delete)

	authRoutes := NewDomainGroup("auth", "/auth").
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		GET("/me", h.Auth.Me).
		POST("/logout", h.Auth.Logout)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.Info)

	return []*DomainGroup{
		customers, products, priceLists, discountNorms, accounts,
		invoices, creditNotes, authRoutes, system,
	}
}
