// Package bootstrap wires repositories, services and handlers into the HTTP API.
package bootstrap

import (
	billingapp "github.com/erp/accounting/internal/application/billing"
	catalogapp "github.com/erp/accounting/internal/application/catalog"
	identityapp "github.com/erp/accounting/internal/application/identity"
	ledgerapp "github.com/erp/accounting/internal/application/ledger"
	partnerapp "github.com/erp/accounting/internal/application/partner"
	"github.com/erp/accounting/internal/infrastructure/auth"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/internal/infrastructure/persistence"
	"github.com/erp/accounting/internal/infrastructure/printing"
	"github.com/erp/accounting/internal/interfaces/http/handler"
	"github.com/erp/accounting/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version is reported by the system info endpoint
var Version = "dev"

// Deps holds what the handlers are built from
type Deps struct {
	DB        *gorm.DB
	Pinger    handler.Pinger
	Config    *config.Config
	Tokens    *auth.JWTService
	Blacklist auth.TokenBlacklist
	// Metrics counts billing documents; nil disables counting
	Metrics billingapp.DocumentMetrics
	// Documents archives issued PDFs; nil disables the pdf-link endpoints
	Documents billingapp.DocumentStore
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

// NewHandlers builds every repository, service and handler of the API
func NewHandlers(d Deps) router.Handlers {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	retries := d.Config.Billing.NumberRetries

	customerRepo := persistence.NewGormCustomerRepository(d.DB, retries)
	productRepo := persistence.NewGormProductRepository(d.DB, retries)
	priceListRepo := persistence.NewGormPriceListRepository(d.DB)
	normRepo := persistence.NewGormDiscountNormRepository(d.DB)
	accountRepo := persistence.NewGormAccountRepository(d.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(d.DB, retries)
	noteRepo := persistence.NewGormCreditNoteRepository(d.DB, retries)
	userRepo := persistence.NewGormUserRepository(d.DB)

	resolver := catalogapp.NewPriceResolver(productRepo, priceListRepo)
	lookup := catalogapp.NewProductLookup(productRepo)
	renderer := printing.NewMarotoRenderer(printing.DefaultRenderConfig())
	company := printing.CompanyInfo{
		Name:    d.Config.Billing.CompanyName,
		Address: d.Config.Billing.CompanyAddress,
		Phone:   d.Config.Billing.CompanyPhone,
		TaxID:   d.Config.Billing.CompanyTaxID,
	}

	invoiceService := billingapp.NewInvoiceService(billingapp.InvoiceServiceDeps{
		InvoiceRepo: invoiceRepo,
		NoteRepo:    noteRepo,
		Customers:   customerRepo,
		Accounts:    accountRepo,
		Products:    lookup,
		Prices:      resolver,
		Renderer:    renderer,
		Company:     company,
		Metrics:     d.Metrics,
		Logger:      log.Named("invoice"),
	})
	noteService := billingapp.NewCreditNoteService(billingapp.CreditNoteServiceDeps{
		NoteRepo:    noteRepo,
		InvoiceRepo: invoiceRepo,
		Customers:   customerRepo,
		Accounts:    accountRepo,
		Products:    lookup,
		Renderer:    renderer,
		Company:     company,
		Metrics:     d.Metrics,
		Logger:      log.Named("credit_note"),
	})
	statsService := billingapp.NewStatsService(
		persistence.NewGormInvoiceStats(d.DB),
		persistence.NewGormCreditNoteStats(d.DB),
		d.Config.Billing.Location(),
	)
	archive := billingapp.NewArchiveService(invoiceService, noteService, d.Documents, log.Named("archive"))
	authService := identityapp.NewAuthService(userRepo, d.Tokens, d.Blacklist, log.Named("auth"))

	pinger := d.Pinger
	if pinger == nil {
		pinger = gormPinger{d.DB}
	}

	return router.Handlers{
		Customer:     handler.NewCustomerHandler(partnerapp.NewCustomerService(customerRepo)),
		Product:      handler.NewProductHandler(catalogapp.NewProductService(productRepo)),
		PriceList:    handler.NewPriceListHandler(catalogapp.NewPriceListService(productRepo, priceListRepo, resolver)),
		DiscountNorm: handler.NewDiscountNormHandler(catalogapp.NewDiscountNormService(productRepo, normRepo)),
		Account:      handler.NewAccountHandler(ledgerapp.NewAccountService(accountRepo)),
		Invoice:      handler.NewInvoiceHandler(invoiceService, statsService, archive),
		CreditNote:   handler.NewCreditNoteHandler(noteService, statsService, archive),
		Auth:         handler.NewAuthHandler(authService),
		System:       handler.NewSystemHandler(d.Config.App.Name, Version, pinger, d.Gatherer),
	}
}
