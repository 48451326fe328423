package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerFinder loads customers referenced by documents
type CustomerFinder interface {
	FindByCode(ctx context.Context, code string) (*partner.Customer, error)
}

// AccountFinder loads accounts referenced by documents
type AccountFinder interface {
	FindByCodes(ctx context.Context, codes []string) ([]ledger.Account, error)
}

// ProductCatalog resolves product codes; unknown codes are absent from the result
type ProductCatalog interface {
	FindByCodes(ctx context.Context, codes []string) (map[string]catalog.Product, error)
}

// PriceSource resolves the unit price of a product at a date
type PriceSource interface {
	UnitPrice(ctx context.Context, productCode string, asOf time.Time) (decimal.Decimal, error)
}

// DocumentMetrics records business events of billing documents
type DocumentMetrics interface {
	DocumentCreated(docType string, total decimal.Decimal)
	DocumentUpdated(docType string)
	DocumentDeleted(docType string)
}

type noopMetrics struct{}

func (noopMetrics) DocumentCreated(string, decimal.Decimal) {}
func (noopMetrics) DocumentUpdated(string)                  {}
func (noopMetrics) DocumentDeleted(string)                  {}

// Document types reported to DocumentMetrics
const (
	DocTypeInvoice    = "invoice"
	DocTypeCreditNote = "credit_note"
)
