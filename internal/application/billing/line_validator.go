package billing

import (
	"context"
	"strings"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
)

// LineValidator checks submitted lines against the catalog before a document is built
type LineValidator struct {
	products ProductCatalog
}

// NewLineValidator creates a new LineValidator
func NewLineValidator(products ProductCatalog) *LineValidator {
	return &LineValidator{products: products}
}

// ValidateInvoiceLines checks every line names a known product with a positive quantity.
// It returns the referenced products keyed by code.
func (v *LineValidator) ValidateInvoiceLines(ctx context.Context, lines []LineRequest) (map[string]catalog.Product, error) {
	return v.validate(ctx, lines, nil)
}

// ValidateCreditNoteLines additionally requires an explicit non-negative unit price and
// that every product appears on the source invoice.
func (v *LineValidator) ValidateCreditNoteLines(ctx context.Context, lines []LineRequest, source *billing.Invoice) (map[string]catalog.Product, error) {
	return v.validate(ctx, lines, source)
}

func (v *LineValidator) validate(ctx context.Context, lines []LineRequest, source *billing.Invoice) (map[string]catalog.Product, error) {
	if len(lines) == 0 {
		return nil, shared.NewInvalidInput("document must have at least one line")
	}

	codes := make([]string, len(lines))
	for i := range lines {
		lines[i].ProductCode = strings.TrimSpace(lines[i].ProductCode)
		codes[i] = lines[i].ProductCode
	}
	products, err := v.products.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	for i, l := range lines {
		if _, ok := products[l.ProductCode]; !ok {
			return nil, shared.NewMissingReference("product %s not found", l.ProductCode)
		}
		if l.Quantity == nil || !l.Quantity.IsPositive() {
			return nil, shared.NewInvalidInput("line %d: quantity of product %s must be greater than 0", i+1, l.ProductCode)
		}
		if source == nil {
			continue
		}
		if l.UnitPrice == nil || l.UnitPrice.IsNegative() {
			return nil, shared.NewInvalidInput("line %d: unit price of product %s is required and cannot be negative", i+1, l.ProductCode)
		}
		if !source.ContainsProduct(l.ProductCode) {
			return nil, shared.NewReferentialIntegrity("product %s is not on invoice %s", l.ProductCode, source.Number)
		}
	}
	return products, nil
}
