package billing

import (
	"strings"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Line is one product row of an invoice or credit note. The document owns its lines;
// (document number, ProductCode) is unique.
type Line struct {
	ProductCode string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Total returns quantity × unit price. It is derived and never stored.
func (l Line) Total() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// CheckLines verifies the shape of a line list: not empty, one line per product,
// positive quantities and non-negative prices.
func CheckLines(lines []Line) error {
	if len(lines) == 0 {
		return shared.NewInvalidInput("document must have at least one line")
	}
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		code := strings.TrimSpace(l.ProductCode)
		if code == "" {
			return shared.NewInvalidInput("line %d: product code cannot be empty", i+1)
		}
		if _, dup := seen[code]; dup {
			return shared.NewInvalidInput("product %s appears on more than one line", code)
		}
		seen[code] = struct{}{}
		if !l.Quantity.IsPositive() {
			return shared.NewInvalidInput("line %d: quantity of product %s must be greater than 0", i+1, code)
		}
		if l.UnitPrice.IsNegative() {
			return shared.NewInvalidInput("line %d: unit price of product %s cannot be negative", i+1, code)
		}
	}
	return nil
}

// ProductCodes lists the distinct product codes of lines in order
func ProductCodes(lines []Line) []string {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductCode]; ok {
			continue
		}
		seen[l.ProductCode] = struct{}{}
		codes = append(codes, l.ProductCode)
	}
	return codes
}
