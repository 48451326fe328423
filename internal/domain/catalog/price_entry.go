package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceEntry is one point of a product's price history, keyed by (ProductCode, EffectiveFrom)
type PriceEntry struct {
	ProductCode   string
	EffectiveFrom time.Time
	Price         decimal.Decimal
}

// NewPriceEntry creates a price-list entry. A zero effectiveFrom means now.
func NewPriceEntry(productCode string, effectiveFrom time.Time, price decimal.Decimal) (*PriceEntry, error) {
	productCode = strings.TrimSpace(productCode)
	if productCode == "" {
		return nil, shared.NewInvalidInput("product code cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewInvalidInput("price cannot be negative")
	}
	if effectiveFrom.IsZero() {
		effectiveFrom = time.Now()
	}
	return &PriceEntry{
		ProductCode:   productCode,
		EffectiveFrom: effectiveFrom.Truncate(time.Second),
		Price:         price,
	}, nil
}

// ChangePrice updates the price. Product and effective date are the identity and never change.
func (e *PriceEntry) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewInvalidInput("price cannot be negative")
	}
	e.Price = price
	return nil
}

// ValidAt reports whether the entry has taken effect at t
func (e PriceEntry) ValidAt(t time.Time) bool {
	return !e.EffectiveFrom.After(t)
}

// LatestValid picks the entry with the greatest EffectiveFrom not after asOf
func LatestValid(entries []PriceEntry, asOf time.Time) (PriceEntry, bool) {
	valid := make([]PriceEntry, 0, len(entries))
	for _, e := range entries {
		if e.ValidAt(asOf) {
			valid = append(valid, e)
		}
	}
	if len(valid) == 0 {
		return PriceEntry{}, false
	}
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].EffectiveFrom.After(valid[j].EffectiveFrom)
	})
	return valid[0], true
}
