package catalog

import (
	"strings"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountNorm is a volume discount: from EffectiveFrom, purchases of the product worth at least
// Threshold earn Rate percent. Keyed by (ProductCode, EffectiveFrom, Threshold).
type DiscountNorm struct {
	ProductCode   string
	EffectiveFrom time.Time
	Threshold     decimal.Decimal
	Rate          decimal.Decimal
}

// NewDiscountNorm creates a discount norm. A zero effectiveFrom means now.
func NewDiscountNorm(productCode string, effectiveFrom time.Time, threshold, rate decimal.Decimal) (*DiscountNorm, error) {
	productCode = strings.TrimSpace(productCode)
	if productCode == "" {
		return nil, shared.NewInvalidInput("product code cannot be empty")
	}
	if threshold.IsNegative() {
		return nil, shared.NewInvalidInput("amount threshold cannot be negative")
	}
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	if effectiveFrom.IsZero() {
		effectiveFrom = time.Now()
	}
	return &DiscountNorm{
		ProductCode:   productCode,
		EffectiveFrom: effectiveFrom.Truncate(time.Second),
		Threshold:     threshold,
		Rate:          rate,
	}, nil
}

// ChangeRate updates the discount percentage
func (n *DiscountNorm) ChangeRate(rate decimal.Decimal) error {
	if err := validateRate(rate); err != nil {
		return err
	}
	n.Rate = rate
	return nil
}

// AppliesTo reports whether an order of amount on date qualifies for the norm
func (n DiscountNorm) AppliesTo(amount decimal.Decimal, date time.Time) bool {
	return !n.EffectiveFrom.After(date) && n.Threshold.LessThanOrEqual(amount)
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return shared.NewInvalidInput("discount rate must be between 0 and 100")
	}
	return nil
}
