package billing

import (
	"strings"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the result of pricing a document
type Totals struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ParseRate reads a percentage such as "10", "12.5" or "10%".
// present is false for a blank string.
func ParseRate(s string) (rate decimal.Decimal, present bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, nil
	}
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	rate, err = decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true, shared.NewInvalidInput("rate %q is not a number", s)
	}
	if rate.IsNegative() {
		return decimal.Zero, true, shared.NewInvalidInput("rate %q cannot be negative", s)
	}
	return rate, true, nil
}

// Percent returns amount × rate / 100 rounded half-up to whole currency units
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Shift(-2).Round(0)
}

// GrossTotal sums quantity × unit price over lines with exact decimal arithmetic
func GrossTotal(lines []Line) decimal.Decimal {
	gross := decimal.Zero
	for _, l := range lines {
		gross = gross.Add(l.Total())
	}
	return gross
}

// CalculateInvoice prices an invoice: discount applies to the gross total, tax to the net.
// Tax is zero unless both a tax rate and a tax account are given.
func CalculateInvoice(lines []Line, discountRate, taxRate string, hasTaxAccount bool) (Totals, error) {
	t := Totals{Gross: GrossTotal(lines), Discount: decimal.Zero, Tax: decimal.Zero}

	rate, present, err := ParseRate(discountRate)
	if err != nil {
		return Totals{}, err
	}
	if present {
		if rate.GreaterThan(hundred) {
			return Totals{}, shared.NewInvalidInput("discount rate cannot exceed 100%%")
		}
		t.Discount = Percent(t.Gross, rate)
	}
	t.Net = t.Gross.Sub(t.Discount)

	if t.Tax, err = taxOn(t.Net, taxRate, hasTaxAccount); err != nil {
		return Totals{}, err
	}
	t.Total = t.Net.Add(t.Tax)
	return t, nil
}

// CalculateCreditNote prices a credit note: no discount, tax on the gross total
func CalculateCreditNote(lines []Line, taxRate string, hasTaxAccount bool) (Totals, error) {
	t := Totals{Gross: GrossTotal(lines), Discount: decimal.Zero}
	t.Net = t.Gross

	var err error
	if t.Tax, err = taxOn(t.Net, taxRate, hasTaxAccount); err != nil {
		return Totals{}, err
	}
	t.Total = t.Net.Add(t.Tax)
	return t, nil
}

func taxOn(base decimal.Decimal, taxRate string, hasTaxAccount bool) (decimal.Decimal, error) {
	if strings.TrimSpace(taxRate) == "" || !hasTaxAccount {
		return decimal.Zero, nil
	}
	rate, _, err := ParseRate(taxRate)
	if err != nil {
		return decimal.Zero, err
	}
	return Percent(base, rate), nil
}
