package billing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceNumbers is the numbering scheme of invoices
var InvoiceNumbers = shared.Sequence{Prefix: "HD", Width: 4}

// Invoice is a sales invoice. Computed amounts are always derived from Lines by Recalculate.
type Invoice struct {
	Number          string
	IssueDate       time.Time
	CustomerCode    string
	CustomerName    string // snapshot taken when the invoice is created
	PaymentMethod   string
	DebitAccount    string
	RevenueAccount  string
	TaxAccount      string
	TaxRate         string
	TaxAmount       decimal.Decimal
	DiscountRate    string
	DiscountAccount string
	DiscountAmount  decimal.Decimal
	NetAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	Description     string
	Lines           []Line
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasTaxAccount reports whether a tax account is set
func (inv *Invoice) HasTaxAccount() bool {
	return inv.TaxAccount != ""
}

// Accounts lists every account the invoice posts to
func (inv *Invoice) Accounts() []string {
	accounts := []string{inv.DebitAccount, inv.RevenueAccount}
	if inv.TaxAccount != "" {
		accounts = append(accounts, inv.TaxAccount)
	}
	if inv.DiscountAccount != "" {
		accounts = append(accounts, inv.DiscountAccount)
	}
	return accounts
}

// Normalize trims text fields and defaults the issue date to now
func (inv *Invoice) Normalize() {
	inv.trim()
	if inv.IssueDate.IsZero() {
		inv.IssueDate = time.Now()
	}
}

func (inv *Invoice) trim() {
	inv.Number = strings.TrimSpace(inv.Number)
	inv.CustomerCode = strings.TrimSpace(inv.CustomerCode)
	inv.PaymentMethod = strings.TrimSpace(inv.PaymentMethod)
	inv.DebitAccount = strings.TrimSpace(inv.DebitAccount)
	inv.RevenueAccount = strings.TrimSpace(inv.RevenueAccount)
	inv.TaxAccount = strings.TrimSpace(inv.TaxAccount)
	inv.TaxRate = strings.TrimSpace(inv.TaxRate)
	inv.DiscountRate = strings.TrimSpace(inv.DiscountRate)
	inv.DiscountAccount = strings.TrimSpace(inv.DiscountAccount)
	inv.Description = strings.TrimSpace(inv.Description)
	for i := range inv.Lines {
		inv.Lines[i].ProductCode = strings.TrimSpace(inv.Lines[i].ProductCode)
		inv.Lines[i].Unit = strings.TrimSpace(inv.Lines[i].Unit)
	}
}

// Validate checks header fields that do not need other aggregates
func (inv *Invoice) Validate() error {
	if inv.CustomerCode == "" {
		return shared.NewInvalidInput("customer code cannot be empty")
	}
	if inv.DebitAccount == "" {
		return shared.NewInvalidInput("debit account cannot be empty")
	}
	if inv.RevenueAccount == "" {
		return shared.NewInvalidInput("revenue account cannot be empty")
	}
	if utf8.RuneCountInString(inv.Number) > 10 {
		return shared.NewInvalidInput("invoice number cannot exceed 10 characters")
	}
	if utf8.RuneCountInString(inv.PaymentMethod) > 50 {
		return shared.NewInvalidInput("payment method cannot exceed 50 characters")
	}
	if utf8.RuneCountInString(inv.Description) > 150 {
		return shared.NewInvalidInput("description cannot exceed 150 characters")
	}
	return nil
}

// Recalculate derives discount, net, tax and total from the lines
func (inv *Invoice) Recalculate() error {
	if err := CheckLines(inv.Lines); err != nil {
		return err
	}
	t, err := CalculateInvoice(inv.Lines, inv.DiscountRate, inv.TaxRate, inv.HasTaxAccount())
	if err != nil {
		return err
	}
	inv.DiscountAmount = t.Discount
	inv.NetAmount = t.Net
	inv.TaxAmount = t.Tax
	inv.TotalAmount = t.Total
	return nil
}

// GrossAmount returns the sum of line totals
func (inv *Invoice) GrossAmount() decimal.Decimal {
	return GrossTotal(inv.Lines)
}

// CheckImmutable fails with Conflict when next would change the number or the customer
func (inv *Invoice) CheckImmutable(next *Invoice) error {
	next.trim()
	if next.Number != "" && next.Number != inv.Number {
		return shared.NewConflict("invoice number %s cannot be changed to %s", inv.Number, next.Number)
	}
	if next.CustomerCode != inv.CustomerCode {
		return shared.NewConflict("customer of invoice %s cannot be changed", inv.Number)
	}
	return nil
}

// ApplyChanges copies the mutable header fields and replaces every line with those of next.
// The number and customer are immutable; attempts to change them fail with Conflict.
func (inv *Invoice) ApplyChanges(next *Invoice) error {
	if err := inv.CheckImmutable(next); err != nil {
		return err
	}
	if !next.IssueDate.IsZero() {
		inv.IssueDate = next.IssueDate
	}
	inv.PaymentMethod = next.PaymentMethod
	inv.DebitAccount = next.DebitAccount
	inv.RevenueAccount = next.RevenueAccount
	inv.TaxAccount = next.TaxAccount
	inv.TaxRate = next.TaxRate
	inv.DiscountRate = next.DiscountRate
	inv.DiscountAccount = next.DiscountAccount
	inv.Description = next.Description
	inv.Lines = append([]Line(nil), next.Lines...)
	inv.UpdatedAt = time.Now()
	return inv.Recalculate()
}

// ContainsProduct reports whether the invoice has a line for code
func (inv *Invoice) ContainsProduct(code string) bool {
	for _, l := range inv.Lines {
		if l.ProductCode == code {
			return true
		}
	}
	return false
}
