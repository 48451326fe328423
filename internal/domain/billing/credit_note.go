package billing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreditNoteNumbers is the numbering scheme of credit notes
var CreditNoteNumbers = shared.Sequence{Prefix: "PH", Width: 4}

// CreditNote reduces a previously issued invoice. Its lines may only name products of that invoice.
type CreditNote struct {
	Number            string
	IssueDate         time.Time
	CustomerCode      string
	InvoiceNumber     string
	Description       string
	ReductionAccount  string // debit side of the reduction
	SettlementAccount string // credit side of the settlement
	TaxAccount        string // optional debit tax account
	TaxRate           string
	TaxAmount         decimal.Decimal
	NetAmount         decimal.Decimal
	TotalAmount       decimal.Decimal
	Lines             []Line
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasTaxAccount reports whether a tax account is set
func (cn *CreditNote) HasTaxAccount() bool {
	return cn.TaxAccount != ""
}

// Accounts lists every account the credit note posts to
func (cn *CreditNote) Accounts() []string {
	accounts := []string{cn.ReductionAccount, cn.SettlementAccount}
	if cn.TaxAccount != "" {
		accounts = append(accounts, cn.TaxAccount)
	}
	return accounts
}

// Normalize trims text fields and defaults the issue date to now
func (cn *CreditNote) Normalize() {
	cn.trim()
	if cn.IssueDate.IsZero() {
		cn.IssueDate = time.Now()
	}
}

func (cn *CreditNote) trim() {
	cn.Number = strings.TrimSpace(cn.Number)
	cn.CustomerCode = strings.TrimSpace(cn.CustomerCode)
	cn.InvoiceNumber = strings.TrimSpace(cn.InvoiceNumber)
	cn.Description = strings.TrimSpace(cn.Description)
	cn.ReductionAccount = strings.TrimSpace(cn.ReductionAccount)
	cn.SettlementAccount = strings.TrimSpace(cn.SettlementAccount)
	cn.TaxAccount = strings.TrimSpace(cn.TaxAccount)
	cn.TaxRate = strings.TrimSpace(cn.TaxRate)
	for i := range cn.Lines {
		cn.Lines[i].ProductCode = strings.TrimSpace(cn.Lines[i].ProductCode)
		cn.Lines[i].Unit = strings.TrimSpace(cn.Lines[i].Unit)
	}
}

// Validate checks header fields that do not need other aggregates
func (cn *CreditNote) Validate() error {
	if cn.InvoiceNumber == "" {
		return shared.NewInvalidInput("source invoice number cannot be empty")
	}
	if cn.ReductionAccount == "" {
		return shared.NewInvalidInput("reduction account cannot be empty")
	}
	if cn.SettlementAccount == "" {
		return shared.NewInvalidInput("settlement account cannot be empty")
	}
	if utf8.RuneCountInString(cn.Number) > 10 {
		return shared.NewInvalidInput("credit note number cannot exceed 10 characters")
	}
	if utf8.RuneCountInString(cn.Description) > 150 {
		return shared.NewInvalidInput("description cannot exceed 150 characters")
	}
	return nil
}

// BindTo attaches the note to its source invoice. The customer must be the invoice's customer.
func (cn *CreditNote) BindTo(inv *Invoice) error {
	if cn.InvoiceNumber != inv.Number {
		return shared.NewReferentialIntegrity("credit note refers to invoice %s, not %s", cn.InvoiceNumber, inv.Number)
	}
	if cn.CustomerCode == "" {
		cn.CustomerCode = inv.CustomerCode
	}
	if cn.CustomerCode != inv.CustomerCode {
		return shared.NewReferentialIntegrity("customer %s does not match customer %s of invoice %s",
			cn.CustomerCode, inv.CustomerCode, inv.Number)
	}
	for _, l := range cn.Lines {
		if !inv.ContainsProduct(l.ProductCode) {
			return shared.NewReferentialIntegrity("product %s is not on invoice %s", l.ProductCode, inv.Number)
		}
	}
	return nil
}

// Recalculate derives net, tax and total from the lines
func (cn *CreditNote) Recalculate() error {
	if err := CheckLines(cn.Lines); err != nil {
		return err
	}
	t, err := CalculateCreditNote(cn.Lines, cn.TaxRate, cn.HasTaxAccount())
	if err != nil {
		return err
	}
	cn.NetAmount = t.Net
	cn.TaxAmount = t.Tax
	cn.TotalAmount = t.Total
	return nil
}

// CheckImmutable fails with Conflict when next would change the number, the source invoice
// or a stated customer
func (cn *CreditNote) CheckImmutable(next *CreditNote) error {
	next.trim()
	if next.Number != "" && next.Number != cn.Number {
		return shared.NewConflict("credit note number %s cannot be changed to %s", cn.Number, next.Number)
	}
	if next.InvoiceNumber != cn.InvoiceNumber {
		return shared.NewConflict("source invoice of credit note %s cannot be changed", cn.Number)
	}
	if next.CustomerCode != "" && next.CustomerCode != cn.CustomerCode {
		return shared.NewConflict("customer of credit note %s cannot be changed", cn.Number)
	}
	return nil
}

// ApplyChanges copies the mutable header fields and replaces every line with those of next.
// Number, source invoice and customer are immutable.
func (cn *CreditNote) ApplyChanges(next *CreditNote) error {
	if err := cn.CheckImmutable(next); err != nil {
		return err
	}
	if !next.IssueDate.IsZero() {
		cn.IssueDate = next.IssueDate
	}
	cn.Description = next.Description
	cn.ReductionAccount = next.ReductionAccount
	cn.SettlementAccount = next.SettlementAccount
	cn.TaxAccount = next.TaxAccount
	cn.TaxRate = next.TaxRate
	cn.Lines = append([]Line(nil), next.Lines...)
	cn.UpdatedAt = time.Now()
	return cn.Recalculate()
}
