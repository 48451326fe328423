package billing

import (
	"strings"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SearchMode names the single filter a search resolves to
type SearchMode string

const (
	SearchByNumber           SearchMode = "number"
	SearchByInvoice          SearchMode = "invoice"
	SearchByCustomerAndRange SearchMode = "customer_range"
	SearchByCustomer         SearchMode = "customer"
	SearchByRange            SearchMode = "range"
	SearchByPaymentAndAmount SearchMode = "payment_amount"
	SearchByAmount           SearchMode = "amount"
	SearchAll                SearchMode = "all"
)

// AmountRange bounds an amount; a nil bound is open
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// IsZero reports whether neither bound is set
func (r AmountRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Validate rejects a minimum above the maximum
func (r AmountRange) Validate() error {
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return shared.NewInvalidInput("minimum amount must not exceed maximum amount")
	}
	return nil
}

// InvoiceCriteria is the raw filter set of an invoice search
type InvoiceCriteria struct {
	Number        string
	CustomerCode  string
	Range         shared.DateRange
	PaymentMethod string
	Total         AmountRange // bounds the total payable
}

// Resolve applies the fixed precedence and keeps only the winning filter:
// number, customer with date range, customer, date range, payment method and
// amount range together, all. A date range with one bound is open-ended.
func (c InvoiceCriteria) Resolve() (SearchMode, InvoiceCriteria) {
	c.Number = strings.TrimSpace(c.Number)
	c.CustomerCode = strings.TrimSpace(c.CustomerCode)
	c.PaymentMethod = strings.TrimSpace(c.PaymentMethod)

	switch {
	case c.Number != "":
		return SearchByNumber, InvoiceCriteria{Number: c.Number}
	case c.CustomerCode != "" && !c.Range.IsZero():
		return SearchByCustomerAndRange, InvoiceCriteria{CustomerCode: c.CustomerCode, Range: c.Range}
	case c.CustomerCode != "":
		return SearchByCustomer, InvoiceCriteria{CustomerCode: c.CustomerCode}
	case !c.Range.IsZero():
		return SearchByRange, InvoiceCriteria{Range: c.Range}
	case c.PaymentMethod != "" || !c.Total.IsZero():
		return SearchByPaymentAndAmount, InvoiceCriteria{PaymentMethod: c.PaymentMethod, Total: c.Total}
	default:
		return SearchAll, InvoiceCriteria{}
	}
}

// CreditNoteCriteria is the raw filter set of a credit-note search
type CreditNoteCriteria struct {
	Number        string
	InvoiceNumber string
	CustomerCode  string
	Range         shared.DateRange
	Net           AmountRange // bounds the net amount
}

// Resolve applies the fixed precedence and keeps only the winning filter:
// number, source invoice, customer with date range, customer, date range, amount range, all.
// A date range with one bound is open-ended.
func (c CreditNoteCriteria) Resolve() (SearchMode, CreditNoteCriteria) {
	c.Number = strings.TrimSpace(c.Number)
	c.InvoiceNumber = strings.TrimSpace(c.InvoiceNumber)
	c.CustomerCode = strings.TrimSpace(c.CustomerCode)

	switch {
	case c.Number != "":
		return SearchByNumber, CreditNoteCriteria{Number: c.Number}
	case c.InvoiceNumber != "":
		return SearchByInvoice, CreditNoteCriteria{InvoiceNumber: c.InvoiceNumber}
	case c.CustomerCode != "" && !c.Range.IsZero():
		return SearchByCustomerAndRange, CreditNoteCriteria{CustomerCode: c.CustomerCode, Range: c.Range}
	case c.CustomerCode != "":
		return SearchByCustomer, CreditNoteCriteria{CustomerCode: c.CustomerCode}
	case !c.Range.IsZero():
		return SearchByRange, CreditNoteCriteria{Range: c.Range}
	case !c.Net.IsZero():
		return SearchByAmount, CreditNoteCriteria{Net: c.Net}
	default:
		return SearchAll, CreditNoteCriteria{}
	}
}
