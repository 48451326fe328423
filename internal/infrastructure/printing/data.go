package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocType names a printable document type
type DocType string

const (
	DocTypeInvoice    DocType = "INVOICE"
	DocTypeCreditNote DocType = "CREDIT_NOTE"
)

// Title returns the heading printed on the document
func (t DocType) Title() string {
	switch t {
	case DocTypeInvoice:
		return "Sales Invoice"
	case DocTypeCreditNote:
		return "Credit Note"
	default:
		return string(t)
	}
}

// DocumentData is everything the renderer needs for one document.
// Document holds an *InvoiceData or a *CreditNoteData.
type DocumentData struct {
	Meta     DocumentMeta
	Company  CompanyInfo
	Document any
}

// DocumentMeta contains metadata common to every document
type DocumentMeta struct {
	DocType   DocType
	DocNo     string
	IssueDate time.Time
	Remark    string
}

// CompanyInfo identifies the issuing company
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// CustomerInfo identifies the buyer
type CustomerInfo struct {
	Code    string
	Name    string
	Address string
	TaxID   string
}

// LineData is one printed line
type LineData struct {
	Index       int // 1-based
	ProductCode string
	ProductName string
	Unit        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceData is the printable view of an invoice
type InvoiceData struct {
	Customer       CustomerInfo
	PaymentMethod  string
	Lines          []LineData
	GrossAmount    decimal.Decimal
	DiscountRate   string
	DiscountAmount decimal.Decimal
	NetAmount      decimal.Decimal
	TaxRate        string
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
}

// CreditNoteData is the printable view of a credit note
type CreditNoteData struct {
	Customer      CustomerInfo
	InvoiceNumber string
	Lines         []LineData
	NetAmount     decimal.Decimal
	TaxRate       string
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
}
