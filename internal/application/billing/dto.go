package billing

import (
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Line DTOs
// =============================================================================

// LineRequest is one submitted line. A nil or zero unit price on an invoice line
// is resolved from the price list; credit-note lines must state it.
type LineRequest struct {
	ProductCode string           `json:"product_code" binding:"required,max=10"`
	Unit        string           `json:"unit" binding:"max=10"`
	Quantity    *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// LineResponse represents a document line in API responses
type LineResponse struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func toLineResponses(lines []billing.Line, names map[string]string) []LineResponse {
	responses := make([]LineResponse, len(lines))
	for i, l := range lines {
		responses[i] = LineResponse{
			ProductCode: l.ProductCode,
			ProductName: names[l.ProductCode],
			Unit:        l.Unit,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Total(),
		}
	}
	return responses
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// InvoiceRequest is the body of invoice create and update. On update the number and
// customer code must match the stored invoice.
type InvoiceRequest struct {
	Number          string        `json:"number" binding:"max=10"`
	IssueDate       time.Time     `json:"issue_date"`
	CustomerCode    string        `json:"customer_code" binding:"required,max=10"`
	PaymentMethod   string        `json:"payment_method" binding:"max=50"`
	DebitAccount    string        `json:"debit_account" binding:"required,max=10"`
	RevenueAccount  string        `json:"revenue_account" binding:"required,max=10"`
	TaxAccount      string        `json:"tax_account" binding:"max=10"`
	TaxRate         string        `json:"tax_rate" binding:"max=10"`
	DiscountRate    string        `json:"discount_rate" binding:"max=10"`
	DiscountAccount string        `json:"discount_account" binding:"max=10"`
	Description     string        `json:"description" binding:"max=150"`
	Lines           []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r InvoiceRequest) invoice() *billing.Invoice {
	return &billing.Invoice{
		Number:          r.Number,
		IssueDate:       r.IssueDate,
		CustomerCode:    r.CustomerCode,
		PaymentMethod:   r.PaymentMethod,
		DebitAccount:    r.DebitAccount,
		RevenueAccount:  r.RevenueAccount,
		TaxAccount:      r.TaxAccount,
		TaxRate:         r.TaxRate,
		DiscountRate:    r.DiscountRate,
		DiscountAccount: r.DiscountAccount,
		Description:     r.Description,
	}
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	Number          string          `json:"number"`
	IssueDate       time.Time       `json:"issue_date"`
	CustomerCode    string          `json:"customer_code"`
	CustomerName    string          `json:"customer_name"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	DebitAccount    string          `json:"debit_account"`
	RevenueAccount  string          `json:"revenue_account"`
	TaxAccount      string          `json:"tax_account,omitempty"`
	TaxRate         string          `json:"tax_rate,omitempty"`
	DiscountRate    string          `json:"discount_rate,omitempty"`
	DiscountAccount string          `json:"discount_account,omitempty"`
	Description     string          `json:"description,omitempty"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Lines           []LineResponse  `json:"lines"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InvoiceListItem is the header-only view used by listings
type InvoiceListItem struct {
	Number        string          `json:"number"`
	IssueDate     time.Time       `json:"issue_date"`
	CustomerCode  string          `json:"customer_code"`
	CustomerName  string          `json:"customer_name"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ToInvoiceResponse converts a domain Invoice to InvoiceResponse.
// names maps product codes to product names and may be nil.
func ToInvoiceResponse(inv *billing.Invoice, names map[string]string) InvoiceResponse {
	return InvoiceResponse{
		Number:          inv.Number,
		IssueDate:       inv.IssueDate,
		CustomerCode:    inv.CustomerCode,
		CustomerName:    inv.CustomerName,
		PaymentMethod:   inv.PaymentMethod,
		DebitAccount:    inv.DebitAccount,
		RevenueAccount:  inv.RevenueAccount,
		TaxAccount:      inv.TaxAccount,
		TaxRate:         inv.TaxRate,
		DiscountRate:    inv.DiscountRate,
		DiscountAccount: inv.DiscountAccount,
		Description:     inv.Description,
		GrossAmount:     inv.GrossAmount(),
		DiscountAmount:  inv.DiscountAmount,
		NetAmount:       inv.NetAmount,
		TaxAmount:       inv.TaxAmount,
		TotalAmount:     inv.TotalAmount,
		Lines:           toLineResponses(inv.Lines, names),
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// ToInvoiceListItems converts invoices to list items
func ToInvoiceListItems(invoices []billing.Invoice) []InvoiceListItem {
	items := make([]InvoiceListItem, len(invoices))
	for i, inv := range invoices {
		items[i] = InvoiceListItem{
			Number:        inv.Number,
			IssueDate:     inv.IssueDate,
			CustomerCode:  inv.CustomerCode,
			CustomerName:  inv.CustomerName,
			PaymentMethod: inv.PaymentMethod,
			NetAmount:     inv.NetAmount,
			TaxAmount:     inv.TaxAmount,
			TotalAmount:   inv.TotalAmount,
		}
	}
	return items
}

// InvoiceSearchRequest carries the raw search parameters
type InvoiceSearchRequest struct {
	Number        string           `form:"docNo"`
	CustomerCode  string           `form:"customer"`
	From          *time.Time       `form:"from" time_format:"2006-01-02"`
	To            *time.Time       `form:"to" time_format:"2006-01-02"`
	PaymentMethod string           `form:"paymentMethod"`
	MinTotal      *decimal.Decimal `form:"minTotal"`
	MaxTotal      *decimal.Decimal `form:"maxTotal"`
}

// =============================================================================
// Credit Note DTOs
// =============================================================================

// CreditNoteRequest is the body of credit-note create and update. An empty customer code
// means the customer of the source invoice.
type CreditNoteRequest struct {
	Number            string        `json:"number" binding:"max=10"`
	IssueDate         time.Time     `json:"issue_date"`
	InvoiceNumber     string        `json:"invoice_number" binding:"required,max=10"`
	CustomerCode      string        `json:"customer_code" binding:"max=10"`
	Description       string        `json:"description" binding:"max=150"`
	ReductionAccount  string        `json:"reduction_account" binding:"required,max=10"`
	SettlementAccount string        `json:"settlement_account" binding:"required,max=10"`
	TaxAccount        string        `json:"tax_account" binding:"max=10"`
	TaxRate           string        `json:"tax_rate" binding:"max=10"`
	Lines             []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

func (r CreditNoteRequest) creditNote() *billing.CreditNote {
	return &billing.CreditNote{
		Number:            r.Number,
		IssueDate:         r.IssueDate,
		InvoiceNumber:     r.InvoiceNumber,
		CustomerCode:      r.CustomerCode,
		Description:       r.Description,
		ReductionAccount:  r.ReductionAccount,
		SettlementAccount: r.SettlementAccount,
		TaxAccount:        r.TaxAccount,
		TaxRate:           r.TaxRate,
	}
}

// CreditNoteResponse represents a credit note in API responses
type CreditNoteResponse struct {
	Number            string          `json:"number"`
	IssueDate         time.Time       `json:"issue_date"`
	InvoiceNumber     string          `json:"invoice_number"`
	CustomerCode      string          `json:"customer_code"`
	Description       string          `json:"description,omitempty"`
	ReductionAccount  string          `json:"reduction_account"`
	SettlementAccount string          `json:"settlement_account"`
	TaxAccount        string          `json:"tax_account,omitempty"`
	TaxRate           string          `json:"tax_rate,omitempty"`
	NetAmount         decimal.Decimal `json:"net_amount"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Lines             []LineResponse  `json:"lines"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreditNoteListItem is the header-only view used by listings
type CreditNoteListItem struct {
	Number        string          `json:"number"`
	IssueDate     time.Time       `json:"issue_date"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerCode  string          `json:"customer_code"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// ToCreditNoteResponse converts a domain CreditNote to CreditNoteResponse
func ToCreditNoteResponse(cn *billing.CreditNote, names map[string]string) CreditNoteResponse {
	return CreditNoteResponse{
		Number:            cn.Number,
		IssueDate:         cn.IssueDate,
		InvoiceNumber:     cn.InvoiceNumber,
		CustomerCode:      cn.CustomerCode,
		Description:       cn.Description,
		ReductionAccount:  cn.ReductionAccount,
		SettlementAccount: cn.SettlementAccount,
		TaxAccount:        cn.TaxAccount,
		TaxRate:           cn.TaxRate,
		NetAmount:         cn.NetAmount,
		TaxAmount:         cn.TaxAmount,
		TotalAmount:       cn.TotalAmount,
		Lines:             toLineResponses(cn.Lines, names),
		CreatedAt:         cn.CreatedAt,
		UpdatedAt:         cn.UpdatedAt,
	}
}

// ToCreditNoteListItems converts credit notes to list items
func ToCreditNoteListItems(notes []billing.CreditNote) []CreditNoteListItem {
	items := make([]CreditNoteListItem, len(notes))
	for i, cn := range notes {
		items[i] = CreditNoteListItem{
			Number:        cn.Number,
			IssueDate:     cn.IssueDate,
			InvoiceNumber: cn.InvoiceNumber,
			CustomerCode:  cn.CustomerCode,
			NetAmount:     cn.NetAmount,
			TaxAmount:     cn.TaxAmount,
			TotalAmount:   cn.TotalAmount,
		}
	}
	return items
}

// CreditNoteSearchRequest carries the raw search parameters
type CreditNoteSearchRequest struct {
	Number        string           `form:"docNo"`
	InvoiceNumber string           `form:"invoice"`
	CustomerCode  string           `form:"customer"`
	From          *time.Time       `form:"from" time_format:"2006-01-02"`
	To            *time.Time       `form:"to" time_format:"2006-01-02"`
	MinNet        *decimal.Decimal `form:"minNet"`
	MaxNet        *decimal.Decimal `form:"maxNet"`
}

// =============================================================================
// Statistics DTOs
// =============================================================================

// InvoiceStatsResponse groups invoice statistics over a date range
type InvoiceStatsResponse struct {
	From            time.Time                      `json:"from"`
	To              time.Time                      `json:"to"`
	Summary         billing.InvoiceSummary         `json:"summary"`
	ByCustomer      []billing.CustomerRevenue      `json:"by_customer"`
	ByProduct       []billing.ProductSales         `json:"by_product"`
	ByPaymentMethod []billing.PaymentMethodRevenue `json:"by_payment_method"`
}

// MonthlyRevenueResponse lists the twelve months of a year
type MonthlyRevenueResponse struct {
	Year   int                      `json:"year"`
	Months []billing.MonthlyRevenue `json:"months"`
}

// CreditNoteStatsResponse groups credit-note statistics over a date range
type CreditNoteStatsResponse struct {
	From       time.Time                  `json:"from"`
	To         time.Time                  `json:"to"`
	Summary    billing.CreditNoteSummary  `json:"summary"`
	ByCustomer []billing.CustomerRevenue  `json:"by_customer"`
	ByProduct  []billing.ProductSales     `json:"by_product"`
	ByInvoice  []billing.InvoiceReduction `json:"by_invoice"`
}

// DocumentLinkResponse points at an archived document
type DocumentLinkResponse struct {
	Number    string    `json:"number"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
