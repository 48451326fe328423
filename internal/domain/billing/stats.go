package billing

import (
	"github.com/shopspring/decimal"
)

// InvoiceSummary aggregates invoice amounts over a period. Empty periods report zeros.
type InvoiceSummary struct {
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"` // sum of net amounts
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CustomerRevenue is revenue grouped by customer
type CustomerRevenue struct {
	CustomerCode string          `json:"customer_code"`
	CustomerName string          `json:"customer_name"`
	Count        int64           `json:"count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ProductSales is quantity and line amount grouped by product
type ProductSales struct {
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentMethodRevenue is invoice count and total payable grouped by payment method
type PaymentMethodRevenue struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// MonthlyRevenue is one month of invoice totals within a year
type MonthlyRevenue struct {
	Month    int             `json:"month"`
	Count    int64           `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// CreditNoteSummary aggregates credit-note amounts over a period
type CreditNoteSummary struct {
	Count int64           `json:"count"`
	Net   decimal.Decimal `json:"net"`
	Tax   decimal.Decimal `json:"tax"`
	Total decimal.Decimal `json:"total"`
}

// InvoiceReduction is the credit-note count and net amount grouped by source invoice
type InvoiceReduction struct {
	InvoiceNumber string          `json:"invoice_number"`
	Count         int64           `json:"count"`
	Net           decimal.Decimal `json:"net"`
}

// FillMonths returns twelve entries, one per month, using rows where present and zeros elsewhere
func FillMonths(rows []MonthlyRevenue) []MonthlyRevenue {
	out := make([]MonthlyRevenue, 12)
	for i := range out {
		out[i] = MonthlyRevenue{
			Month:    i + 1,
			Revenue:  decimal.Zero,
			Discount: decimal.Zero,
			Tax:      decimal.Zero,
			Total:    decimal.Zero,
		}
	}
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			out[r.Month-1] = r
		}
	}
	return out
}
