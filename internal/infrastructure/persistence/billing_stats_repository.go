package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInvoiceStats answers grouped invoice statistics with SQL aggregates.
// Every SUM is wrapped in COALESCE so empty groups report zero.
type GormInvoiceStats struct {
	db *gorm.DB
}

// NewGormInvoiceStats creates a new GormInvoiceStats
func NewGormInvoiceStats(db *gorm.DB) *GormInvoiceStats {
	return &GormInvoiceStats{db: db}
}

// Summary totals the invoices issued within r
func (s *GormInvoiceStats) Summary(ctx context.Context, r shared.DateRange) (billing.InvoiceSummary, error) {
	var summary billing.InvoiceSummary
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select(`COUNT(*) AS count,
			COALESCE(SUM(net_amount), 0) AS revenue,
			COALESCE(SUM(discount_amount), 0) AS discount,
			COALESCE(SUM(tax_amount), 0) AS tax,
			COALESCE(SUM(total_amount), 0) AS total`).
		Where("issue_date BETWEEN ? AND ?", r.From, r.To).
		Scan(&summary).Error
	if err != nil {
		return billing.InvoiceSummary{}, fmt.Errorf("failed to summarize invoices: %w", err)
	}
	return summary, nil
}

// RevenueByCustomer groups net revenue by customer, largest first
func (s *GormInvoiceStats) RevenueByCustomer(ctx context.Context, r shared.DateRange) ([]billing.CustomerRevenue, error) {
	rows := []billing.CustomerRevenue{}
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select(`customer_code,
			MAX(customer_name) AS customer_name,
			COUNT(*) AS count,
			COALESCE(SUM(net_amount), 0) AS revenue`).
		Where("issue_date BETWEEN ? AND ?", r.From, r.To).
		Group("customer_code").
		Order("revenue DESC, customer_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group invoice revenue by customer: %w", err)
	}
	return rows, nil
}

// SalesByProduct groups invoiced quantity and line amount by product, largest amount first
func (s *GormInvoiceStats) SalesByProduct(ctx context.Context, r shared.DateRange) ([]billing.ProductSales, error) {
	rows := []billing.ProductSales{}
	err := s.db.WithContext(ctx).
		Table("invoice_lines AS l").
		Joins("JOIN invoices AS i ON i.number = l.invoice_number").
		Joins("LEFT JOIN products AS p ON p.code = l.product_code").
		Select(`l.product_code AS product_code,
			COALESCE(MAX(p.name), '') AS product_name,
			COALESCE(SUM(l.quantity), 0) AS quantity,
			COALESCE(SUM(l.quantity * l.unit_price), 0) AS amount`).
		Where("i.issue_date BETWEEN ? AND ?", r.From, r.To).
		Group("l.product_code").
		Order("amount DESC, product_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group invoice sales by product: %w", err)
	}
	return rows, nil
}

// RevenueByPaymentMethod groups total payable by payment method
func (s *GormInvoiceStats) RevenueByPaymentMethod(ctx context.Context, r shared.DateRange) ([]billing.PaymentMethodRevenue, error) {
	rows := []billing.PaymentMethodRevenue{}
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select(`COALESCE(payment_method, '') AS payment_method,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS total`).
		Where("issue_date BETWEEN ? AND ?", r.From, r.To).
		Group("COALESCE(payment_method, '')").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group invoice revenue by payment method: %w", err)
	}
	return rows, nil
}

// RevenueByMonth groups the invoices of year by calendar month in loc.
// Months without invoices are absent; callers fill them.
func (s *GormInvoiceStats) RevenueByMonth(ctx context.Context, year int, loc *time.Location) ([]billing.MonthlyRevenue, error) {
	if loc == nil {
		loc = time.UTC
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := from.AddDate(1, 0, 0)

	month, args := monthExpression(s.db, "issue_date", loc)
	rows := []billing.MonthlyRevenue{}
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select(month+` AS month,
			COUNT(*) AS count,
			COALESCE(SUM(net_amount), 0) AS revenue,
			COALESCE(SUM(discount_amount), 0) AS discount,
			COALESCE(SUM(tax_amount), 0) AS tax,
			COALESCE(SUM(total_amount), 0) AS total`, args...).
		Where("issue_date >= ? AND issue_date < ?", from, to).
		Group("1").
		Order("1").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group invoice revenue by month: %w", err)
	}
	return rows, nil
}

// monthExpression extracts the calendar month of column. Postgres converts to loc first;
// SQLite stores UTC text and has no zone database.
func monthExpression(db *gorm.DB, column string, loc *time.Location) (string, []any) {
	if db.Dialector.Name() == DriverSQLite {
		return "CAST(strftime('%m', " + column + ") AS INTEGER)", nil
	}
	return "CAST(EXTRACT(MONTH FROM " + column + " AT TIME ZONE ?) AS INTEGER)", []any{loc.String()}
}

// GormCreditNoteStats answers grouped credit-note statistics with SQL aggregates
type GormCreditNoteStats struct {
	db *gorm.DB
}

// NewGormCreditNoteStats creates a new GormCreditNoteStats
func NewGormCreditNoteStats(db *gorm.DB) *GormCreditNoteStats {
	return &GormCreditNoteStats{db: db}
}

// Summary totals the credit notes issued within r
func (s *GormCreditNoteStats) Summary(ctx context.Context, r shared.DateRange) (billing.CreditNoteSummary, error) {
	var summary billing.CreditNoteSummary
	err := s.db.WithContext(ctx).
		Table("credit_notes").
		Select(`COUNT(*) AS count,
			COALESCE(SUM(net_amount), 0) AS net,
			COALESCE(SUM(tax_amount), 0) AS tax,
			COALESCE(SUM(total_amount), 0) AS total`).
		Where("issue_date BETWEEN ? AND ?", r.From, r.To).
		Scan(&summary).Error
	if err != nil {
		return billing.CreditNoteSummary{}, fmt.Errorf("failed to summarize credit notes: %w", err)
	}
	return summary, nil
}

// ReductionByCustomer groups the net reduction by customer, largest first
func (s *GormCreditNoteStats) ReductionByCustomer(ctx context.Context, r shared.DateRange) ([]billing.CustomerRevenue, error) {
	rows := []billing.CustomerRevenue{}
	err := s.db.WithContext(ctx).
		Table("credit_notes AS n").
		Joins("LEFT JOIN customers AS c ON c.code = n.customer_code").
		Select(`n.customer_code AS customer_code,
			COALESCE(MAX(c.name), '') AS customer_name,
			COUNT(*) AS count,
			COALESCE(SUM(n.net_amount), 0) AS revenue`).
		Where("n.issue_date BETWEEN ? AND ?", r.From, r.To).
		Group("n.customer_code").
		Order("revenue DESC, customer_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group credit notes by customer: %w", err)
	}
	return rows, nil
}

// ReductionByProduct groups credited quantity and line amount by product
func (s *GormCreditNoteStats) ReductionByProduct(ctx context.Context, r shared.DateRange) ([]billing.ProductSales, error) {
	rows := []billing.ProductSales{}
	err := s.db.WithContext(ctx).
		Table("credit_note_lines AS l").
		Joins("JOIN credit_notes AS n ON n.number = l.credit_note_number").
		Joins("LEFT JOIN products AS p ON p.code = l.product_code").
		Select(`l.product_code AS product_code,
			COALESCE(MAX(p.name), '') AS product_name,
			COALESCE(SUM(l.quantity), 0) AS quantity,
			COALESCE(SUM(l.quantity * l.unit_price), 0) AS amount`).
		Where("n.issue_date BETWEEN ? AND ?", r.From, r.To).
		Group("l.product_code").
		Order("amount DESC, product_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group credit notes by product: %w", err)
	}
	return rows, nil
}

// ReductionByInvoice groups credit-note count and net amount by source invoice
func (s *GormCreditNoteStats) ReductionByInvoice(ctx context.Context, r shared.DateRange) ([]billing.InvoiceReduction, error) {
	rows := []billing.InvoiceReduction{}
	err := s.db.WithContext(ctx).
		Table("credit_notes").
		Select(`invoice_number,
			COUNT(*) AS count,
			COALESCE(SUM(net_amount), 0) AS net`).
		Where("issue_date BETWEEN ? AND ?", r.From, r.To).
		Group("invoice_number").
		Order("net DESC, invoice_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group credit notes by invoice: %w", err)
	}
	return rows, nil
}
