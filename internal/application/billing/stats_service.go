package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/shared"
)

// StatsService answers grouped statistics over invoices and credit notes
type StatsService struct {
	invoiceStats billing.InvoiceStats
	noteStats    billing.CreditNoteStats
	location     *time.Location
}

// NewStatsService creates a new StatsService. Months are bucketed in loc; nil means UTC.
func NewStatsService(invoiceStats billing.InvoiceStats, noteStats billing.CreditNoteStats, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		invoiceStats: invoiceStats,
		noteStats:    noteStats,
		location:     loc,
	}
}

func requireRange(from, to *time.Time) (shared.DateRange, error) {
	r := dateRange(from, to)
	if !r.IsComplete() {
		return r, shared.NewInvalidInput("both from and to dates are required")
	}
	return r, r.Validate()
}

// Invoices aggregates invoices issued within [from, to]
func (s *StatsService) Invoices(ctx context.Context, from, to *time.Time) (*InvoiceStatsResponse, error) {
	r, err := requireRange(from, to)
	if err != nil {
		return nil, err
	}

	summary, err := s.invoiceStats.Summary(ctx, r)
	if err != nil {
		return nil, err
	}
	byCustomer, err := s.invoiceStats.RevenueByCustomer(ctx, r)
	if err != nil {
		return nil, err
	}
	byProduct, err := s.invoiceStats.SalesByProduct(ctx, r)
	if err != nil {
		return nil, err
	}
	byMethod, err := s.invoiceStats.RevenueByPaymentMethod(ctx, r)
	if err != nil {
		return nil, err
	}

	return &InvoiceStatsResponse{
		From:            r.From,
		To:              r.To,
		Summary:         summary,
		ByCustomer:      nonNil(byCustomer),
		ByProduct:       nonNil(byProduct),
		ByPaymentMethod: nonNil(byMethod),
	}, nil
}

// MonthlyRevenue returns twelve months of invoice totals for year
func (s *StatsService) MonthlyRevenue(ctx context.Context, year int) (*MonthlyRevenueResponse, error) {
	if year < 1900 || year > 9999 {
		return nil, shared.NewInvalidInput("year %d is out of range", year)
	}
	rows, err := s.invoiceStats.RevenueByMonth(ctx, year, s.location)
	if err != nil {
		return nil, err
	}
	return &MonthlyRevenueResponse{Year: year, Months: billing.FillMonths(rows)}, nil
}

// CreditNotes aggregates credit notes issued within [from, to]
func (s *StatsService) CreditNotes(ctx context.Context, from, to *time.Time) (*CreditNoteStatsResponse, error) {
	r, err := requireRange(from, to)
	if err != nil {
		return nil, err
	}

	summary, err := s.noteStats.Summary(ctx, r)
	if err != nil {
		return nil, err
	}
	byCustomer, err := s.noteStats.ReductionByCustomer(ctx, r)
	if err != nil {
		return nil, err
	}
	byProduct, err := s.noteStats.ReductionByProduct(ctx, r)
	if err != nil {
		return nil, err
	}
	byInvoice, err := s.noteStats.ReductionByInvoice(ctx, r)
	if err != nil {
		return nil, err
	}

	return &CreditNoteStatsResponse{
		From:       r.From,
		To:         r.To,
		Summary:    summary,
		ByCustomer: nonNil(byCustomer),
		ByProduct:  nonNil(byProduct),
		ByInvoice:  nonNil(byInvoice),
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
