package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
)

// InvoiceRepository persists invoices as header plus lines in one unit of work
type InvoiceRepository interface {
	// FindByNumber loads the invoice with its lines
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	ExistsByNumber(ctx context.Context, number string) (bool, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, int64, error)

	// Search applies resolved criteria; see InvoiceCriteria.Resolve
	Search(ctx context.Context, criteria InvoiceCriteria, filter shared.Filter) ([]Invoice, int64, error)

	FindByCustomer(ctx context.Context, customerCode string) ([]Invoice, error)

	// FindByProduct returns invoices having a line for the product, optionally within a date range
	FindByProduct(ctx context.Context, productCode string, r shared.DateRange) ([]Invoice, error)

	// Create writes header and lines atomically. When Number is empty the next HD number is
	// assigned, retrying on collisions; a collision on a caller-supplied number is Conflict.
	Create(ctx context.Context, invoice *Invoice) error

	// Update rewrites the header and replaces every line atomically
	Update(ctx context.Context, invoice *Invoice) error

	// Delete removes header and lines atomically
	Delete(ctx context.Context, number string) error

	HasCreditNotes(ctx context.Context, number string) (bool, error)

	NextNumber(ctx context.Context) (string, error)
}

// InvoiceStats answers grouped statistics over invoices
type InvoiceStats interface {
	Summary(ctx context.Context, r shared.DateRange) (InvoiceSummary, error)
	RevenueByCustomer(ctx context.Context, r shared.DateRange) ([]CustomerRevenue, error)
	SalesByProduct(ctx context.Context, r shared.DateRange) ([]ProductSales, error)
	RevenueByPaymentMethod(ctx context.Context, r shared.DateRange) ([]PaymentMethodRevenue, error)
	RevenueByMonth(ctx context.Context, year int, loc *time.Location) ([]MonthlyRevenue, error)
}

// CreditNoteRepository persists credit notes as header plus lines in one unit of work
type CreditNoteRepository interface {
	FindByNumber(ctx context.Context, number string) (*CreditNote, error)

	ExistsByNumber(ctx context.Context, number string) (bool, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]CreditNote, int64, error)

	// Search applies resolved criteria; see CreditNoteCriteria.Resolve
	Search(ctx context.Context, criteria CreditNoteCriteria, filter shared.Filter) ([]CreditNote, int64, error)

	FindByInvoice(ctx context.Context, invoiceNumber string) ([]CreditNote, error)

	// Create writes header and lines atomically, assigning the next PH number when Number is empty
	Create(ctx context.Context, note *CreditNote) error

	Update(ctx context.Context, note *CreditNote) error

	Delete(ctx context.Context, number string) error

	NextNumber(ctx context.Context) (string, error)
}

// CreditNoteStats answers grouped statistics over credit notes
type CreditNoteStats interface {
	Summary(ctx context.Context, r shared.DateRange) (CreditNoteSummary, error)
	ReductionByCustomer(ctx context.Context, r shared.DateRange) ([]CustomerRevenue, error)
	ReductionByProduct(ctx context.Context, r shared.DateRange) ([]ProductSales, error)
	ReductionByInvoice(ctx context.Context, r shared.DateRange) ([]InvoiceReduction, error)
}
