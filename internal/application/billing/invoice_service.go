// Package billing provides the invoice and credit-note use cases.
package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/printing"
	"github.com/erp/accounting/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// InvoiceService coordinates validation, pricing and persistence of invoices
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	noteRepo    billing.CreditNoteRepository
	customers   CustomerFinder
	accounts    AccountFinder
	products    ProductCatalog
	prices      PriceSource
	lines       *LineValidator
	renderer    printing.PDFRenderer
	company     printing.CompanyInfo
	metrics     DocumentMetrics
	logger      *zap.Logger
}

// InvoiceServiceDeps groups the collaborators of InvoiceService
type InvoiceServiceDeps struct {
	InvoiceRepo billing.InvoiceRepository
	NoteRepo    billing.CreditNoteRepository
	Customers   CustomerFinder
	Accounts    AccountFinder
	Products    ProductCatalog
	Prices      PriceSource
	Renderer    printing.PDFRenderer
	Company     printing.CompanyInfo
	Metrics     DocumentMetrics
	Logger      *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(deps InvoiceServiceDeps) *InvoiceService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	return &InvoiceService{
		invoiceRepo: deps.InvoiceRepo,
		noteRepo:    deps.NoteRepo,
		customers:   deps.Customers,
		accounts:    deps.Accounts,
		products:    deps.Products,
		prices:      deps.Prices,
		lines:       NewLineValidator(deps.Products),
		renderer:    deps.Renderer,
		company:     deps.Company,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// Create validates, prices and stores a new invoice with its lines
func (s *InvoiceService) Create(ctx context.Context, req InvoiceRequest) (*InvoiceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerCode, req.CustomerCode),
		telemetry.WithAttribute(telemetry.SpanAttrLineCount, len(req.Lines)),
	)
	defer span.End()

	var (
		resp *InvoiceResponse
		err  error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels("create_invoice", nil), func(ctx context.Context) {
		resp, err = s.create(ctx, req)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		telemetry.SpanAttrDocNo, resp.Number,
		telemetry.SpanAttrAmount, resp.TotalAmount.String(),
	)
	telemetry.SetOK(span)
	return resp, nil
}

func (s *InvoiceService) create(ctx context.Context, req InvoiceRequest) (*InvoiceResponse, error) {
	inv := req.invoice()
	inv.Normalize()
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByCode(ctx, inv.CustomerCode)
	if err != nil {
		return nil, shared.AsMissingReference(err)
	}
	inv.CustomerName = customer.Name

	if err := checkAccounts(ctx, s.accounts, inv.Accounts()); err != nil {
		return nil, err
	}

	products, err := s.lines.ValidateInvoiceLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	if inv.Number != "" {
		exists, err := s.invoiceRepo.ExistsByNumber(ctx, inv.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflict("invoice %s already exists", inv.Number)
		}
	}

	if inv.Lines, err = s.buildLines(ctx, req.Lines, products, inv.IssueDate); err != nil {
		return nil, err
	}
	if err := inv.Recalculate(); err != nil {
		return nil, err
	}

	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.metrics.DocumentCreated(DocTypeInvoice, inv.TotalAmount)
	s.logger.Info("Invoice created",
		zap.String("number", inv.Number),
		zap.String("customer", inv.CustomerCode),
		zap.String("total", inv.TotalAmount.String()),
	)

	response := ToInvoiceResponse(inv, productNames(products))
	return &response, nil
}

// Update replaces the header fields and every line of an invoice
func (s *InvoiceService) Update(ctx context.Context, number string, req InvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	next := req.invoice()
	if err := inv.CheckImmutable(next); err != nil {
		return nil, err
	}
	if next.IssueDate.IsZero() {
		next.IssueDate = inv.IssueDate
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	if err := checkAccounts(ctx, s.accounts, next.Accounts()); err != nil {
		return nil, err
	}

	products, err := s.lines.ValidateInvoiceLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	if next.Lines, err = s.buildLines(ctx, req.Lines, products, next.IssueDate); err != nil {
		return nil, err
	}

	if err := inv.ApplyChanges(next); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.metrics.DocumentUpdated(DocTypeInvoice)
	s.logger.Info("Invoice updated", zap.String("number", inv.Number))

	response := ToInvoiceResponse(inv, productNames(products))
	return &response, nil
}

// Delete removes an invoice and its lines unless credit notes refer to it
func (s *InvoiceService) Delete(ctx context.Context, number string) error {
	if _, err := s.invoiceRepo.FindByNumber(ctx, number); err != nil {
		return err
	}

	hasNotes, err := s.invoiceRepo.HasCreditNotes(ctx, number)
	if err != nil {
		return err
	}
	if hasNotes {
		return shared.NewConflict("invoice %s has credit notes and cannot be deleted", number)
	}

	if err := s.invoiceRepo.Delete(ctx, number); err != nil {
		return err
	}
	s.metrics.DocumentDeleted(DocTypeInvoice)
	s.logger.Info("Invoice deleted", zap.String("number", number))
	return nil
}

// GetByNumber loads an invoice with its lines
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	names, err := lookupNames(ctx, s.products, inv.Lines)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv, names)
	return &response, nil
}

// List retrieves a page of invoices
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[InvoiceListItem], error) {
	filter = filter.Normalize()
	invoices, total, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[InvoiceListItem]{}, err
	}
	return pageOf(invoices, total, filter, ToInvoiceListItems), nil
}

// Search applies the single winning filter of req
func (s *InvoiceService) Search(ctx context.Context, req InvoiceSearchRequest, filter shared.Filter) (shared.Paginated[InvoiceListItem], error) {
	criteria := billing.InvoiceCriteria{
		Number:        req.Number,
		CustomerCode:  req.CustomerCode,
		Range:         dateRange(req.From, req.To),
		PaymentMethod: req.PaymentMethod,
		Total:         billing.AmountRange{Min: req.MinTotal, Max: req.MaxTotal},
	}
	mode, criteria := criteria.Resolve()
	if err := criteria.Range.Validate(); err != nil {
		return shared.Paginated[InvoiceListItem]{}, err
	}
	if err := criteria.Total.Validate(); err != nil {
		return shared.Paginated[InvoiceListItem]{}, err
	}

	filter = filter.Normalize()
	invoices, total, err := s.invoiceRepo.Search(ctx, criteria, filter)
	if err != nil {
		return shared.Paginated[InvoiceListItem]{}, err
	}
	s.logger.Debug("Invoice search", zap.String("mode", string(mode)), zap.Int64("total", total))
	return pageOf(invoices, total, filter, ToInvoiceListItems), nil
}

// ByCustomer lists the invoices of a customer
func (s *InvoiceService) ByCustomer(ctx context.Context, customerCode string) ([]InvoiceListItem, error) {
	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerCode)
	if err != nil {
		return nil, err
	}
	return ToInvoiceListItems(invoices), nil
}

// ByProduct lists invoices with a line for the product, optionally within a date range
func (s *InvoiceService) ByProduct(ctx context.Context, productCode string, r shared.DateRange) ([]InvoiceListItem, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindByProduct(ctx, productCode, r)
	if err != nil {
		return nil, err
	}
	return ToInvoiceListItems(invoices), nil
}

// CreditNotes lists the credit notes issued against an invoice
func (s *InvoiceService) CreditNotes(ctx context.Context, number string) ([]CreditNoteListItem, error) {
	if _, err := s.invoiceRepo.FindByNumber(ctx, number); err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.FindByInvoice(ctx, number)
	if err != nil {
		return nil, err
	}
	return ToCreditNoteListItems(notes), nil
}

// NextNumber previews the number the next generated invoice would receive
func (s *InvoiceService) NextNumber(ctx context.Context) (string, error) {
	return s.invoiceRepo.NextNumber(ctx)
}

// PDF renders an invoice
func (s *InvoiceService) PDF(ctx context.Context, number string) ([]byte, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	names, err := lookupNames(ctx, s.products, inv.Lines)
	if err != nil {
		return nil, err
	}

	customer := printing.CustomerInfo{Code: inv.CustomerCode, Name: inv.CustomerName}
	if c, err := s.customers.FindByCode(ctx, inv.CustomerCode); err == nil {
		customer.Address = c.Address
		customer.TaxID = c.TaxID
	}

	result, err := s.renderer.Render(ctx, &printing.DocumentData{
		Meta: printing.DocumentMeta{
			DocType:   printing.DocTypeInvoice,
			DocNo:     inv.Number,
			IssueDate: inv.IssueDate,
			Remark:    inv.Description,
		},
		Company: s.company,
		Document: &printing.InvoiceData{
			Customer:       customer,
			PaymentMethod:  inv.PaymentMethod,
			Lines:          printLines(inv.Lines, names),
			GrossAmount:    inv.GrossAmount(),
			DiscountRate:   inv.DiscountRate,
			DiscountAmount: inv.DiscountAmount,
			NetAmount:      inv.NetAmount,
			TaxRate:        taxRateShown(inv.TaxRate, inv.HasTaxAccount()),
			TaxAmount:      inv.TaxAmount,
			TotalAmount:    inv.TotalAmount,
		},
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// buildLines turns validated requests into lines. Invoice lines without a price, or with a
// zero price, take the price in force at the issue date.
func (s *InvoiceService) buildLines(ctx context.Context, reqs []LineRequest, products map[string]catalog.Product, issued time.Time) ([]billing.Line, error) {
	lines := make([]billing.Line, len(reqs))
	for i, r := range reqs {
		product := products[r.ProductCode]
		line := billing.Line{
			ProductCode: r.ProductCode,
			Unit:        r.Unit,
			Quantity:    *r.Quantity,
		}
		if line.Unit == "" {
			line.Unit = product.Unit
		}
		if r.UnitPrice != nil && !r.UnitPrice.IsZero() {
			line.UnitPrice = *r.UnitPrice
		} else {
			price, err := s.prices.UnitPrice(ctx, r.ProductCode, issued)
			if err != nil {
				return nil, err
			}
			line.UnitPrice = price
		}
		lines[i] = line
	}
	return lines, nil
}

func dateRange(from, to *time.Time) shared.DateRange {
	var r shared.DateRange
	if from != nil {
		r.From = *from
	}
	if to != nil {
		r.To = endOfDay(*to)
	}
	return r
}

// endOfDay widens a date-only bound so that the whole day is included
func endOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}

// taxRateShown hides a tax rate that produced no tax because no tax account was given
func taxRateShown(rate string, hasTaxAccount bool) string {
	if !hasTaxAccount {
		return ""
	}
	return rate
}
