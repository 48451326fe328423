package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/printing"
	"github.com/erp/accounting/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CreditNoteService coordinates validation and persistence of credit notes
type CreditNoteService struct {
	noteRepo    billing.CreditNoteRepository
	invoiceRepo billing.InvoiceRepository
	customers   CustomerFinder
	accounts    AccountFinder
	products    ProductCatalog
	lines       *LineValidator
	renderer    printing.PDFRenderer
	company     printing.CompanyInfo
	metrics     DocumentMetrics
	logger      *zap.Logger
}

// CreditNoteServiceDeps groups the collaborators of CreditNoteService
type CreditNoteServiceDeps struct {
	NoteRepo    billing.CreditNoteRepository
	InvoiceRepo billing.InvoiceRepository
	Customers   CustomerFinder
	Accounts    AccountFinder
	Products    ProductCatalog
	Renderer    printing.PDFRenderer
	Company     printing.CompanyInfo
	Metrics     DocumentMetrics
	Logger      *zap.Logger
}

// NewCreditNoteService creates a new CreditNoteService
func NewCreditNoteService(deps CreditNoteServiceDeps) *CreditNoteService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = noopMetrics{}
	}
	return &CreditNoteService{
		noteRepo:    deps.NoteRepo,
		invoiceRepo: deps.InvoiceRepo,
		customers:   deps.Customers,
		accounts:    deps.Accounts,
		products:    deps.Products,
		lines:       NewLineValidator(deps.Products),
		renderer:    deps.Renderer,
		company:     deps.Company,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// Create validates and stores a credit note against an existing invoice
func (s *CreditNoteService) Create(ctx context.Context, req CreditNoteRequest) (*CreditNoteResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "credit_note", "create",
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceNumber, req.InvoiceNumber),
		telemetry.WithAttribute(telemetry.SpanAttrLineCount, len(req.Lines)),
	)
	defer span.End()

	resp, err := s.create(ctx, req)
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

func (s *CreditNoteService) create(ctx context.Context, req CreditNoteRequest) (*CreditNoteResponse, error) {
	note := req.creditNote()
	note.Normalize()
	if err := note.Validate(); err != nil {
		return nil, err
	}

	source, err := s.invoiceRepo.FindByNumber(ctx, note.InvoiceNumber)
	if err != nil {
		return nil, shared.AsMissingReference(err)
	}
	if err := note.BindTo(source); err != nil {
		return nil, err
	}

	if err := checkAccounts(ctx, s.accounts, note.Accounts()); err != nil {
		return nil, err
	}

	products, err := s.lines.ValidateCreditNoteLines(ctx, req.Lines, source)
	if err != nil {
		return nil, err
	}

	if note.Number != "" {
		exists, err := s.noteRepo.ExistsByNumber(ctx, note.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflict("credit note %s already exists", note.Number)
		}
	}

	note.Lines = buildCreditLines(req.Lines, source)
	if err := note.Recalculate(); err != nil {
		return nil, err
	}

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.metrics.DocumentCreated(DocTypeCreditNote, note.TotalAmount)
	s.logger.Info("Credit note created",
		zap.String("number", note.Number),
		zap.String("invoice", note.InvoiceNumber),
		zap.String("total", note.TotalAmount.String()),
	)

	response := ToCreditNoteResponse(note, productNames(products))
	return &response, nil
}

// Update replaces the header fields and every line of a credit note
func (s *CreditNoteService) Update(ctx context.Context, number string, req CreditNoteRequest) (*CreditNoteResponse, error) {
	note, err := s.noteRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	next := req.creditNote()
	if err := note.CheckImmutable(next); err != nil {
		return nil, err
	}
	if next.IssueDate.IsZero() {
		next.IssueDate = note.IssueDate
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	source, err := s.invoiceRepo.FindByNumber(ctx, note.InvoiceNumber)
	if err != nil {
		return nil, shared.AsMissingReference(err)
	}

	if err := checkAccounts(ctx, s.accounts, next.Accounts()); err != nil {
		return nil, err
	}

	products, err := s.lines.ValidateCreditNoteLines(ctx, req.Lines, source)
	if err != nil {
		return nil, err
	}
	next.Lines = buildCreditLines(req.Lines, source)

	if err := note.ApplyChanges(next); err != nil {
		return nil, err
	}
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.metrics.DocumentUpdated(DocTypeCreditNote)
	s.logger.Info("Credit note updated", zap.String("number", note.Number))

	response := ToCreditNoteResponse(note, productNames(products))
	return &response, nil
}

// Delete removes a credit note and its lines
func (s *CreditNoteService) Delete(ctx context.Context, number string) error {
	if _, err := s.noteRepo.FindByNumber(ctx, number); err != nil {
		return err
	}
	if err := s.noteRepo.Delete(ctx, number); err != nil {
		return err
	}
	s.metrics.DocumentDeleted(DocTypeCreditNote)
	s.logger.Info("Credit note deleted", zap.String("number", number))
	return nil
}

// GetByNumber loads a credit note with its lines
func (s *CreditNoteService) GetByNumber(ctx context.Context, number string) (*CreditNoteResponse, error) {
	note, err := s.noteRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	names, err := lookupNames(ctx, s.products, note.Lines)
	if err != nil {
		return nil, err
	}
	response := ToCreditNoteResponse(note, names)
	return &response, nil
}

// List retrieves a page of credit notes
func (s *CreditNoteService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CreditNoteListItem], error) {
	filter = filter.Normalize()
	notes, total, err := s.noteRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[CreditNoteListItem]{}, err
	}
	return pageOf(notes, total, filter, ToCreditNoteListItems), nil
}

// Search applies the single winning filter of req
func (s *CreditNoteService) Search(ctx context.Context, req CreditNoteSearchRequest, filter shared.Filter) (shared.Paginated[CreditNoteListItem], error) {
	criteria := billing.CreditNoteCriteria{
		Number:        req.Number,
		InvoiceNumber: req.InvoiceNumber,
		CustomerCode:  req.CustomerCode,
		Range:         dateRange(req.From, req.To),
		Net:           billing.AmountRange{Min: req.MinNet, Max: req.MaxNet},
	}
	mode, criteria := criteria.Resolve()
	if err := criteria.Range.Validate(); err != nil {
		return shared.Paginated[CreditNoteListItem]{}, err
	}
	if err := criteria.Net.Validate(); err != nil {
		return shared.Paginated[CreditNoteListItem]{}, err
	}

	filter = filter.Normalize()
	notes, total, err := s.noteRepo.Search(ctx, criteria, filter)
	if err != nil {
		return shared.Paginated[CreditNoteListItem]{}, err
	}
	s.logger.Debug("Credit note search", zap.String("mode", string(mode)), zap.Int64("total", total))
	return pageOf(notes, total, filter, ToCreditNoteListItems), nil
}

// NextNumber previews the number the next generated credit note would receive
func (s *CreditNoteService) NextNumber(ctx context.Context) (string, error) {
	return s.noteRepo.NextNumber(ctx)
}

// PDF renders a credit note
func (s *CreditNoteService) PDF(ctx context.Context, number string) ([]byte, error) {
	note, err := s.noteRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	names, err := lookupNames(ctx, s.products, note.Lines)
	if err != nil {
		return nil, err
	}

	customer := printing.CustomerInfo{Code: note.CustomerCode}
	if c, err := s.customers.FindByCode(ctx, note.CustomerCode); err == nil {
		customer.Name = c.Name
		customer.Address = c.Address
		customer.TaxID = c.TaxID
	}

	result, err := s.renderer.Render(ctx, &printing.DocumentData{
		Meta: printing.DocumentMeta{
			DocType:   printing.DocTypeCreditNote,
			DocNo:     note.Number,
			IssueDate: note.IssueDate,
			Remark:    note.Description,
		},
		Company: s.company,
		Document: &printing.CreditNoteData{
			Customer:      customer,
			InvoiceNumber: note.InvoiceNumber,
			Lines:         printLines(note.Lines, names),
			NetAmount:     note.NetAmount,
			TaxRate:       taxRateShown(note.TaxRate, note.HasTaxAccount()),
			TaxAmount:     note.TaxAmount,
			TotalAmount:   note.TotalAmount,
		},
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

// buildCreditLines copies validated requests verbatim; the unit defaults to the invoice line's
func buildCreditLines(reqs []LineRequest, source *billing.Invoice) []billing.Line {
	units := make(map[string]string, len(source.Lines))
	for _, l := range source.Lines {
		units[l.ProductCode] = l.Unit
	}
	lines := make([]billing.Line, len(reqs))
	for i, r := range reqs {
		unit := r.Unit
		if unit == "" {
			unit = units[r.ProductCode]
		}
		lines[i] = billing.Line{
			ProductCode: r.ProductCode,
			Unit:        unit,
			Quantity:    *r.Quantity,
			UnitPrice:   *r.UnitPrice,
		}
	}
	return lines
}
