package billing

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/partner"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) Search(ctx context.Context, criteria billing.InvoiceCriteria, filter shared.Filter) ([]billing.Invoice, int64, error) {
	args := m.Called(ctx, criteria, filter)
	return args.Get(0).([]billing.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerCode string) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerCode)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByProduct(ctx context.Context, productCode string, r shared.DateRange) ([]billing.Invoice, error) {
	args := m.Called(ctx, productCode, r)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockInvoiceRepository) HasCreditNotes(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockCreditNoteRepository is a mock implementation of CreditNoteRepository
type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) FindByNumber(ctx context.Context, number string) (*billing.CreditNote, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockCreditNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CreditNote, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.CreditNote), args.Get(1).(int64), args.Error(2)
}

func (m *MockCreditNoteRepository) Search(ctx context.Context, criteria billing.CreditNoteCriteria, filter shared.Filter) ([]billing.CreditNote, int64, error) {
	args := m.Called(ctx, criteria, filter)
	return args.Get(0).([]billing.CreditNote), args.Get(1).(int64), args.Error(2)
}

func (m *MockCreditNoteRepository) FindByInvoice(ctx context.Context, invoiceNumber string) ([]billing.CreditNote, error) {
	args := m.Called(ctx, invoiceNumber)
	return args.Get(0).([]billing.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) Create(ctx context.Context, note *billing.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepository) Update(ctx context.Context, note *billing.CreditNote) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockCreditNoteRepository) Delete(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockCreditNoteRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// =============================================================================
// Mock Collaborators
// =============================================================================

type MockCustomerFinder struct {
	mock.Mock
}

func (m *MockCustomerFinder) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

type MockAccountFinder struct {
	mock.Mock
}

func (m *MockAccountFinder) FindByCodes(ctx context.Context, codes []string) ([]ledger.Account, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

type MockProductCatalog struct {
	mock.Mock
}

func (m *MockProductCatalog) FindByCodes(ctx context.Context, codes []string) (map[string]catalog.Product, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).(map[string]catalog.Product), args.Error(1)
}

type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) UnitPrice(ctx context.Context, productCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, productCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, data *printing.DocumentData) (*printing.RenderResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*printing.RenderResult), args.Error(1)
}

type MockInvoiceStats struct {
	mock.Mock
}

func (m *MockInvoiceStats) Summary(ctx context.Context, r shared.DateRange) (billing.InvoiceSummary, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(billing.InvoiceSummary), args.Error(1)
}

func (m *MockInvoiceStats) RevenueByCustomer(ctx context.Context, r shared.DateRange) ([]billing.CustomerRevenue, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]billing.CustomerRevenue), args.Error(1)
}

func (m *MockInvoiceStats) SalesByProduct(ctx context.Context, r shared.DateRange) ([]billing.ProductSales, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]billing.ProductSales), args.Error(1)
}

func (m *MockInvoiceStats) RevenueByPaymentMethod(ctx context.Context, r shared.DateRange) ([]billing.PaymentMethodRevenue, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]billing.PaymentMethodRevenue), args.Error(1)
}

func (m *MockInvoiceStats) RevenueByMonth(ctx context.Context, year int, loc *time.Location) ([]billing.MonthlyRevenue, error) {
	args := m.Called(ctx, year, loc)
	return args.Get(0).([]billing.MonthlyRevenue), args.Error(1)
}

// =============================================================================
// Fixtures
// =============================================================================

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := d(v)
	return &x
}

var (
	pipe  = catalog.Product{Code: "SP0001", Name: "Pipe", Unit: "m", Price: d("4")}
	valve = catalog.Product{Code: "SP0002", Name: "Valve", Unit: "pc", Price: d("100")}
	bolt  = catalog.Product{Code: "SP0003", Name: "Bolt", Unit: "pc", Price: d("1")}
)

func knownProducts(codes ...string) map[string]catalog.Product {
	all := map[string]catalog.Product{pipe.Code: pipe, valve.Code: valve, bolt.Code: bolt}
	out := make(map[string]catalog.Product)
	for _, c := range codes {
		if p, ok := all[c]; ok {
			out[c] = p
		}
	}
	return out
}

func chart(codes ...string) []ledger.Account {
	out := make([]ledger.Account, len(codes))
	for i, c := range codes {
		out[i] = ledger.Account{Code: c, Name: "Account " + c, Level: 1}
	}
	return out
}

type MockCreditNoteStats struct {
	mock.Mock
}

func (m *MockCreditNoteStats) Summary(ctx context.Context, r shared.DateRange) (billing.CreditNoteSummary, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(billing.CreditNoteSummary), args.Error(1)
}

func (m *MockCreditNoteStats) ReductionByCustomer(ctx context.Context, r shared.DateRange) ([]billing.CustomerRevenue, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]billing.CustomerRevenue), args.Error(1)
}

func (m *MockCreditNoteStats) ReductionByProduct(ctx context.Context, r shared.DateRange) ([]billing.ProductSales, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]billing.ProductSales), args.Error(1)
}

func (m *MockCreditNoteStats) ReductionByInvoice(ctx context.Context, r shared.DateRange) ([]billing.InvoiceReduction, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]billing.InvoiceReduction), args.Error(1)
}

// MockDocumentStore is a mock implementation of DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockDocumentStore) DownloadURL(ctx context.Context, key string) (string, time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockDocumentStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockDocumentRenderer is a mock implementation of DocumentRenderer
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) PDF(ctx context.Context, number string) ([]byte, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
