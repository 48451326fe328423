package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/partner"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	invoices  *MockInvoiceRepository
	notes     *MockCreditNoteRepository
	customers *MockCustomerFinder
	accounts  *MockAccountFinder
	products  *MockProductCatalog
	prices    *MockPriceSource
	renderer  *MockRenderer
	svc       *InvoiceService
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoices:  new(MockInvoiceRepository),
		notes:     new(MockCreditNoteRepository),
		customers: new(MockCustomerFinder),
		accounts:  new(MockAccountFinder),
		products:  new(MockProductCatalog),
		prices:    new(MockPriceSource),
		renderer:  new(MockRenderer),
	}
	f.svc = NewInvoiceService(InvoiceServiceDeps{
		InvoiceRepo: f.invoices,
		NoteRepo:    f.notes,
		Customers:   f.customers,
		Accounts:    f.accounts,
		Products:    f.products,
		Prices:      f.prices,
		Renderer:    f.renderer,
		Company:     printing.CompanyInfo{Name: "ACME"},
	})
	return f
}

var issued = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func scenarioRequest() InvoiceRequest {
	return InvoiceRequest{
		IssueDate:      issued,
		CustomerCode:   "KH0001",
		PaymentMethod:  "Bank transfer",
		DebitAccount:   "131",
		RevenueAccount: "511",
		TaxAccount:     "3331",
		TaxRate:        "10%",
		DiscountRate:   "10%",
		Lines: []LineRequest{
			{ProductCode: "SP0001", Quantity: dp("10")},
			{ProductCode: "SP0002", Quantity: dp("1"), UnitPrice: dp("100.00")},
		},
	}
}

func (f *invoiceFixture) expectReferences(ctx context.Context) {
	f.customers.On("FindByCode", ctx, "KH0001").Return(&partner.Customer{Code: "KH0001", Name: "An Phat"}, nil)
	f.accounts.On("FindByCodes", ctx, mock.Anything).Return(chart("131", "511", "3331", "521"), nil)
	f.products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0001", "SP0002", "SP0003"), nil)
}

// =============================================================================
// Create
// =============================================================================

func TestInvoiceService_Create_PricesAndTotals(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	f.expectReferences(ctx)
	f.prices.On("UnitPrice", ctx, "SP0001", issued).Return(d("5.00"), nil)
	f.invoices.On("Create", ctx, mock.AnythingOfType("*billing.Invoice")).Run(func(args mock.Arguments) {
		args.Get(1).(*billing.Invoice).Number = "HD0001"
	}).Return(nil)

	resp, err := f.svc.Create(ctx, scenarioRequest())
	require.NoError(t, err)

	assert.Equal(t, "HD0001", resp.Number)
	assert.Equal(t, "An Phat", resp.CustomerName)
	assert.True(t, resp.GrossAmount.Equal(d("150")), "gross %s", resp.GrossAmount)
	assert.True(t, resp.DiscountAmount.Equal(d("15")), "discount %s", resp.DiscountAmount)
	assert.True(t, resp.NetAmount.Equal(d("135")), "net %s", resp.NetAmount)
	assert.True(t, resp.TaxAmount.Equal(d("14")), "tax %s", resp.TaxAmount)
	assert.True(t, resp.TotalAmount.Equal(d("149")), "total %s", resp.TotalAmount)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "m", resp.Lines[0].Unit, "unit defaults to the product unit")
	assert.Equal(t, "Pipe", resp.Lines[0].ProductName)
	f.invoices.AssertNotCalled(t, "ExistsByNumber", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_ZeroPriceIsResolved(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	f.expectReferences(ctx)
	f.prices.On("UnitPrice", ctx, "SP0003", issued).Return(d("1.50"), nil)
	f.invoices.On("Create", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	req := scenarioRequest()
	req.TaxRate, req.DiscountRate = "", ""
	req.Lines = []LineRequest{{ProductCode: "SP0003", Quantity: dp("4"), UnitPrice: dp("0")}}

	resp, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.Lines[0].UnitPrice.Equal(d("1.5")))
	assert.True(t, resp.TotalAmount.Equal(d("6")))
	f.prices.AssertExpectations(t)
}

func TestInvoiceService_Create_TaxRateWithoutTaxAccountYieldsZeroTax(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	f.expectReferences(ctx)
	f.invoices.On("Create", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	req := scenarioRequest()
	req.TaxAccount = ""
	req.Lines[0].UnitPrice = dp("5")

	resp, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.True(t, resp.TaxAmount.IsZero())
	assert.True(t, resp.TotalAmount.Equal(resp.NetAmount))
}

func TestInvoiceService_Create_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(f *invoiceFixture)
		mutate  func(r *InvoiceRequest)
		wantErr error
	}{
		{
			name: "unknown customer",
			setup: func(f *invoiceFixture) {
				f.customers.On("FindByCode", ctx, "KH0001").Return(nil, shared.NewNotFound("customer KH0001 not found"))
			},
			wantErr: shared.ErrMissingReference,
		},
		{
			name: "unknown account",
			setup: func(f *invoiceFixture) {
				f.customers.On("FindByCode", ctx, "KH0001").Return(&partner.Customer{Code: "KH0001"}, nil)
				f.accounts.On("FindByCodes", ctx, mock.Anything).Return(chart("131", "511"), nil)
			},
			wantErr: shared.ErrMissingReference,
		},
		{
			name: "unknown product",
			setup: func(f *invoiceFixture) {
				f.customers.On("FindByCode", ctx, "KH0001").Return(&partner.Customer{Code: "KH0001"}, nil)
				f.accounts.On("FindByCodes", ctx, mock.Anything).Return(chart("131", "511", "3331"), nil)
				f.products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0002"), nil)
			},
			wantErr: shared.ErrMissingReference,
		},
		{
			name:  "zero quantity",
			setup: func(f *invoiceFixture) { f.expectReferences(ctx) },
			mutate: func(r *InvoiceRequest) {
				r.Lines[1].Quantity = dp("0")
			},
			wantErr: shared.ErrInvalidInput,
		},
		{
			name:  "no lines",
			setup: func(f *invoiceFixture) { f.expectReferences(ctx) },
			mutate: func(r *InvoiceRequest) {
				r.Lines = nil
			},
			wantErr: shared.ErrInvalidInput,
		},
		{
			name:  "non-numeric discount rate",
			setup: func(f *invoiceFixture) { f.expectReferences(ctx) },
			mutate: func(r *InvoiceRequest) {
				r.DiscountRate = "ten"
				r.Lines[0].UnitPrice = dp("5")
			},
			wantErr: shared.ErrInvalidInput,
		},
		{
			name: "explicit number already used",
			setup: func(f *invoiceFixture) {
				f.expectReferences(ctx)
				f.invoices.On("ExistsByNumber", ctx, "HD0009").Return(true, nil)
			},
			mutate: func(r *InvoiceRequest) {
				r.Number = "HD0009"
			},
			wantErr: shared.ErrConflict,
		},
		{
			name:    "missing debit account",
			mutate:  func(r *InvoiceRequest) { r.DebitAccount = "  " },
			wantErr: shared.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInvoiceFixture()
			if tt.setup != nil {
				tt.setup(f)
			}
			req := scenarioRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			_, err := f.svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
			f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestInvoiceService_Create_StorageFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	f.expectReferences(ctx)
	f.prices.On("UnitPrice", ctx, "SP0001", issued).Return(d("5"), nil)
	boom := errors.New("tx aborted")
	f.invoices.On("Create", ctx, mock.AnythingOfType("*billing.Invoice")).Return(boom)

	_, err := f.svc.Create(ctx, scenarioRequest())
	assert.ErrorIs(t, err, boom)
}

// =============================================================================
// Update / Delete
// =============================================================================

func storedInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	inv := &billing.Invoice{
		Number:         "HD0001",
		IssueDate:      issued,
		CustomerCode:   "KH0001",
		CustomerName:   "An Phat",
		DebitAccount:   "131",
		RevenueAccount: "511",
		Lines: []billing.Line{
			{ProductCode: "SP0001", Unit: "m", Quantity: d("10"), UnitPrice: d("5")},
		},
	}
	require.NoError(t, inv.Recalculate())
	return inv
}

func TestInvoiceService_Update_ImmutableFields(t *testing.T) {
	ctx := context.Background()

	for name, mutate := range map[string]func(r *InvoiceRequest){
		"number":   func(r *InvoiceRequest) { r.Number = "HD0002" },
		"customer": func(r *InvoiceRequest) { r.CustomerCode = "KH0002" },
	} {
		t.Run(name, func(t *testing.T) {
			f := newInvoiceFixture()
			stored := storedInvoice(t)
			f.invoices.On("FindByNumber", ctx, "HD0001").Return(stored, nil)

			req := scenarioRequest()
			mutate(&req)
			_, err := f.svc.Update(ctx, "HD0001", req)
			assert.ErrorIs(t, err, shared.ErrConflict)
			f.invoices.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			assert.True(t, stored.TotalAmount.Equal(d("50")), "stored invoice untouched")
		})
	}
}

func TestInvoiceService_Update_ReplacesLines(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	f.invoices.On("FindByNumber", ctx, "HD0001").Return(storedInvoice(t), nil)
	f.accounts.On("FindByCodes", ctx, mock.Anything).Return(chart("131", "511"), nil)
	f.products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0002", "SP0003"), nil)
	f.invoices.On("Update", ctx, mock.MatchedBy(func(inv *billing.Invoice) bool {
		return len(inv.Lines) == 2 && !inv.ContainsProduct("SP0001") && inv.IssueDate.Equal(issued)
	})).Return(nil)

	resp, err := f.svc.Update(ctx, "HD0001", InvoiceRequest{
		CustomerCode:   "KH0001",
		DebitAccount:   "131",
		RevenueAccount: "511",
		Lines: []LineRequest{
			{ProductCode: "SP0002", Quantity: dp("2"), UnitPrice: dp("100")},
			{ProductCode: "SP0003", Quantity: dp("10"), UnitPrice: dp("1")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d("210")))
	assert.Equal(t, "An Phat", resp.CustomerName)
	f.invoices.AssertExpectations(t)
}

func TestInvoiceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked by credit notes", func(t *testing.T) {
		f := newInvoiceFixture()
		f.invoices.On("FindByNumber", ctx, "HD0001").Return(storedInvoice(t), nil)
		f.invoices.On("HasCreditNotes", ctx, "HD0001").Return(true, nil)

		err := f.svc.Delete(ctx, "HD0001")
		assert.ErrorIs(t, err, shared.ErrConflict)
		f.invoices.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("absent", func(t *testing.T) {
		f := newInvoiceFixture()
		f.invoices.On("FindByNumber", ctx, "HD0404").Return(nil, shared.NewNotFound("invoice HD0404 not found"))
		assert.ErrorIs(t, f.svc.Delete(ctx, "HD0404"), shared.ErrNotFound)
	})

	t.Run("removed", func(t *testing.T) {
		f := newInvoiceFixture()
		f.invoices.On("FindByNumber", ctx, "HD0001").Return(storedInvoice(t), nil)
		f.invoices.On("HasCreditNotes", ctx, "HD0001").Return(false, nil)
		f.invoices.On("Delete", ctx, "HD0001").Return(nil)
		require.NoError(t, f.svc.Delete(ctx, "HD0001"))
	})
}

// =============================================================================
// Queries
// =============================================================================

func TestInvoiceService_Search_PassesOnlyWinningFilter(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	f.invoices.On("Search", ctx, mock.MatchedBy(func(c billing.InvoiceCriteria) bool {
		return c.CustomerCode == "KH0001" && c.Range.IsComplete() && c.PaymentMethod == "" && c.Total.IsZero() &&
			c.Range.To.After(to)
	}), mock.Anything).Return([]billing.Invoice{*storedInvoice(t)}, int64(1), nil)

	page, err := f.svc.Search(ctx, InvoiceSearchRequest{
		CustomerCode:  "KH0001",
		From:          &from,
		To:            &to,
		PaymentMethod: "Cash",
		MinTotal:      dp("10"),
	}, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "HD0001", page.Items[0].Number)
}

func TestInvoiceService_Search_RejectsInvertedAmounts(t *testing.T) {
	f := newInvoiceFixture()
	_, err := f.svc.Search(context.Background(), InvoiceSearchRequest{MinTotal: dp("10"), MaxTotal: dp("1")}, shared.Filter{})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestInvoiceService_GetByNumber_RoundTripsTotals(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	stored := storedInvoice(t)
	f.invoices.On("FindByNumber", ctx, "HD0001").Return(stored, nil)
	f.products.On("FindByCodes", ctx, []string{"SP0001"}).Return(knownProducts("SP0001"), nil)

	resp, err := f.svc.GetByNumber(ctx, "HD0001")
	require.NoError(t, err)
	assert.Equal(t, stored.TotalAmount.String(), resp.TotalAmount.String())
	assert.Equal(t, stored.NetAmount.String(), resp.NetAmount.String())
}

func TestInvoiceService_PDF(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture()
	f.invoices.On("FindByNumber", ctx, "HD0001").Return(storedInvoice(t), nil)
	f.products.On("FindByCodes", ctx, []string{"SP0001"}).Return(knownProducts("SP0001"), nil)
	f.customers.On("FindByCode", ctx, "KH0001").Return(&partner.Customer{Code: "KH0001", Name: "An Phat", Address: "12 Le Loi"}, nil)
	f.renderer.On("Render", ctx, mock.MatchedBy(func(data *printing.DocumentData) bool {
		inv, ok := data.Document.(*printing.InvoiceData)
		return ok && data.Meta.DocNo == "HD0001" && inv.Customer.Address == "12 Le Loi" && inv.Lines[0].ProductName == "Pipe"
	})).Return(&printing.RenderResult{PDFData: []byte("%PDF-1.3")}, nil)

	pdf, err := f.svc.PDF(ctx, "HD0001")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)
}
