package integration

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	billingapp "github.com/erp/accounting/internal/application/billing"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingFlow_Postgres(t *testing.T) {
	api := newClient(t)
	api.seed()

	w := api.mustCreate("/invoices", invoiceRequest("2"))
	invoice := testutil.DecodeData[billingapp.InvoiceResponse](t, w)
	assert.Equal(t, "HD0001", invoice.Number)
	assert.Equal(t, "330000", invoice.TotalAmount.String())

	price := decimal.RequireFromString("150000")
	quantity := decimal.RequireFromString("1")
	w = api.mustCreate("/credit-notes", billingapp.CreditNoteRequest{
		IssueDate:         testutil.Date(2026, time.March, 20),
		InvoiceNumber:     "HD0001",
		ReductionAccount:  "5213",
		SettlementAccount: "131",
		TaxAccount:        "3331",
		TaxRate:           "10",
		Lines:             []billingapp.LineRequest{{ProductCode: "SP0001", Quantity: &quantity, UnitPrice: &price}},
	})
	note := testutil.DecodeData[billingapp.CreditNoteResponse](t, w)
	assert.Equal(t, "PH0001", note.Number)
	assert.Equal(t, "165000", note.TotalAmount.String())

	w = api.get("/invoices/stats/monthly?year=2026")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)
	monthly := testutil.DecodeData[billingapp.MonthlyRevenueResponse](t, w)
	require.Len(t, monthly.Months, 12)
	assert.Equal(t, int64(1), monthly.Months[2].Count)
	assert.Equal(t, "330000", monthly.Months[2].Total.String())
	assert.Zero(t, monthly.Months[3].Count)

	w = api.get("/credit-notes/stats?from=2026-03-01&to=2026-03-31")
	testutil.AssertSuccessResponse(t, w, http.StatusOK)

	testutil.AssertErrorResponse(t, api.delete("/invoices/HD0001"), http.StatusBadRequest,
		"invoice HD0001 has credit notes and cannot be deleted")
	testutil.AssertErrorResponse(t, api.delete("/customers/KH0001"), http.StatusBadRequest,
		"customer KH0001 is referenced by invoices or credit notes")

	testutil.AssertSuccessResponse(t, api.delete("/credit-notes/PH0001"), http.StatusOK)
	testutil.AssertSuccessResponse(t, api.delete("/invoices/HD0001"), http.StatusOK)
	testutil.AssertSuccessResponse(t, api.delete("/customers/KH0001"), http.StatusOK)
}

func TestInvoiceNumbering_Concurrent(t *testing.T) {
	const workers = 6
	api := newClient(t, func(cfg *config.Config) { cfg.Billing.NumberRetries = workers + 1 })
	api.seed()

	var wg sync.WaitGroup
	responses := make([]*httptest.ResponseRecorder, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			responses[i] = api.post("/invoices", invoiceRequest("1"))
		}()
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, w := range responses {
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		number := testutil.DecodeData[billingapp.InvoiceResponse](t, w).Number
		assert.False(t, seen[number], "number %s assigned twice", number)
		seen[number] = true
	}
	for i := 1; i <= workers; i++ {
		assert.True(t, seen[fmt.Sprintf("HD%04d", i)], "HD%04d missing", i)
	}
}
