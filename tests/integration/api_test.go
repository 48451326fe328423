package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	billingapp "github.com/erp/accounting/internal/application/billing"
	catalogapp "github.com/erp/accounting/internal/application/catalog"
	partnerapp "github.com/erp/accounting/internal/application/partner"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/erp/accounting/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// client sends ADMIN requests to an API served over the shared PostgreSQL database
type client struct {
	t     *testing.T
	srv   *testutil.TestServer
	token string
}

func newClient(t *testing.T, mutate ...func(*config.Config)) *client {
	t.Helper()
	srv := testutil.NewTestServerWithDB(t, NewTestDB(t), mutate...)
	return &client{t: t, srv: srv, token: srv.Token(t, "ADMIN")}
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.srv.Do(c.t, http.MethodGet, path, c.token, nil)
}

func (c *client) post(path string, body any) *httptest.ResponseRecorder {
	return c.srv.Do(c.t, http.MethodPost, path, c.token, body)
}

func (c *client) delete(path string) *httptest.ResponseRecorder {
	return c.srv.Do(c.t, http.MethodDelete, path, c.token, nil)
}

func (c *client) mustCreate(path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	w := c.post(path, body)
	require.Equal(c.t, http.StatusCreated, w.Code, "POST %s: %s", path, w.Body.String())
	return w
}

// seed creates customer KH0001 and product SP0001 at 150000. The posting accounts come
// from the chart of accounts migration.
func (c *client) seed() {
	c.mustCreate("/customers", partnerapp.CreateCustomerRequest{Name: "Hoa Binh Trading", Address: "25 Ly Thuong Kiet, Hanoi"})
	price := decimal.RequireFromString("150000")
	c.mustCreate("/products", catalogapp.CreateProductRequest{Name: "Office chair", Price: &price, Unit: "pcs"})
}

func invoiceRequest(qty string) billingapp.InvoiceRequest {
	quantity := decimal.RequireFromString(qty)
	return billingapp.InvoiceRequest{
		IssueDate:      testutil.Date(2026, time.March, 10),
		CustomerCode:   "KH0001",
		PaymentMethod:  "cash",
		DebitAccount:   "131",
		RevenueAccount: "511",
		TaxAccount:     "3331",
		TaxRate:        "10",
		Lines:          []billingapp.LineRequest{{ProductCode: "SP0001", Quantity: &quantity}},
	}
}
