package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/partner"
	"github.com/erp/accounting/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newSQLiteDB opens a private in-memory database with the full schema
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{Driver: DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedCustomer(t *testing.T, db *gorm.DB, name, taxID string) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("", partner.CustomerDetails{Name: name, Address: "12 Trang Tien, Hanoi", TaxID: taxID})
	require.NoError(t, err)
	require.NoError(t, NewGormCustomerRepository(db, 0).Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("", catalog.ProductDetails{Name: name, Price: dec(price), Unit: "pcs"})
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db, 0).Create(context.Background(), p))
	return p
}

func seedAccount(t *testing.T, db *gorm.DB, code, name string, level int) *ledger.Account {
	t.Helper()
	a, err := ledger.NewAccount(code, name, level)
	require.NoError(t, err)
	require.NoError(t, NewGormAccountRepository(db).Create(context.Background(), a))
	return a
}

// newInvoice builds a priced invoice without persisting it
func newInvoice(t *testing.T, customer *partner.Customer, issued time.Time, lines ...billing.Line) *billing.Invoice {
	t.Helper()
	inv := &billing.Invoice{
		IssueDate:      issued,
		CustomerCode:   customer.Code,
		CustomerName:   customer.Name,
		PaymentMethod:  "cash",
		DebitAccount:   "131",
		RevenueAccount: "511",
		TaxAccount:     "3331",
		TaxRate:        "10",
		Lines:          lines,
	}
	require.NoError(t, inv.Recalculate())
	return inv
}

func newLine(product *catalog.Product, qty, price string) billing.Line {
	return billing.Line{ProductCode: product.Code, Unit: product.Unit, Quantity: dec(qty), UnitPrice: dec(price)}
}
