package billing

import (
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceCriteria_Resolve(t *testing.T) {
	r := shared.DateRange{From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)}
	half := shared.DateRange{From: r.From}
	min := decimal.NewFromInt(100)

	tests := []struct {
		name     string
		criteria InvoiceCriteria
		mode     SearchMode
	}{
		{"number wins over everything", InvoiceCriteria{Number: "HD0001", CustomerCode: "KH0001", Range: r, PaymentMethod: "cash"}, SearchByNumber},
		{"customer with range", InvoiceCriteria{CustomerCode: "KH0001", Range: r, PaymentMethod: "cash"}, SearchByCustomerAndRange},
		{"customer with open range", InvoiceCriteria{CustomerCode: "KH0001", Range: half}, SearchByCustomerAndRange},
		{"range over payment method", InvoiceCriteria{Range: r, PaymentMethod: "cash"}, SearchByRange},
		{"open range alone", InvoiceCriteria{Range: half, Total: AmountRange{Min: &min}}, SearchByRange},
		{"payment method with amount", InvoiceCriteria{PaymentMethod: "cash", Total: AmountRange{Min: &min}}, SearchByPaymentAndAmount},
		{"payment method alone", InvoiceCriteria{PaymentMethod: "cash"}, SearchByPaymentAndAmount},
		{"amount alone", InvoiceCriteria{Total: AmountRange{Min: &min}}, SearchByPaymentAndAmount},
		{"blank strings list all", InvoiceCriteria{Number: "  "}, SearchAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, _ := tt.criteria.Resolve()
			assert.Equal(t, tt.mode, mode)
		})
	}

	t.Run("keeps only winning filter", func(t *testing.T) {
		_, c := InvoiceCriteria{CustomerCode: "KH0001", PaymentMethod: "cash"}.Resolve()
		assert.Equal(t, InvoiceCriteria{CustomerCode: "KH0001"}, c)
	})

	t.Run("payment tier keeps both filters", func(t *testing.T) {
		_, c := InvoiceCriteria{PaymentMethod: " cash ", Total: AmountRange{Min: &min}}.Resolve()
		assert.Equal(t, InvoiceCriteria{PaymentMethod: "cash", Total: AmountRange{Min: &min}}, c)
	})
}

func TestCreditNoteCriteria_Resolve(t *testing.T) {
	r := shared.DateRange{From: time.Now().Add(-time.Hour), To: time.Now()}
	max := decimal.NewFromInt(10)

	tests := []struct {
		name     string
		criteria CreditNoteCriteria
		mode     SearchMode
	}{
		{"number", CreditNoteCriteria{Number: "PH0001", InvoiceNumber: "HD0001"}, SearchByNumber},
		{"invoice over customer", CreditNoteCriteria{InvoiceNumber: "HD0001", CustomerCode: "KH0001"}, SearchByInvoice},
		{"customer with range", CreditNoteCriteria{CustomerCode: "KH0001", Range: r}, SearchByCustomerAndRange},
		{"customer", CreditNoteCriteria{CustomerCode: "KH0001"}, SearchByCustomer},
		{"range", CreditNoteCriteria{Range: r, Net: AmountRange{Max: &max}}, SearchByRange},
		{"open range", CreditNoteCriteria{Range: shared.DateRange{To: r.To}, Net: AmountRange{Max: &max}}, SearchByRange},
		{"amount", CreditNoteCriteria{Net: AmountRange{Max: &max}}, SearchByAmount},
		{"all", CreditNoteCriteria{}, SearchAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, _ := tt.criteria.Resolve()
			assert.Equal(t, tt.mode, mode)
		})
	}
}

func TestAmountRange_Validate(t *testing.T) {
	lo, hi := decimal.NewFromInt(5), decimal.NewFromInt(1)
	assert.ErrorIs(t, AmountRange{Min: &lo, Max: &hi}.Validate(), shared.ErrInvalidInput)
	assert.NoError(t, AmountRange{Min: &hi, Max: &lo}.Validate())
}

func TestFillMonths(t *testing.T) {
	months := FillMonths([]MonthlyRevenue{{Month: 3, Count: 2, Revenue: decimal.NewFromInt(10)}})
	assert.Len(t, months, 12)
	assert.Equal(t, 1, months[0].Month)
	assert.True(t, months[0].Revenue.IsZero())
	assert.Equal(t, int64(2), months[2].Count)
}
