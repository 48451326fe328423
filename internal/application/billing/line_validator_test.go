package billing

import (
	"context"
	"testing"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLineValidator_InvoiceLines(t *testing.T) {
	ctx := context.Background()

	t.Run("trims codes and returns products", func(t *testing.T) {
		products := new(MockProductCatalog)
		products.On("FindByCodes", ctx, []string{"SP0001", "SP0002"}).Return(knownProducts("SP0001", "SP0002"), nil)
		v := NewLineValidator(products)

		lines := []LineRequest{
			{ProductCode: " SP0001 ", Quantity: dp("1")},
			{ProductCode: "SP0002", Quantity: dp("0.5")},
		}
		found, err := v.ValidateInvoiceLines(ctx, lines)
		require.NoError(t, err)
		assert.Len(t, found, 2)
		assert.Equal(t, "SP0001", lines[0].ProductCode)
	})

	t.Run("price is optional", func(t *testing.T) {
		products := new(MockProductCatalog)
		products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0001"), nil)
		_, err := NewLineValidator(products).ValidateInvoiceLines(ctx, []LineRequest{{ProductCode: "SP0001", Quantity: dp("1")}})
		assert.NoError(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewLineValidator(new(MockProductCatalog)).ValidateInvoiceLines(ctx, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown product is reported before a bad quantity", func(t *testing.T) {
		products := new(MockProductCatalog)
		products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0001"), nil)
		_, err := NewLineValidator(products).ValidateInvoiceLines(ctx, []LineRequest{{ProductCode: "SP0009", Quantity: dp("0")}})
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})

	t.Run("negative quantity", func(t *testing.T) {
		products := new(MockProductCatalog)
		products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0001"), nil)
		_, err := NewLineValidator(products).ValidateInvoiceLines(ctx, []LineRequest{{ProductCode: "SP0001", Quantity: dp("-2")}})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestLineValidator_CreditNoteLines(t *testing.T) {
	ctx := context.Background()
	source := &billing.Invoice{Number: "HD0001", Lines: []billing.Line{{ProductCode: "SP0001"}}}

	tests := []struct {
		name    string
		line    LineRequest
		wantErr error
	}{
		{"valid", LineRequest{ProductCode: "SP0001", Quantity: dp("1"), UnitPrice: dp("0")}, nil},
		{"missing price", LineRequest{ProductCode: "SP0001", Quantity: dp("1")}, shared.ErrInvalidInput},
		{"negative price", LineRequest{ProductCode: "SP0001", Quantity: dp("1"), UnitPrice: dp("-0.01")}, shared.ErrInvalidInput},
		{"not on invoice", LineRequest{ProductCode: "SP0002", Quantity: dp("1"), UnitPrice: dp("1")}, shared.ErrReferentialIntegrity},
		{"unknown product", LineRequest{ProductCode: "SP0404", Quantity: dp("1"), UnitPrice: dp("1")}, shared.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProductCatalog)
			products.On("FindByCodes", ctx, mock.Anything).Return(knownProducts("SP0001", "SP0002"), nil)

			_, err := NewLineValidator(products).ValidateCreditNoteLines(ctx, []LineRequest{tt.line}, source)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
