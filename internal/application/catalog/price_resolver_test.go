package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// historyRepo answers FindLatestValid for the probed dates using the domain selection rule
func historyRepo(entries []catalog.PriceEntry, probes ...time.Time) *MockPriceListRepository {
	repo := new(MockPriceListRepository)
	for _, asOf := range probes {
		if e, ok := catalog.LatestValid(entries, asOf); ok {
			entry := e
			repo.On("FindLatestValid", mock.Anything, "P", asOf).Return(&entry, nil)
			continue
		}
		repo.On("FindLatestValid", mock.Anything, "P", asOf).Return(nil, shared.NewNotFound("no price for P"))
	}
	return repo
}

func TestPriceResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	history := []catalog.PriceEntry{
		{ProductCode: "P", EffectiveFrom: date(2024, 1, 1), Price: decimal.NewFromInt(10)},
		{ProductCode: "P", EffectiveFrom: date(2024, 6, 1), Price: decimal.NewFromInt(12)},
	}

	productRepo := new(MockProductRepository)
	productRepo.On("FindByCode", mock.Anything, "P").Return(&catalog.Product{Code: "P", Price: decimal.NewFromInt(7)}, nil)
	resolver := NewPriceResolver(productRepo, historyRepo(history, date(2023, 1, 1), date(2024, 5, 1), date(2024, 12, 1)))

	tests := []struct {
		name     string
		asOf     time.Time
		price    int64
		fromList bool
	}{
		{"between entries", date(2024, 5, 1), 10, true},
		{"after latest entry", date(2024, 12, 1), 12, true},
		{"before any entry", date(2023, 1, 1), 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolver.Resolve(ctx, "P", tt.asOf)
			require.NoError(t, err)
			assert.True(t, got.Price.Equal(decimal.NewFromInt(tt.price)), "got %s", got.Price)
			assert.Equal(t, tt.fromList, got.FromList)
		})
	}
}

func TestPriceResolver_DefaultsToNow(t *testing.T) {
	ctx := context.Background()
	now := date(2025, 3, 15)

	priceRepo := new(MockPriceListRepository)
	priceRepo.On("FindLatestValid", ctx, "P", now).
		Return(&catalog.PriceEntry{ProductCode: "P", EffectiveFrom: date(2025, 1, 1), Price: decimal.NewFromInt(99)}, nil)

	resolver := NewPriceResolver(new(MockProductRepository), priceRepo)
	resolver.now = func() time.Time { return now }

	price, err := resolver.UnitPrice(ctx, "P", time.Time{})
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(99)))
	priceRepo.AssertExpectations(t)
}

func TestPriceResolver_Errors(t *testing.T) {
	ctx := context.Background()
	asOf := date(2024, 1, 1)

	t.Run("unknown product", func(t *testing.T) {
		priceRepo := new(MockPriceListRepository)
		priceRepo.On("FindLatestValid", ctx, "X", asOf).Return(nil, shared.NewNotFound("no price"))
		productRepo := new(MockProductRepository)
		productRepo.On("FindByCode", ctx, "X").Return(nil, shared.NewNotFound("product X not found"))

		_, err := NewPriceResolver(productRepo, priceRepo).Resolve(ctx, "X", asOf)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("storage failure is not masked by fallback", func(t *testing.T) {
		boom := errors.New("db down")
		priceRepo := new(MockPriceListRepository)
		priceRepo.On("FindLatestValid", ctx, "P", asOf).Return(nil, boom)
		productRepo := new(MockProductRepository)

		_, err := NewPriceResolver(productRepo, priceRepo).Resolve(ctx, "P", asOf)
		assert.ErrorIs(t, err, boom)
		productRepo.AssertNotCalled(t, "FindByCode", mock.Anything, mock.Anything)
	})
}
