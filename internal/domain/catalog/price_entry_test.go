package catalog

import (
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewPriceEntry(t *testing.T) {
	t.Run("defaults effective date to now", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		e, err := NewPriceEntry("SP0001", time.Time{}, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.True(t, e.EffectiveFrom.After(before))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewPriceEntry("SP0001", date(2024, 1, 1), decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewPriceEntry(" ", date(2024, 1, 1), decimal.NewFromInt(1))
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestPriceEntry_ChangePrice(t *testing.T) {
	e, err := NewPriceEntry("SP0001", date(2024, 1, 1), decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, e.ChangePrice(decimal.NewFromInt(11)))
	assert.True(t, e.Price.Equal(decimal.NewFromInt(11)))
	assert.Error(t, e.ChangePrice(decimal.NewFromInt(-1)))
	assert.True(t, e.Price.Equal(decimal.NewFromInt(11)))
}

func TestLatestValid(t *testing.T) {
	history := []PriceEntry{
		{ProductCode: "P", EffectiveFrom: date(2024, 6, 1), Price: decimal.NewFromInt(12)},
		{ProductCode: "P", EffectiveFrom: date(2024, 1, 1), Price: decimal.NewFromInt(10)},
	}

	tests := []struct {
		name  string
		asOf  time.Time
		want  string
		found bool
	}{
		{"between entries", date(2024, 5, 1), "10", true},
		{"after latest", date(2024, 12, 1), "12", true},
		{"on effective date", date(2024, 6, 1), "12", true},
		{"before history", date(2023, 1, 1), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LatestValid(history, tt.asOf)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got.Price.String())
			}
		})
	}
}
