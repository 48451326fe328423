package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormProductRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormProductRepository(db, 0)

	coffee := seedProduct(t, db, "Coffee", "10")
	tea := seedProduct(t, db, "Green Tea", "4.50")
	assert.Equal(t, "SP0001", coffee.Code)
	assert.Equal(t, "SP0002", tea.Code)

	t.Run("name is unique ignoring case", func(t *testing.T) {
		dup, err := catalog.NewProduct("", catalog.ProductDetails{Name: "COFFEE", Price: dec("9")})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrConflict)

		exists, err := repo.ExistsByName(ctx, "coffee", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByName(ctx, "coffee", coffee.Code)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find by codes skips unknown codes", func(t *testing.T) {
		found, err := repo.FindByCodes(ctx, []string{coffee.Code, "SP0404", tea.Code})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("price round-trips exactly", func(t *testing.T) {
		got, err := repo.FindByCode(ctx, tea.Code)
		require.NoError(t, err)
		assert.True(t, dec("4.50").Equal(got.Price))
		assert.Equal(t, "pcs", got.Unit)
	})

	t.Run("find by unit", func(t *testing.T) {
		found, err := repo.FindByUnit(ctx, "pcs")
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("referenced once priced", func(t *testing.T) {
		referenced, err := repo.IsReferenced(ctx, coffee.Code)
		require.NoError(t, err)
		assert.False(t, referenced)

		entry, err := catalog.NewPriceEntry(coffee.Code, date(2024, 1, 1), dec("10"))
		require.NoError(t, err)
		require.NoError(t, NewGormPriceListRepository(db).Create(ctx, entry))

		referenced, err = repo.IsReferenced(ctx, coffee.Code)
		require.NoError(t, err)
		assert.True(t, referenced)
	})

	t.Run("update and delete", func(t *testing.T) {
		require.NoError(t, tea.Update(catalog.ProductDetails{Name: "Jasmine Tea", Price: dec("5"), Unit: "box"}))
		require.NoError(t, repo.Update(ctx, tea))

		got, err := repo.FindByCode(ctx, tea.Code)
		require.NoError(t, err)
		assert.Equal(t, "Jasmine Tea", got.Name)

		require.NoError(t, repo.Delete(ctx, tea.Code))
		_, err = repo.FindByCode(ctx, tea.Code)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPriceListRepository_FindLatestValid(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormPriceListRepository(db)
	p := seedProduct(t, db, "Coffee", "8")

	for _, e := range []struct {
		year, month int
		price       string
	}{{2024, 1, "10"}, {2024, 6, "12"}} {
		entry, err := catalog.NewPriceEntry(p.Code, date(e.year, time.Month(e.month), 1), dec(e.price))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, entry))
	}

	tests := []struct {
		name string
		asOf int
		want string
	}{
		{"between entries", 315, "10"},
		{"on the later entry", 601, "12"},
		{"after every entry", 701, "12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindLatestValid(ctx, p.Code, date(2024, time.Month(tt.asOf/100), tt.asOf%100))
			require.NoError(t, err)
			assert.True(t, dec(tt.want).Equal(got.Price), "got %s", got.Price)
		})
	}

	t.Run("before the first entry", func(t *testing.T) {
		_, err := repo.FindLatestValid(ctx, p.Code, date(2023, 12, 31))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("duplicate key is a conflict", func(t *testing.T) {
		entry, err := catalog.NewPriceEntry(p.Code, date(2024, 1, 1), dec("11"))
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, entry), shared.ErrConflict)
	})

	t.Run("range and valid-at listings", func(t *testing.T) {
		inRange, err := repo.FindInRange(ctx, p.Code, shared.DateRange{From: date(2024, 2, 1), To: date(2024, 12, 31)})
		require.NoError(t, err)
		require.Len(t, inRange, 1)
		assert.True(t, dec("12").Equal(inRange[0].Price))

		valid, err := repo.FindValidAt(ctx, date(2024, 3, 1))
		require.NoError(t, err)
		assert.Len(t, valid, 1)
	})

	t.Run("update and delete", func(t *testing.T) {
		entry, err := repo.Find(ctx, p.Code, date(2024, 6, 1))
		require.NoError(t, err)
		require.NoError(t, entry.ChangePrice(dec("13")))
		require.NoError(t, repo.Update(ctx, entry))

		got, err := repo.Find(ctx, p.Code, date(2024, 6, 1))
		require.NoError(t, err)
		assert.True(t, dec("13").Equal(got.Price))

		require.NoError(t, repo.Delete(ctx, p.Code, date(2024, 6, 1)))
		assert.ErrorIs(t, repo.Delete(ctx, p.Code, date(2024, 6, 1)), shared.ErrNotFound)
	})
}

func TestGormDiscountNormRepository_FindApplicable(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormDiscountNormRepository(db)
	p := seedProduct(t, db, "Coffee", "10")

	for _, n := range []struct {
		month     int
		threshold string
		rate      string
	}{{1, "1000", "5"}, {1, "5000", "10"}, {6, "1000", "7"}} {
		norm, err := catalog.NewDiscountNorm(p.Code, date(2024, time.Month(n.month), 1), dec(n.threshold), dec(n.rate))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, norm))
	}

	got, err := repo.FindApplicable(ctx, p.Code, dec("6000"), date(2024, 3, 1))
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(got.Rate))

	got, err = repo.FindApplicable(ctx, p.Code, dec("2000"), date(2024, 3, 1))
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(got.Rate))

	got, err = repo.FindApplicable(ctx, p.Code, dec("6000"), date(2024, 7, 1))
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(got.Rate))

	_, err = repo.FindApplicable(ctx, p.Code, dec("500"), date(2024, 3, 1))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	all, total, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}
