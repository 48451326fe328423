package persistence

import (
	"context"
	"testing"

	"github.com/erp/accounting/internal/domain/partner"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCustomerRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("generates sequential codes", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormCustomerRepository(db, 0)

		first := seedCustomer(t, db, "Minh Phat", "")
		second := seedCustomer(t, db, "An Khang", "")
		assert.Equal(t, "KH0001", first.Code)
		assert.Equal(t, "KH0002", second.Code)

		next, err := repo.NextCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, "KH0003", next)
	})

	t.Run("explicit duplicate code is a conflict", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormCustomerRepository(db, 0)

		c, err := partner.NewCustomer("VIP01", partner.CustomerDetails{Name: "Hoa Binh", Address: "Hue"})
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))

		dup, err := partner.NewCustomer("VIP01", partner.CustomerDetails{Name: "Other", Address: "Hue"})
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrConflict)
	})

	t.Run("tax id is unique but optional", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormCustomerRepository(db, 0)

		seedCustomer(t, db, "No Tax A", "")
		seedCustomer(t, db, "No Tax B", "")
		seedCustomer(t, db, "Taxed", "0101234567")

		dup, err := partner.NewCustomer("", partner.CustomerDetails{Name: "Copycat", Address: "Hanoi", TaxID: "0101234567"})
		require.NoError(t, err)
		err = repo.Create(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrConflict)
		assert.Empty(t, dup.Code)

		exists, err := repo.ExistsByTaxID(ctx, "0101234567", "")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByTaxID(ctx, "0101234567", "KH0003")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestGormCustomerRepository_FindAndSearch(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormCustomerRepository(db, 0)

	seedCustomer(t, db, "Minh Phat Trading", "0101234567")
	seedCustomer(t, db, "An Khang", "")
	seedCustomer(t, db, "Phat Dat", "")

	got, err := repo.FindByCode(ctx, "KH0001")
	require.NoError(t, err)
	assert.Equal(t, "Minh Phat Trading", got.Name)
	assert.Equal(t, "0101234567", got.TaxID)

	_, err = repo.FindByCode(ctx, "KH9999")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	page, total, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "KH0003", page[0].Code)

	found, total, err := repo.Search(ctx, "PHAT", shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)

	found, _, err = repo.Search(ctx, "01012", shared.Filter{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "KH0001", found[0].Code)
}

func TestGormCustomerRepository_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormCustomerRepository(db, 0)

	c := seedCustomer(t, db, "Minh Phat", "0101234567")
	require.NoError(t, c.Update(partner.CustomerDetails{Name: "Minh Phat JSC", Address: "Da Nang", Phone: "0901234567"}))
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.FindByCode(ctx, c.Code)
	require.NoError(t, err)
	assert.Equal(t, "Minh Phat JSC", got.Name)
	assert.Equal(t, "0901234567", got.Phone)
	assert.Empty(t, got.TaxID)

	missing := *c
	missing.Code = "KH0404"
	assert.ErrorIs(t, repo.Update(ctx, &missing), shared.ErrNotFound)

	hasDocs, err := repo.HasDocuments(ctx, c.Code)
	require.NoError(t, err)
	assert.False(t, hasDocs)

	require.NoError(t, repo.Delete(ctx, c.Code))
	assert.ErrorIs(t, repo.Delete(ctx, c.Code), shared.ErrNotFound)
}

func TestGormCustomerRepository_HasDocuments(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormCustomerRepository(db, 0)

	c := seedCustomer(t, db, "Minh Phat", "")
	p := seedProduct(t, db, "Coffee", "10")
	require.NoError(t, NewGormInvoiceRepository(db, 0).Create(ctx, newInvoice(t, c, date(2024, 3, 1), newLine(p, "1", "10"))))

	hasDocs, err := repo.HasDocuments(ctx, c.Code)
	require.NoError(t, err)
	assert.True(t, hasDocs)
}
