package persistence

import (
	"context"
	"testing"

	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountCodes(accounts []ledger.Account) []string {
	codes := make([]string, len(accounts))
	for i, a := range accounts {
		codes[i] = a.Code
	}
	return codes
}

func TestGormAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewGormAccountRepository(db)

	seedAccount(t, db, "511", "Sales revenue", 1)
	seedAccount(t, db, "511.1", "Revenue from goods", 2)
	seedAccount(t, db, "511.2", "Revenue from services", 2)
	seedAccount(t, db, "5111", "Unrelated sibling", 1)
	seedAccount(t, db, "131", "Receivables", 1)

	t.Run("duplicate code or name is a conflict", func(t *testing.T) {
		dup, err := ledger.NewAccount("511", "Another name", 1)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrConflict)

		sameName, err := ledger.NewAccount("632", "SALES REVENUE", 1)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, sameName), shared.ErrConflict)

		exists, err := repo.ExistsByName(ctx, "sales revenue", "511")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("children use dotted codes only", func(t *testing.T) {
		children, err := repo.FindChildren(ctx, "511")
		require.NoError(t, err)
		assert.Equal(t, []string{"511.1", "511.2"}, accountCodes(children))

		has, err := repo.HasChildren(ctx, "511")
		require.NoError(t, err)
		assert.True(t, has)

		has, err = repo.HasChildren(ctx, "131")
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("prefix level and keyword lookups", func(t *testing.T) {
		byPrefix, err := repo.FindByPrefix(ctx, "511")
		require.NoError(t, err)
		assert.Len(t, byPrefix, 4)

		byLevel, err := repo.FindByLevel(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"511.1", "511.2"}, accountCodes(byLevel))

		found, err := repo.Search(ctx, "SERVICES")
		require.NoError(t, err)
		assert.Equal(t, []string{"511.2"}, accountCodes(found))

		byCodes, err := repo.FindByCodes(ctx, []string{"131", "999"})
		require.NoError(t, err)
		assert.Equal(t, []string{"131"}, accountCodes(byCodes))

		page, total, err := repo.FindAll(ctx, shared.Filter{PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, page, 2)
	})

	t.Run("in use once posted by an invoice", func(t *testing.T) {
		inUse, err := repo.IsInUse(ctx, "131")
		require.NoError(t, err)
		assert.False(t, inUse)

		c := seedCustomer(t, db, "Minh Phat", "")
		p := seedProduct(t, db, "Coffee", "10")
		require.NoError(t, NewGormInvoiceRepository(db, 0).Create(ctx, newInvoice(t, c, date(2024, 3, 1), newLine(p, "1", "10"))))

		inUse, err = repo.IsInUse(ctx, "131")
		require.NoError(t, err)
		assert.True(t, inUse)
	})

	t.Run("update and delete", func(t *testing.T) {
		a, err := repo.FindByCode(ctx, "5111")
		require.NoError(t, err)
		require.NoError(t, a.Rename("Other revenue"))
		require.NoError(t, repo.Update(ctx, a))

		got, err := repo.FindByCode(ctx, "5111")
		require.NoError(t, err)
		assert.Equal(t, "Other revenue", got.Name)

		require.NoError(t, repo.Delete(ctx, "5111"))
		_, err = repo.FindByCode(ctx, "5111")
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "5111"), shared.ErrNotFound)
	})
}
