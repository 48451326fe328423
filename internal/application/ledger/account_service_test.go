package ledger

import (
	"context"
	"testing"

	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCodes(ctx context.Context, codes []string) ([]ledger.Account, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ledger.Account), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) FindByLevel(ctx context.Context, level int) ([]ledger.Account, error) {
	args := m.Called(ctx, level)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPrefix(ctx context.Context, prefix string) ([]ledger.Account, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) Search(ctx context.Context, keyword string) ([]ledger.Account, error) {
	args := m.Called(ctx, keyword)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) FindChildren(ctx context.Context, code string) ([]ledger.Account, error) {
	args := m.Called(ctx, code)
	return args.Get(0).([]ledger.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) ExistsByName(ctx context.Context, name, excludeCode string) (bool, error) {
	args := m.Called(ctx, name, excludeCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) IsInUse(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func TestAccountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("sub-account requires parent", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo)
		repo.On("ExistsByCode", ctx, "511.1").Return(false, nil)
		repo.On("ExistsByName", ctx, "Sales of goods", "").Return(false, nil)
		repo.On("ExistsByCode", ctx, "511").Return(false, nil)

		_, err := svc.Create(ctx, CreateAccountRequest{Code: "511.1", Name: "Sales of goods", Level: 2})
		assert.ErrorIs(t, err, shared.ErrMissingReference)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("top-level account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo)
		repo.On("ExistsByCode", ctx, "131").Return(false, nil)
		repo.On("ExistsByName", ctx, "Receivables", "").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*ledger.Account")).Return(nil)

		resp, err := svc.Create(ctx, CreateAccountRequest{Code: "131", Name: "Receivables", Level: 1})
		require.NoError(t, err)
		assert.Empty(t, resp.ParentCode)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := new(MockAccountRepository)
		svc := NewAccountService(repo)
		repo.On("ExistsByCode", ctx, "131").Return(true, nil)

		_, err := svc.Create(ctx, CreateAccountRequest{Code: "131", Name: "Receivables", Level: 1})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})
}

func TestAccountService_Update_LevelLockedWithChildren(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := NewAccountService(repo)

	repo.On("FindByCode", ctx, "511").Return(&ledger.Account{Code: "511", Name: "Revenue", Level: 1}, nil)
	repo.On("ExistsByName", ctx, "Revenue", "511").Return(false, nil)
	repo.On("HasChildren", ctx, "511").Return(true, nil)

	_, err := svc.Update(ctx, "511", UpdateAccountRequest{Name: "Revenue", Level: 2})
	assert.ErrorIs(t, err, shared.ErrConflict)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAccountService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		inUse       bool
		hasChildren bool
		wantErr     error
	}{
		{"in use", true, false, shared.ErrConflict},
		{"has children", false, true, shared.ErrConflict},
		{"free", false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockAccountRepository)
			svc := NewAccountService(repo)
			repo.On("FindByCode", ctx, "333").Return(&ledger.Account{Code: "333", Name: "Tax", Level: 1}, nil)
			repo.On("IsInUse", ctx, "333").Return(tt.inUse, nil)
			repo.On("HasChildren", ctx, "333").Return(tt.hasChildren, nil).Maybe()
			repo.On("Delete", ctx, "333").Return(nil).Maybe()

			err := svc.Delete(ctx, "333")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "Delete", ctx, "333")
		})
	}
}

func TestAccountService_NextLevel(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepository)
	svc := NewAccountService(repo)

	repo.On("FindByCode", ctx, "511").Return(&ledger.Account{Code: "511", Name: "Revenue", Level: 1}, nil)
	repo.On("FindChildren", ctx, "511").Return([]ledger.Account{
		{Code: "511.1", Name: "Goods", Level: 2},
		{Code: "511.1.1", Name: "Retail goods", Level: 3},
		{Code: "511.2", Name: "Services", Level: 2},
	}, nil)

	got, err := svc.NextLevel(ctx, "511")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "511.1", got[0].Code)
	assert.Equal(t, "511.2", got[1].Code)
}
