package catalog

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Search(ctx context.Context, keyword string, filter shared.Filter) ([]catalog.Product, int64, error) {
	args := m.Called(ctx, keyword, filter)
	return args.Get(0).([]catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByUnit(ctx context.Context, unit string) ([]catalog.Product, error) {
	args := m.Called(ctx, unit)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name, excludeCode string) (bool, error) {
	args := m.Called(ctx, name, excludeCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockProductRepository) IsReferenced(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) NextCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPriceListRepository is a mock implementation of PriceListRepository
type MockPriceListRepository struct {
	mock.Mock
}

func (m *MockPriceListRepository) Find(ctx context.Context, productCode string, effectiveFrom time.Time) (*catalog.PriceEntry, error) {
	args := m.Called(ctx, productCode, effectiveFrom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.PriceEntry), args.Error(1)
}

func (m *MockPriceListRepository) FindByProduct(ctx context.Context, productCode string) ([]catalog.PriceEntry, error) {
	args := m.Called(ctx, productCode)
	return args.Get(0).([]catalog.PriceEntry), args.Error(1)
}

func (m *MockPriceListRepository) FindValidAt(ctx context.Context, asOf time.Time) ([]catalog.PriceEntry, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]catalog.PriceEntry), args.Error(1)
}

func (m *MockPriceListRepository) FindLatestValid(ctx context.Context, productCode string, asOf time.Time) (*catalog.PriceEntry, error) {
	args := m.Called(ctx, productCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.PriceEntry), args.Error(1)
}

func (m *MockPriceListRepository) FindInRange(ctx context.Context, productCode string, r shared.DateRange) ([]catalog.PriceEntry, error) {
	args := m.Called(ctx, productCode, r)
	return args.Get(0).([]catalog.PriceEntry), args.Error(1)
}

func (m *MockPriceListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceEntry, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.PriceEntry), args.Get(1).(int64), args.Error(2)
}

func (m *MockPriceListRepository) Create(ctx context.Context, entry *catalog.PriceEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPriceListRepository) Update(ctx context.Context, entry *catalog.PriceEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPriceListRepository) Delete(ctx context.Context, productCode string, effectiveFrom time.Time) error {
	args := m.Called(ctx, productCode, effectiveFrom)
	return args.Error(0)
}

// MockDiscountNormRepository is a mock implementation of DiscountNormRepository
type MockDiscountNormRepository struct {
	mock.Mock
}

func (m *MockDiscountNormRepository) Find(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) (*catalog.DiscountNorm, error) {
	args := m.Called(ctx, productCode, effectiveFrom, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DiscountNorm), args.Error(1)
}

func (m *MockDiscountNormRepository) FindByProduct(ctx context.Context, productCode string) ([]catalog.DiscountNorm, error) {
	args := m.Called(ctx, productCode)
	return args.Get(0).([]catalog.DiscountNorm), args.Error(1)
}

func (m *MockDiscountNormRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.DiscountNorm, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.DiscountNorm), args.Get(1).(int64), args.Error(2)
}

func (m *MockDiscountNormRepository) FindApplicable(ctx context.Context, productCode string, amount decimal.Decimal, date time.Time) (*catalog.DiscountNorm, error) {
	args := m.Called(ctx, productCode, amount, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.DiscountNorm), args.Error(1)
}

func (m *MockDiscountNormRepository) Create(ctx context.Context, norm *catalog.DiscountNorm) error {
	args := m.Called(ctx, norm)
	return args.Error(0)
}

func (m *MockDiscountNormRepository) Update(ctx context.Context, norm *catalog.DiscountNorm) error {
	args := m.Called(ctx, norm)
	return args.Error(0)
}

func (m *MockDiscountNormRepository) Delete(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) error {
	args := m.Called(ctx, productCode, effectiveFrom, threshold)
	return args.Error(0)
}
