package catalog

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindByCodes loads several products at once; missing codes are simply absent from the result
	FindByCodes(ctx context.Context, codes []string) ([]Product, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)

	// Search matches keyword against name and description
	Search(ctx context.Context, keyword string, filter shared.Filter) ([]Product, int64, error)

	FindByUnit(ctx context.Context, unit string) ([]Product, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByName compares names case-insensitively, ignoring the product identified by excludeCode
	ExistsByName(ctx context.Context, name, excludeCode string) (bool, error)

	// Create inserts the product, assigning the next generated code when Code is empty
	Create(ctx context.Context, product *Product) error

	Update(ctx context.Context, product *Product) error

	Delete(ctx context.Context, code string) error

	// IsReferenced reports whether price-list entries, discount norms or document lines use the product
	IsReferenced(ctx context.Context, code string) (bool, error)

	NextCode(ctx context.Context) (string, error)
}

// PriceListRepository defines the interface for price history persistence
type PriceListRepository interface {
	Find(ctx context.Context, productCode string, effectiveFrom time.Time) (*PriceEntry, error)

	// FindByProduct returns the history of a product, newest first
	FindByProduct(ctx context.Context, productCode string) ([]PriceEntry, error)

	// FindValidAt returns every product's entries that have taken effect at asOf, newest first
	FindValidAt(ctx context.Context, asOf time.Time) ([]PriceEntry, error)

	// FindLatestValid returns the entry with the greatest effective date not after asOf
	FindLatestValid(ctx context.Context, productCode string, asOf time.Time) (*PriceEntry, error)

	FindInRange(ctx context.Context, productCode string, r shared.DateRange) ([]PriceEntry, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]PriceEntry, int64, error)

	// Create fails with Conflict when the (product, effective date) key exists
	Create(ctx context.Context, entry *PriceEntry) error

	Update(ctx context.Context, entry *PriceEntry) error

	Delete(ctx context.Context, productCode string, effectiveFrom time.Time) error
}

// DiscountNormRepository defines the interface for discount norm persistence
type DiscountNormRepository interface {
	Find(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) (*DiscountNorm, error)

	FindByProduct(ctx context.Context, productCode string) ([]DiscountNorm, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]DiscountNorm, int64, error)

	// FindApplicable returns the newest norm effective at date whose threshold is the greatest not above amount
	FindApplicable(ctx context.Context, productCode string, amount decimal.Decimal, date time.Time) (*DiscountNorm, error)

	Create(ctx context.Context, norm *DiscountNorm) error

	Update(ctx context.Context, norm *DiscountNorm) error

	Delete(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) error
}
