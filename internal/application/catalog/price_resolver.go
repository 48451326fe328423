package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ResolvedPrice is a unit price and where it came from
type ResolvedPrice struct {
	Price    decimal.Decimal
	FromList bool
}

// PriceResolver picks the unit price of a product at a date: the newest price-list entry
// effective at that date, otherwise the product's base price.
type PriceResolver struct {
	productRepo   catalog.ProductRepository
	priceListRepo catalog.PriceListRepository
	now           func() time.Time
}

// NewPriceResolver creates a new PriceResolver
func NewPriceResolver(productRepo catalog.ProductRepository, priceListRepo catalog.PriceListRepository) *PriceResolver {
	return &PriceResolver{
		productRepo:   productRepo,
		priceListRepo: priceListRepo,
		now:           time.Now,
	}
}

// Resolve returns the unit price of productCode as of asOf. A zero asOf means now.
func (r *PriceResolver) Resolve(ctx context.Context, productCode string, asOf time.Time) (ResolvedPrice, error) {
	if asOf.IsZero() {
		asOf = r.now()
	}

	entry, err := r.priceListRepo.FindLatestValid(ctx, productCode, asOf)
	switch {
	case err == nil:
		return ResolvedPrice{Price: entry.Price, FromList: true}, nil
	case !errors.Is(err, shared.ErrNotFound):
		return ResolvedPrice{}, err
	}

	product, err := r.productRepo.FindByCode(ctx, productCode)
	if err != nil {
		return ResolvedPrice{}, err
	}
	return ResolvedPrice{Price: product.Price}, nil
}

// UnitPrice satisfies the billing price source
func (r *PriceResolver) UnitPrice(ctx context.Context, productCode string, asOf time.Time) (decimal.Decimal, error) {
	resolved, err := r.Resolve(ctx, productCode, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return resolved.Price, nil
}
