package catalog

import (
	"context"

	"github.com/erp/accounting/internal/domain/catalog"
)

// ProductLookup resolves product codes for other contexts without exposing the repository
type ProductLookup struct {
	productRepo catalog.ProductRepository
}

// NewProductLookup creates a new ProductLookup
func NewProductLookup(productRepo catalog.ProductRepository) *ProductLookup {
	return &ProductLookup{
		productRepo: productRepo,
	}
}

// FindByCodes returns the known products keyed by code.
// Unknown codes are omitted from the result rather than reported as errors.
func (l *ProductLookup) FindByCodes(ctx context.Context, codes []string) (map[string]catalog.Product, error) {
	if len(codes) == 0 {
		return make(map[string]catalog.Product), nil
	}

	products, err := l.productRepo.FindByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	result := make(map[string]catalog.Product, len(products))
	for i := range products {
		result[products[i].Code] = products[i]
	}
	return result, nil
}
