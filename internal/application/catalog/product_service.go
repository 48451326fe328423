package catalog

import (
	"context"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Code, catalog.ProductDetails{
		Name:        req.Name,
		Price:       valueOrZero(req.Price),
		Unit:        req.Unit,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	if product.Code != "" {
		exists, err := s.productRepo.ExistsByCode(ctx, product.Code)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewConflict("product code %s already exists", product.Code)
		}
	}

	if err := s.checkName(ctx, product.Name, ""); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByCode retrieves a product by code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Exists reports whether a product with the code exists
func (s *ProductService) Exists(ctx context.Context, code string) (bool, error) {
	return s.productRepo.ExistsByCode(ctx, code)
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ProductResponse], error) {
	filter = filter.Normalize()
	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize), nil
}

// Search matches keyword against name and description
func (s *ProductService) Search(ctx context.Context, keyword string, filter shared.Filter) (shared.Paginated[ProductResponse], error) {
	filter = filter.Normalize()
	products, total, err := s.productRepo.Search(ctx, keyword, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize), nil
}

// ListByUnit returns every product sold in unit
func (s *ProductService) ListByUnit(ctx context.Context, unit string) ([]ProductResponse, error) {
	products, err := s.productRepo.FindByUnit(ctx, unit)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update replaces the mutable attributes of a product
func (s *ProductService) Update(ctx context.Context, code string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := product.Update(catalog.ProductDetails{
		Name:        req.Name,
		Price:       valueOrZero(req.Price),
		Unit:        req.Unit,
		Description: req.Description,
	}); err != nil {
		return nil, err
	}

	if err := s.checkName(ctx, product.Name, product.Code); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product nothing references
func (s *ProductService) Delete(ctx context.Context, code string) error {
	if _, err := s.productRepo.FindByCode(ctx, code); err != nil {
		return err
	}

	referenced, err := s.productRepo.IsReferenced(ctx, code)
	if err != nil {
		return err
	}
	if referenced {
		return shared.NewConflict("product %s is referenced by price lists, discount norms or documents", code)
	}

	return s.productRepo.Delete(ctx, code)
}

// NameExists reports whether another product already uses name, ignoring case
func (s *ProductService) NameExists(ctx context.Context, name, excludeCode string) (bool, error) {
	return s.productRepo.ExistsByName(ctx, name, excludeCode)
}

// NextCode previews the next generated product code
func (s *ProductService) NextCode(ctx context.Context) (string, error) {
	return s.productRepo.NextCode(ctx)
}

func (s *ProductService) checkName(ctx context.Context, name, excludeCode string) error {
	exists, err := s.productRepo.ExistsByName(ctx, name, excludeCode)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflict("product name %s already exists", name)
	}
	return nil
}

func valueOrZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}
