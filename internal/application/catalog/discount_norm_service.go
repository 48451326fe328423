package catalog

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountNormService manages volume discount norms
type DiscountNormService struct {
	productRepo catalog.ProductRepository
	normRepo    catalog.DiscountNormRepository
}

// NewDiscountNormService creates a new DiscountNormService
func NewDiscountNormService(productRepo catalog.ProductRepository, normRepo catalog.DiscountNormRepository) *DiscountNormService {
	return &DiscountNormService{
		productRepo: productRepo,
		normRepo:    normRepo,
	}
}

// Create adds a discount norm for an existing product
func (s *DiscountNormService) Create(ctx context.Context, req CreateDiscountNormRequest) (*DiscountNormResponse, error) {
	norm, err := catalog.NewDiscountNorm(req.ProductCode, req.EffectiveFrom, req.Threshold, valueOrZero(req.Rate))
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, norm.ProductCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewMissingReference("product %s not found", norm.ProductCode)
	}

	if err := s.normRepo.Create(ctx, norm); err != nil {
		return nil, err
	}

	response := ToDiscountNormResponse(norm)
	return &response, nil
}

// Get retrieves a norm by its composite key
func (s *DiscountNormService) Get(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) (*DiscountNormResponse, error) {
	norm, err := s.normRepo.Find(ctx, productCode, effectiveFrom, threshold)
	if err != nil {
		return nil, err
	}
	response := ToDiscountNormResponse(norm)
	return &response, nil
}

// Update changes the rate of a norm
func (s *DiscountNormService) Update(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal, req UpdateDiscountNormRequest) (*DiscountNormResponse, error) {
	norm, err := s.normRepo.Find(ctx, productCode, effectiveFrom, threshold)
	if err != nil {
		return nil, err
	}
	if err := norm.ChangeRate(valueOrZero(req.Rate)); err != nil {
		return nil, err
	}
	if err := s.normRepo.Update(ctx, norm); err != nil {
		return nil, err
	}
	response := ToDiscountNormResponse(norm)
	return &response, nil
}

// Delete removes a norm
func (s *DiscountNormService) Delete(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) error {
	if _, err := s.normRepo.Find(ctx, productCode, effectiveFrom, threshold); err != nil {
		return err
	}
	return s.normRepo.Delete(ctx, productCode, effectiveFrom, threshold)
}

// List retrieves a page of norms
func (s *DiscountNormService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[DiscountNormResponse], error) {
	filter = filter.Normalize()
	norms, total, err := s.normRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[DiscountNormResponse]{}, err
	}
	return shared.NewPaginated(ToDiscountNormResponses(norms), total, filter.Page, filter.PageSize), nil
}

// ByProduct returns every norm of a product
func (s *DiscountNormService) ByProduct(ctx context.Context, productCode string) ([]DiscountNormResponse, error) {
	norms, err := s.normRepo.FindByProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}
	return ToDiscountNormResponses(norms), nil
}

// Applicable finds the norm that would apply to a purchase of amount on date
func (s *DiscountNormService) Applicable(ctx context.Context, productCode string, amount decimal.Decimal, date time.Time) (*DiscountNormResponse, error) {
	if date.IsZero() {
		date = time.Now()
	}
	norm, err := s.normRepo.FindApplicable(ctx, productCode, amount, date)
	if err != nil {
		return nil, err
	}
	response := ToDiscountNormResponse(norm)
	return &response, nil
}
