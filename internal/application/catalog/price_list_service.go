package catalog

import (
	"context"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
)

// PriceListService manages the price history of products
type PriceListService struct {
	productRepo   catalog.ProductRepository
	priceListRepo catalog.PriceListRepository
	resolver      *PriceResolver
}

// NewPriceListService creates a new PriceListService
func NewPriceListService(productRepo catalog.ProductRepository, priceListRepo catalog.PriceListRepository, resolver *PriceResolver) *PriceListService {
	return &PriceListService{
		productRepo:   productRepo,
		priceListRepo: priceListRepo,
		resolver:      resolver,
	}
}

// Create adds a price-list entry for an existing product
func (s *PriceListService) Create(ctx context.Context, req CreatePriceEntryRequest) (*PriceEntryResponse, error) {
	entry, err := catalog.NewPriceEntry(req.ProductCode, req.EffectiveFrom, valueOrZero(req.Price))
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, entry.ProductCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewMissingReference("product %s not found", entry.ProductCode)
	}

	if err := s.priceListRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	response := ToPriceEntryResponse(entry)
	return &response, nil
}

// Get retrieves the entry identified by product and effective date
func (s *PriceListService) Get(ctx context.Context, productCode string, effectiveFrom time.Time) (*PriceEntryResponse, error) {
	entry, err := s.priceListRepo.Find(ctx, productCode, effectiveFrom)
	if err != nil {
		return nil, err
	}
	response := ToPriceEntryResponse(entry)
	return &response, nil
}

// Update changes the price of an entry
func (s *PriceListService) Update(ctx context.Context, productCode string, effectiveFrom time.Time, req UpdatePriceEntryRequest) (*PriceEntryResponse, error) {
	entry, err := s.priceListRepo.Find(ctx, productCode, effectiveFrom)
	if err != nil {
		return nil, err
	}
	if err := entry.ChangePrice(valueOrZero(req.Price)); err != nil {
		return nil, err
	}
	if err := s.priceListRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	response := ToPriceEntryResponse(entry)
	return &response, nil
}

// Delete removes an entry
func (s *PriceListService) Delete(ctx context.Context, productCode string, effectiveFrom time.Time) error {
	if _, err := s.priceListRepo.Find(ctx, productCode, effectiveFrom); err != nil {
		return err
	}
	return s.priceListRepo.Delete(ctx, productCode, effectiveFrom)
}

// List retrieves a page of entries across products
func (s *PriceListService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[PriceEntryResponse], error) {
	filter = filter.Normalize()
	entries, total, err := s.priceListRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[PriceEntryResponse]{}, err
	}
	return shared.NewPaginated(ToPriceEntryResponses(entries), total, filter.Page, filter.PageSize), nil
}

// History returns a product's entries, newest first
func (s *PriceListService) History(ctx context.Context, productCode string) ([]PriceEntryResponse, error) {
	entries, err := s.priceListRepo.FindByProduct(ctx, productCode)
	if err != nil {
		return nil, err
	}
	return ToPriceEntryResponses(entries), nil
}

// ValidAt returns every entry that has taken effect at asOf
func (s *PriceListService) ValidAt(ctx context.Context, asOf time.Time) ([]PriceEntryResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	entries, err := s.priceListRepo.FindValidAt(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return ToPriceEntryResponses(entries), nil
}

// Latest returns the newest entry of a product effective at asOf
func (s *PriceListService) Latest(ctx context.Context, productCode string, asOf time.Time) (*PriceEntryResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	entry, err := s.priceListRepo.FindLatestValid(ctx, productCode, asOf)
	if err != nil {
		return nil, err
	}
	response := ToPriceEntryResponse(entry)
	return &response, nil
}

// InRange returns a product's entries whose effective date falls in r
func (s *PriceListService) InRange(ctx context.Context, productCode string, r shared.DateRange) ([]PriceEntryResponse, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	entries, err := s.priceListRepo.FindInRange(ctx, productCode, r)
	if err != nil {
		return nil, err
	}
	return ToPriceEntryResponses(entries), nil
}

// Resolve returns the unit price an invoice line would receive
func (s *PriceListService) Resolve(ctx context.Context, productCode string, asOf time.Time) (*ResolvedPriceResponse, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	resolved, err := s.resolver.Resolve(ctx, productCode, asOf)
	if err != nil {
		return nil, err
	}
	return &ResolvedPriceResponse{
		ProductCode: productCode,
		AsOf:        asOf,
		Price:       resolved.Price,
		FromList:    resolved.FromList,
	}, nil
}
