package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPriceListRepository implements PriceListRepository using GORM
type GormPriceListRepository struct {
	db *gorm.DB
}

// NewGormPriceListRepository creates a new GormPriceListRepository
func NewGormPriceListRepository(db *gorm.DB) *GormPriceListRepository {
	return &GormPriceListRepository{db: db}
}

// Find loads one entry by its composite key
func (r *GormPriceListRepository) Find(ctx context.Context, productCode string, effectiveFrom time.Time) (*catalog.PriceEntry, error) {
	var model models.PriceEntryModel
	if err := r.db.WithContext(ctx).
		Where("product_code = ? AND effective_from = ?", productCode, effectiveFrom).
		First(&model).Error; err != nil {
		return nil, notFound(err, "price of product %s effective %s not found", productCode, effectiveFrom.Format(time.RFC3339))
	}
	entry := model.ToDomain()
	return &entry, nil
}

// FindByProduct returns the history of a product, newest first
func (r *GormPriceListRepository) FindByProduct(ctx context.Context, productCode string) ([]catalog.PriceEntry, error) {
	var rows []models.PriceEntryModel
	if err := r.db.WithContext(ctx).
		Where("product_code = ?", productCode).
		Order("effective_from DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPriceEntries(rows), nil
}

// FindValidAt returns every product's entries that have taken effect at asOf, newest first
func (r *GormPriceListRepository) FindValidAt(ctx context.Context, asOf time.Time) ([]catalog.PriceEntry, error) {
	var rows []models.PriceEntryModel
	if err := r.db.WithContext(ctx).
		Where("effective_from <= ?", asOf).
		Order("product_code ASC, effective_from DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPriceEntries(rows), nil
}

// FindLatestValid returns the entry with the greatest effective date not after asOf
func (r *GormPriceListRepository) FindLatestValid(ctx context.Context, productCode string, asOf time.Time) (*catalog.PriceEntry, error) {
	var model models.PriceEntryModel
	if err := r.db.WithContext(ctx).
		Where("product_code = ? AND effective_from <= ?", productCode, asOf).
		Order("effective_from DESC").
		Take(&model).Error; err != nil {
		return nil, notFound(err, "no price of product %s is valid at %s", productCode, asOf.Format(time.RFC3339))
	}
	entry := model.ToDomain()
	return &entry, nil
}

// FindInRange returns the entries of a product whose effective date lies in r, oldest first
func (r *GormPriceListRepository) FindInRange(ctx context.Context, productCode string, dr shared.DateRange) ([]catalog.PriceEntry, error) {
	query := r.db.WithContext(ctx).Where("product_code = ?", productCode)
	query = applyDateRange(query, "effective_from", dr)

	var rows []models.PriceEntryModel
	if err := query.Order("effective_from ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toPriceEntries(rows), nil
}

// FindAll lists entries page by page
func (r *GormPriceListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceEntry, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.PriceEntryModel{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count price-list entries: %w", err)
	}

	var rows []models.PriceEntryModel
	query = applyOrder(query, filter, PriceListSortFields, "product_code ASC, effective_from DESC", "product_code")
	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list price-list entries: %w", err)
	}
	return toPriceEntries(rows), total, nil
}

// Create fails with Conflict when the (product, effective date) key exists
func (r *GormPriceListRepository) Create(ctx context.Context, entry *catalog.PriceEntry) error {
	err := r.db.WithContext(ctx).Create(models.PriceEntryModelFromDomain(entry)).Error
	return writeConstraint(err, fmt.Sprintf("price of product %s effective %s", entry.ProductCode, entry.EffectiveFrom.Format(time.RFC3339)))
}

// Update changes the price of an existing entry
func (r *GormPriceListRepository) Update(ctx context.Context, entry *catalog.PriceEntry) error {
	result := r.db.WithContext(ctx).
		Model(&models.PriceEntryModel{}).
		Where("product_code = ? AND effective_from = ?", entry.ProductCode, entry.EffectiveFrom).
		Update("price", entry.Price)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("price of product %s effective %s not found", entry.ProductCode, entry.EffectiveFrom.Format(time.RFC3339))
	}
	return nil
}

// Delete removes one entry
func (r *GormPriceListRepository) Delete(ctx context.Context, productCode string, effectiveFrom time.Time) error {
	result := r.db.WithContext(ctx).
		Where("product_code = ? AND effective_from = ?", productCode, effectiveFrom).
		Delete(&models.PriceEntryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("price of product %s effective %s not found", productCode, effectiveFrom.Format(time.RFC3339))
	}
	return nil
}

func toPriceEntries(rows []models.PriceEntryModel) []catalog.PriceEntry {
	entries := make([]catalog.PriceEntry, len(rows))
	for i, model := range rows {
		entries[i] = model.ToDomain()
	}
	return entries
}

// applyDateRange bounds column by the set ends of dr, both inclusive
func applyDateRange(query *gorm.DB, column string, dr shared.DateRange) *gorm.DB {
	if !dr.From.IsZero() {
		query = query.Where(column+" >= ?", dr.From)
	}
	if !dr.To.IsZero() {
		query = query.Where(column+" <= ?", dr.To)
	}
	return query
}
