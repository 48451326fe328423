package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDiscountNormRepository implements DiscountNormRepository using GORM
type GormDiscountNormRepository struct {
	db *gorm.DB
}

// NewGormDiscountNormRepository creates a new GormDiscountNormRepository
func NewGormDiscountNormRepository(db *gorm.DB) *GormDiscountNormRepository {
	return &GormDiscountNormRepository{db: db}
}

func normKey(productCode string, effectiveFrom time.Time, threshold decimal.Decimal) string {
	return fmt.Sprintf("discount norm of product %s effective %s from %s", productCode, effectiveFrom.Format(time.RFC3339), threshold.String())
}

// Find loads one norm by its composite key
func (r *GormDiscountNormRepository) Find(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) (*catalog.DiscountNorm, error) {
	var model models.DiscountNormModel
	if err := r.db.WithContext(ctx).
		Where("product_code = ? AND effective_from = ? AND threshold = ?", productCode, effectiveFrom, threshold).
		First(&model).Error; err != nil {
		return nil, notFound(err, "%s not found", normKey(productCode, effectiveFrom, threshold))
	}
	norm := model.ToDomain()
	return &norm, nil
}

// FindByProduct returns the norms of a product, newest first then by ascending threshold
func (r *GormDiscountNormRepository) FindByProduct(ctx context.Context, productCode string) ([]catalog.DiscountNorm, error) {
	var rows []models.DiscountNormModel
	if err := r.db.WithContext(ctx).
		Where("product_code = ?", productCode).
		Order("effective_from DESC, threshold ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDiscountNorms(rows), nil
}

// FindAll lists norms page by page
func (r *GormDiscountNormRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.DiscountNorm, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.DiscountNormModel{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count discount norms: %w", err)
	}

	var rows []models.DiscountNormModel
	query = applyOrder(query, filter, DiscountNormSortFields, "product_code ASC, effective_from DESC, threshold ASC", "product_code")
	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list discount norms: %w", err)
	}
	return toDiscountNorms(rows), total, nil
}

// FindApplicable returns the newest norm effective at date whose threshold is the greatest not above amount
func (r *GormDiscountNormRepository) FindApplicable(ctx context.Context, productCode string, amount decimal.Decimal, date time.Time) (*catalog.DiscountNorm, error) {
	var model models.DiscountNormModel
	if err := r.db.WithContext(ctx).
		Where("product_code = ? AND effective_from <= ? AND threshold <= ?", productCode, date, amount).
		Order("effective_from DESC, threshold DESC").
		Take(&model).Error; err != nil {
		return nil, notFound(err, "no discount norm of product %s applies to %s", productCode, amount.String())
	}
	norm := model.ToDomain()
	return &norm, nil
}

// Create fails with Conflict when the composite key exists
func (r *GormDiscountNormRepository) Create(ctx context.Context, norm *catalog.DiscountNorm) error {
	err := r.db.WithContext(ctx).Create(models.DiscountNormModelFromDomain(norm)).Error
	return writeConstraint(err, normKey(norm.ProductCode, norm.EffectiveFrom, norm.Threshold))
}

// Update changes the rate of an existing norm
func (r *GormDiscountNormRepository) Update(ctx context.Context, norm *catalog.DiscountNorm) error {
	result := r.db.WithContext(ctx).
		Model(&models.DiscountNormModel{}).
		Where("product_code = ? AND effective_from = ? AND threshold = ?", norm.ProductCode, norm.EffectiveFrom, norm.Threshold).
		Update("rate", norm.Rate)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("%s not found", normKey(norm.ProductCode, norm.EffectiveFrom, norm.Threshold))
	}
	return nil
}

// Delete removes one norm
func (r *GormDiscountNormRepository) Delete(ctx context.Context, productCode string, effectiveFrom time.Time, threshold decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Where("product_code = ? AND effective_from = ? AND threshold = ?", productCode, effectiveFrom, threshold).
		Delete(&models.DiscountNormModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("%s not found", normKey(productCode, effectiveFrom, threshold))
	}
	return nil
}

func toDiscountNorms(rows []models.DiscountNormModel) []catalog.DiscountNorm {
	norms := make([]catalog.DiscountNorm, len(rows))
	for i, model := range rows {
		norms[i] = model.ToDomain()
	}
	return norms
}
