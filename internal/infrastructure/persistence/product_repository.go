package persistence

import (
	"context"
	"fmt"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db    *gorm.DB
	codes numberer
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB, numberAttempts int) *GormProductRepository {
	return &GormProductRepository{
		db:    db,
		codes: newNumberer(catalog.ProductCodes, "products", "code", "product", numberAttempts),
	}
}

// FindByCode finds a product by its code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, notFound(err, "product %s not found", code)
	}
	return model.ToDomain(), nil
}

// FindByCodes loads several products at once; missing codes are simply absent from the result
func (r *GormProductRepository) FindByCodes(ctx context.Context, codes []string) ([]catalog.Product, error) {
	if len(codes) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindAll lists products page by page
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
}

// Search matches keyword against name and description
func (r *GormProductRepository) Search(ctx context.Context, keyword string, filter shared.Filter) ([]catalog.Product, int64, error) {
	pattern := likePattern(keyword)
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	return r.list(query, filter)
}

func (r *GormProductRepository) list(query *gorm.DB, filter shared.Filter) ([]catalog.Product, int64, error) {
	filter = filter.Normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []models.ProductModel
	query = applyOrder(query, filter, ProductSortFields, "code ASC", "code")
	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return toProducts(rows), total, nil
}

// FindByUnit returns products sold in unit
func (r *GormProductRepository) FindByUnit(ctx context.Context, unit string) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("unit = ?", unit).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// ExistsByCode checks if a product with the given code exists
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByName compares names case-insensitively through the folded name key
func (r *GormProductRepository) ExistsByName(ctx context.Context, name, excludeCode string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).Where("name_key = ?", shared.FoldName(name))
	if excludeCode != "" {
		query = query.Where("code <> ?", excludeCode)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the product, assigning the next SP code when Code is empty
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.codes.insert(ctx, r.db, &product.Code, func(tx *gorm.DB) error {
		return tx.Create(models.ProductModelFromDomain(product)).Error
	})
}

// Update rewrites every mutable column of the product
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("code = ?", product.Code).
		Select("name", "name_key", "price", "unit", "description", "updated_at").
		Updates(model)
	if result.Error != nil {
		return writeConstraint(result.Error, "product name "+product.Name)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("product %s not found", product.Code)
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "code = ?", code)
	if result.Error != nil {
		return deleteConstraint(result.Error, "product "+code)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("product %s not found", code)
	}
	return nil
}

// IsReferenced reports whether price-list entries, discount norms or document lines use the product
func (r *GormProductRepository) IsReferenced(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Raw(`SELECT
			(SELECT COUNT(*) FROM price_lists WHERE product_code = ?) +
			(SELECT COUNT(*) FROM discount_norms WHERE product_code = ?) +
			(SELECT COUNT(*) FROM invoice_lines WHERE product_code = ?) +
			(SELECT COUNT(*) FROM credit_note_lines WHERE product_code = ?)`, code, code, code, code).
		Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextCode previews the code the next generated product would receive
func (r *GormProductRepository) NextCode(ctx context.Context) (string, error) {
	return r.codes.next(ctx, r.db)
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i, model := range rows {
		products[i] = *model.ToDomain()
	}
	return products
}
