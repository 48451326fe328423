package persistence

import (
	"context"
	"fmt"

	"github.com/erp/accounting/internal/domain/partner"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db    *gorm.DB
	codes numberer
}

// NewGormCustomerRepository creates a new GormCustomerRepository.
// numberAttempts bounds the retries of generated code collisions.
func NewGormCustomerRepository(db *gorm.DB, numberAttempts int) *GormCustomerRepository {
	return &GormCustomerRepository{
		db:    db,
		codes: newNumberer(partner.CustomerCodes, "customers", "code", "customer", numberAttempts),
	}
}

// FindByCode finds a customer by its code
func (r *GormCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, notFound(err, "customer %s not found", code)
	}
	return model.ToDomain(), nil
}

// FindAll lists customers page by page
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
}

// Search matches keyword against name, address and tax id
func (r *GormCustomerRepository) Search(ctx context.Context, keyword string, filter shared.Filter) ([]partner.Customer, int64, error) {
	pattern := likePattern(keyword)
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{}).
		Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR tax_id LIKE ?", pattern, pattern, pattern)
	return r.list(ctx, query, filter)
}

func (r *GormCustomerRepository) list(ctx context.Context, query *gorm.DB, filter shared.Filter) ([]partner.Customer, int64, error) {
	filter = filter.Normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var rows []models.CustomerModel
	query = applyOrder(query, filter, CustomerSortFields, "code ASC", "code")
	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]partner.Customer, len(rows))
	for i, model := range rows {
		customers[i] = *model.ToDomain()
	}
	return customers, total, nil
}

// ExistsByCode checks if a customer with the given code exists
func (r *GormCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByTaxID checks tax id uniqueness, ignoring the customer identified by excludeCode
func (r *GormCustomerRepository) ExistsByTaxID(ctx context.Context, taxID, excludeCode string) (bool, error) {
	if taxID == "" {
		return false, nil
	}
	query := r.db.WithContext(ctx).Model(&models.CustomerModel{}).Where("tax_id = ?", taxID)
	if excludeCode != "" {
		query = query.Where("code <> ?", excludeCode)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the customer, assigning the next KH code when Code is empty
func (r *GormCustomerRepository) Create(ctx context.Context, customer *partner.Customer) error {
	return r.codes.insert(ctx, r.db, &customer.Code, func(tx *gorm.DB) error {
		return tx.Create(models.CustomerModelFromDomain(customer)).Error
	})
}

// Update rewrites every mutable column of the customer
func (r *GormCustomerRepository) Update(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("code = ?", customer.Code).
		Select("name", "address", "phone", "email", "tax_id", "category", "updated_at").
		Updates(model)
	if result.Error != nil {
		return writeConstraint(result.Error, "customer tax id "+customer.TaxID)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("customer %s not found", customer.Code)
	}
	return nil
}

// Delete deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "code = ?", code)
	if result.Error != nil {
		return deleteConstraint(result.Error, "customer "+code)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("customer %s not found", code)
	}
	return nil
}

// HasDocuments reports whether any invoice or credit note references the customer
func (r *GormCustomerRepository) HasDocuments(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Raw(`SELECT
			(SELECT COUNT(*) FROM invoices WHERE customer_code = ?) +
			(SELECT COUNT(*) FROM credit_notes WHERE customer_code = ?)`, code, code).
		Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextCode previews the code the next generated customer would receive
func (r *GormCustomerRepository) NextCode(ctx context.Context) (string, error) {
	return r.codes.next(ctx, r.db)
}
