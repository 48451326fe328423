package persistence

import (
	"context"
	"fmt"

	"github.com/erp/accounting/internal/domain/billing"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM.
// Header and lines are always written in one transaction.
type GormInvoiceRepository struct {
	db      *gorm.DB
	numbers numberer
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB, numberAttempts int) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		numbers: newNumberer(billing.InvoiceNumbers, "invoices", "number", "invoice", numberAttempts),
	}
}

func orderedInvoiceLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByNumber loads the invoice with its lines
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedInvoiceLines).
		First(&model, "number = ?", number).Error; err != nil {
		return nil, notFound(err, "invoice %s not found", number)
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks if an invoice number is taken
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lists invoices page by page, newest first by default
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
}

// Search applies the single filter the criteria resolve to
func (r *GormInvoiceRepository) Search(ctx context.Context, criteria billing.InvoiceCriteria, filter shared.Filter) ([]billing.Invoice, int64, error) {
	mode, c := criteria.Resolve()
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})

	switch mode {
	case billing.SearchByNumber:
		query = query.Where("number = ?", c.Number)
	case billing.SearchByCustomerAndRange:
		query = applyDateRange(query.Where("customer_code = ?", c.CustomerCode), "issue_date", c.Range)
	case billing.SearchByCustomer:
		query = query.Where("customer_code = ?", c.CustomerCode)
	case billing.SearchByRange:
		query = applyDateRange(query, "issue_date", c.Range)
	case billing.SearchByPaymentAndAmount:
		if c.PaymentMethod != "" {
			query = query.Where("payment_method = ?", c.PaymentMethod)
		}
		query = applyAmountRange(query, "total_amount", c.Total)
	}
	return r.list(query, filter)
}

func (r *GormInvoiceRepository) list(query *gorm.DB, filter shared.Filter) ([]billing.Invoice, int64, error) {
	filter = filter.Normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	var rows []models.InvoiceModel
	query = applyOrder(query, filter, InvoiceSortFields, "issue_date DESC, number DESC", "number")
	if err := paginate(query, filter).Preload("Lines", orderedInvoiceLines).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	return toInvoices(rows), total, nil
}

// FindByCustomer returns every invoice of a customer, newest first
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, customerCode string) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedInvoiceLines).
		Where("customer_code = ?", customerCode).
		Order("issue_date DESC, number DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// FindByProduct returns invoices having a line for the product, optionally within a date range
func (r *GormInvoiceRepository) FindByProduct(ctx context.Context, productCode string, dr shared.DateRange) ([]billing.Invoice, error) {
	lines := r.db.Model(&models.InvoiceLineModel{}).Select("invoice_number").Where("product_code = ?", productCode)
	query := r.db.WithContext(ctx).
		Preload("Lines", orderedInvoiceLines).
		Where("number IN (?)", lines)
	query = applyDateRange(query, "issue_date", dr)

	var rows []models.InvoiceModel
	if err := query.Order("issue_date DESC, number DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// Create writes header and lines atomically, assigning the next HD number when Number is empty
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	return r.numbers.insert(ctx, r.db, &invoice.Number, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.InvoiceModelFromDomain(invoice)).Error; err != nil {
			return err
		}
		lines := models.InvoiceLineModels(invoice)
		return tx.Create(&lines).Error
	})
}

// Update rewrites the header and replaces every line atomically
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.InvoiceModel{}).
			Where("number = ?", invoice.Number).
			Select("issue_date", "payment_method", "debit_account", "revenue_account",
				"tax_account", "tax_rate", "tax_amount", "discount_rate", "discount_account",
				"discount_amount", "net_amount", "total_amount", "description", "updated_at").
			Omit(clause.Associations).
			Updates(models.InvoiceModelFromDomain(invoice))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("invoice %s not found", invoice.Number)
		}
		if err := tx.Where("invoice_number = ?", invoice.Number).Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
		lines := models.InvoiceLineModels(invoice)
		return tx.Create(&lines).Error
	})
	return writeConstraint(err, "invoice "+invoice.Number)
}

// Delete removes header and lines atomically
func (r *GormInvoiceRepository) Delete(ctx context.Context, number string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_number = ?", number).Delete(&models.InvoiceLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.InvoiceModel{}, "number = ?", number)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("invoice %s not found", number)
		}
		return nil
	})
	return deleteConstraint(err, "invoice "+number)
}

// HasCreditNotes reports whether any credit note refers to the invoice
func (r *GormInvoiceRepository) HasCreditNotes(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CreditNoteModel{}).
		Where("invoice_number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextNumber previews the number the next generated invoice would receive
func (r *GormInvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	return r.numbers.next(ctx, r.db)
}

func toInvoices(rows []models.InvoiceModel) []billing.Invoice {
	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices
}

// applyAmountRange bounds column by the set ends of ar, both inclusive
func applyAmountRange(query *gorm.DB, column string, ar billing.AmountRange) *gorm.DB {
	if ar.Min != nil {
		query = query.Where(column+" >= ?", *ar.Min)
	}
	if ar.Max != nil {
		query = query.Where(column+" <= ?", *ar.Max)
	}
	return query
}
