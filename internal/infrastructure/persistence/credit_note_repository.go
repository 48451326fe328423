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

// GormCreditNoteRepository implements CreditNoteRepository using GORM.
// Header and lines are always written in one transaction.
type GormCreditNoteRepository struct {
	db      *gorm.DB
	numbers numberer
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB, numberAttempts int) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{
		db:      db,
		numbers: newNumberer(billing.CreditNoteNumbers, "credit_notes", "number", "credit note", numberAttempts),
	}
}

func orderedCreditNoteLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindByNumber loads the credit note with its lines
func (r *GormCreditNoteRepository) FindByNumber(ctx context.Context, number string) (*billing.CreditNote, error) {
	var model models.CreditNoteModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedCreditNoteLines).
		First(&model, "number = ?", number).Error; err != nil {
		return nil, notFound(err, "credit note %s not found", number)
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks if a credit note number is taken
func (r *GormCreditNoteRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CreditNoteModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll lists credit notes page by page, newest first by default
func (r *GormCreditNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.CreditNote, int64, error) {
	return r.list(r.db.WithContext(ctx).Model(&models.CreditNoteModel{}), filter)
}

// Search applies the single filter the criteria resolve to
func (r *GormCreditNoteRepository) Search(ctx context.Context, criteria billing.CreditNoteCriteria, filter shared.Filter) ([]billing.CreditNote, int64, error) {
	mode, c := criteria.Resolve()
	query := r.db.WithContext(ctx).Model(&models.CreditNoteModel{})

	switch mode {
	case billing.SearchByNumber:
		query = query.Where("number = ?", c.Number)
	case billing.SearchByInvoice:
		query = query.Where("invoice_number = ?", c.InvoiceNumber)
	case billing.SearchByCustomerAndRange:
		query = applyDateRange(query.Where("customer_code = ?", c.CustomerCode), "issue_date", c.Range)
	case billing.SearchByCustomer:
		query = query.Where("customer_code = ?", c.CustomerCode)
	case billing.SearchByRange:
		query = applyDateRange(query, "issue_date", c.Range)
	case billing.SearchByAmount:
		query = applyAmountRange(query, "net_amount", c.Net)
	}
	return r.list(query, filter)
}

func (r *GormCreditNoteRepository) list(query *gorm.DB, filter shared.Filter) ([]billing.CreditNote, int64, error) {
	filter = filter.Normalize()
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count credit notes: %w", err)
	}

	var rows []models.CreditNoteModel
	query = applyOrder(query, filter, CreditNoteSortFields, "issue_date DESC, number DESC", "number")
	if err := paginate(query, filter).Preload("Lines", orderedCreditNoteLines).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list credit notes: %w", err)
	}
	return toCreditNotes(rows), total, nil
}

// FindByInvoice returns the credit notes raised against an invoice, oldest first
func (r *GormCreditNoteRepository) FindByInvoice(ctx context.Context, invoiceNumber string) ([]billing.CreditNote, error) {
	var rows []models.CreditNoteModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderedCreditNoteLines).
		Where("invoice_number = ?", invoiceNumber).
		Order("issue_date ASC, number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCreditNotes(rows), nil
}

// Create writes header and lines atomically, assigning the next PH number when Number is empty
func (r *GormCreditNoteRepository) Create(ctx context.Context, note *billing.CreditNote) error {
	return r.numbers.insert(ctx, r.db, &note.Number, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.CreditNoteModelFromDomain(note)).Error; err != nil {
			return err
		}
		lines := models.CreditNoteLineModels(note)
		return tx.Create(&lines).Error
	})
}

// Update rewrites the header and replaces every line atomically
func (r *GormCreditNoteRepository) Update(ctx context.Context, note *billing.CreditNote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CreditNoteModel{}).
			Where("number = ?", note.Number).
			Select("issue_date", "description", "reduction_account", "settlement_account",
				"tax_account", "tax_rate", "tax_amount", "net_amount", "total_amount", "updated_at").
			Omit(clause.Associations).
			Updates(models.CreditNoteModelFromDomain(note))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("credit note %s not found", note.Number)
		}
		if err := tx.Where("credit_note_number = ?", note.Number).Delete(&models.CreditNoteLineModel{}).Error; err != nil {
			return err
		}
		lines := models.CreditNoteLineModels(note)
		return tx.Create(&lines).Error
	})
	return writeConstraint(err, "credit note "+note.Number)
}

// Delete removes header and lines atomically
func (r *GormCreditNoteRepository) Delete(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("credit_note_number = ?", number).Delete(&models.CreditNoteLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.CreditNoteModel{}, "number = ?", number)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewNotFound("credit note %s not found", number)
		}
		return nil
	})
}

// NextNumber previews the number the next generated credit note would receive
func (r *GormCreditNoteRepository) NextNumber(ctx context.Context) (string, error) {
	return r.numbers.next(ctx, r.db)
}

func toCreditNotes(rows []models.CreditNoteModel) []billing.CreditNote {
	notes := make([]billing.CreditNote, len(rows))
	for i := range rows {
		notes[i] = *rows[i].ToDomain()
	}
	return notes
}
