package persistence

import (
	"context"
	"fmt"

	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByCode finds an account by its code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, notFound(err, "account %s not found", code)
	}
	return model.ToDomain(), nil
}

// FindByCodes loads several accounts; missing codes are absent from the result
func (r *GormAccountRepository) FindByCodes(ctx context.Context, codes []string) ([]ledger.Account, error) {
	if len(codes) == 0 {
		return []ledger.Account{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("code IN ?", codes))
}

// FindAll lists accounts page by page
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, int64, error) {
	filter = filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	var rows []models.AccountModel
	query = applyOrder(query, filter, AccountSortFields, "code ASC", "code")
	if err := paginate(query, filter).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return toAccounts(rows), total, nil
}

// FindByLevel returns accounts at level
func (r *GormAccountRepository) FindByLevel(ctx context.Context, level int) ([]ledger.Account, error) {
	return r.find(r.db.WithContext(ctx).Where("level = ?", level))
}

// FindByPrefix returns accounts whose code starts with prefix
func (r *GormAccountRepository) FindByPrefix(ctx context.Context, prefix string) ([]ledger.Account, error) {
	return r.find(r.db.WithContext(ctx).Where("code LIKE ?", prefix+"%"))
}

// Search matches keyword against code and name
func (r *GormAccountRepository) Search(ctx context.Context, keyword string) ([]ledger.Account, error) {
	pattern := likePattern(keyword)
	return r.find(r.db.WithContext(ctx).Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern))
}

// FindChildren returns every descendant of code
func (r *GormAccountRepository) FindChildren(ctx context.Context, code string) ([]ledger.Account, error) {
	return r.find(r.db.WithContext(ctx).Where("code LIKE ?", ledger.ChildPattern(code)))
}

func (r *GormAccountRepository) find(query *gorm.DB) ([]ledger.Account, error) {
	var rows []models.AccountModel
	if err := query.Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAccounts(rows), nil
}

// ExistsByCode checks if an account with the given code exists
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(r.db.WithContext(ctx).Where("code = ?", code))
}

// ExistsByName compares names case-insensitively, ignoring the account identified by excludeCode
func (r *GormAccountRepository) ExistsByName(ctx context.Context, name, excludeCode string) (bool, error) {
	query := r.db.WithContext(ctx).Where("name_key = ?", shared.FoldName(name))
	if excludeCode != "" {
		query = query.Where("code <> ?", excludeCode)
	}
	return r.exists(query)
}

// HasChildren reports whether any account sits below code
func (r *GormAccountRepository) HasChildren(ctx context.Context, code string) (bool, error) {
	return r.exists(r.db.WithContext(ctx).Where("code LIKE ?", ledger.ChildPattern(code)))
}

func (r *GormAccountRepository) exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Model(&models.AccountModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsInUse reports whether any invoice or credit-note account field references code
func (r *GormAccountRepository) IsInUse(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Raw(`SELECT
			(SELECT COUNT(*) FROM invoices
				WHERE debit_account = ? OR revenue_account = ? OR tax_account = ? OR discount_account = ?) +
			(SELECT COUNT(*) FROM credit_notes
				WHERE reduction_account = ? OR settlement_account = ? OR tax_account = ?)`,
			code, code, code, code, code, code, code).
		Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the account; a duplicate code or name is Conflict
func (r *GormAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	err := r.db.WithContext(ctx).Create(models.AccountModelFromDomain(account)).Error
	return writeConstraint(err, "account "+account.Code)
}

// Update rewrites the name and level of the account
func (r *GormAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("code = ?", account.Code).
		Select("name", "name_key", "level", "updated_at").
		Updates(model)
	if result.Error != nil {
		return writeConstraint(result.Error, "account name "+account.Name)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("account %s not found", account.Code)
	}
	return nil
}

// Delete deletes an account
func (r *GormAccountRepository) Delete(ctx context.Context, code string) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "code = ?", code)
	if result.Error != nil {
		return deleteConstraint(result.Error, "account "+code)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFound("account %s not found", code)
	}
	return nil
}

func toAccounts(rows []models.AccountModel) []ledger.Account {
	accounts := make([]ledger.Account, len(rows))
	for i, model := range rows {
		accounts[i] = *model.ToDomain()
	}
	return accounts
}
