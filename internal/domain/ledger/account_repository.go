package ledger

import (
	"context"

	"github.com/erp/accounting/internal/domain/shared"
)

// AccountRepository defines the interface for chart-of-accounts persistence
type AccountRepository interface {
	FindByCode(ctx context.Context, code string) (*Account, error)

	// FindByCodes loads several accounts; missing codes are absent from the result
	FindByCodes(ctx context.Context, codes []string) ([]Account, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Account, int64, error)

	FindByLevel(ctx context.Context, level int) ([]Account, error)

	// FindByPrefix returns accounts whose code starts with prefix
	FindByPrefix(ctx context.Context, prefix string) ([]Account, error)

	// Search matches keyword against code and name
	Search(ctx context.Context, keyword string) ([]Account, error)

	// FindChildren returns every descendant of code
	FindChildren(ctx context.Context, code string) ([]Account, error)

	ExistsByCode(ctx context.Context, code string) (bool, error)

	// ExistsByName compares names case-insensitively, ignoring the account identified by excludeCode
	ExistsByName(ctx context.Context, name, excludeCode string) (bool, error)

	HasChildren(ctx context.Context, code string) (bool, error)

	// IsInUse reports whether any invoice or credit-note account field references code
	IsInUse(ctx context.Context, code string) (bool, error)

	Create(ctx context.Context, account *Account) error

	Update(ctx context.Context, account *Account) error

	Delete(ctx context.Context, code string) error
}
