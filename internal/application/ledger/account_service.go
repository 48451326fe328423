// Package ledger provides chart-of-accounts use cases.
package ledger

import (
	"context"

	"github.com/erp/accounting/internal/domain/ledger"
	"github.com/erp/accounting/internal/domain/shared"
)

// AccountService handles chart-of-accounts operations
type AccountService struct {
	accountRepo ledger.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo ledger.AccountRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

// Create opens a new account. A sub-account needs its parent to exist.
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	account, err := ledger.NewAccount(req.Code, req.Name, req.Level)
	if err != nil {
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByCode(ctx, account.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflict("account code %s already exists", account.Code)
	}

	if err := s.checkName(ctx, account.Name, ""); err != nil {
		return nil, err
	}

	if account.RequiresParent() {
		parentExists, err := s.accountRepo.ExistsByCode(ctx, account.ParentCode())
		if err != nil {
			return nil, err
		}
		if !parentExists {
			return nil, shared.NewMissingReference("parent account %s not found", account.ParentCode())
		}
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// GetByCode retrieves an account by code
func (s *AccountService) GetByCode(ctx context.Context, code string) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// Exists reports whether an account with the code exists
func (s *AccountService) Exists(ctx context.Context, code string) (bool, error) {
	return s.accountRepo.ExistsByCode(ctx, code)
}

// List retrieves a page of accounts ordered by code
func (s *AccountService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[AccountResponse], error) {
	filter = filter.Normalize()
	accounts, total, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[AccountResponse]{}, err
	}
	return shared.NewPaginated(ToAccountResponses(accounts), total, filter.Page, filter.PageSize), nil
}

// ByLevel returns every account at level
func (s *AccountService) ByLevel(ctx context.Context, level int) ([]AccountResponse, error) {
	if level < ledger.MinLevel || level > ledger.MaxLevel {
		return nil, shared.NewInvalidInput("account level must be between %d and %d", ledger.MinLevel, ledger.MaxLevel)
	}
	accounts, err := s.accountRepo.FindByLevel(ctx, level)
	if err != nil {
		return nil, err
	}
	return ToAccountResponses(accounts), nil
}

// ByPrefix returns accounts whose code starts with prefix
func (s *AccountService) ByPrefix(ctx context.Context, prefix string) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return ToAccountResponses(accounts), nil
}

// Search matches keyword against code and name
func (s *AccountService) Search(ctx context.Context, keyword string) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return ToAccountResponses(accounts), nil
}

// Children returns every descendant of code
func (s *AccountService) Children(ctx context.Context, code string) ([]AccountResponse, error) {
	if _, err := s.accountRepo.FindByCode(ctx, code); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindChildren(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToAccountResponses(accounts), nil
}

// NextLevel returns the descendants of code exactly one level below it
func (s *AccountService) NextLevel(ctx context.Context, code string) ([]AccountResponse, error) {
	parent, err := s.accountRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	children, err := s.accountRepo.FindChildren(ctx, code)
	if err != nil {
		return nil, err
	}
	direct := make([]ledger.Account, 0, len(children))
	for _, c := range children {
		if c.Level == parent.Level+1 {
			direct = append(direct, c)
		}
	}
	return ToAccountResponses(direct), nil
}

// InUse reports whether any invoice or credit note posts to code
func (s *AccountService) InUse(ctx context.Context, code string) (bool, error) {
	return s.accountRepo.IsInUse(ctx, code)
}

// Update renames an account and may change its level while it has no children
func (s *AccountService) Update(ctx context.Context, code string, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := account.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, account.Name, account.Code); err != nil {
		return nil, err
	}

	if req.Level != account.Level {
		hasChildren, err := s.accountRepo.HasChildren(ctx, account.Code)
		if err != nil {
			return nil, err
		}
		if hasChildren {
			return nil, shared.NewConflict("level of account %s cannot change while it has sub-accounts", account.Code)
		}
		if err := account.ChangeLevel(req.Level); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	response := ToAccountResponse(account)
	return &response, nil
}

// Delete removes an account that has no sub-accounts and no postings
func (s *AccountService) Delete(ctx context.Context, code string) error {
	if _, err := s.accountRepo.FindByCode(ctx, code); err != nil {
		return err
	}

	inUse, err := s.accountRepo.IsInUse(ctx, code)
	if err != nil {
		return err
	}
	if inUse {
		return shared.NewConflict("account %s is used by invoices or credit notes", code)
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, code)
	if err != nil {
		return err
	}
	if hasChildren {
		return shared.NewConflict("account %s has sub-accounts", code)
	}

	return s.accountRepo.Delete(ctx, code)
}

func (s *AccountService) checkName(ctx context.Context, name, excludeCode string) error {
	exists, err := s.accountRepo.ExistsByName(ctx, name, excludeCode)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewConflict("account name %s already exists", name)
	}
	return nil
}
