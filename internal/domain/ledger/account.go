// Package ledger holds the chart of accounts.
package ledger

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/accounting/internal/domain/shared"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

var accountCodePattern = regexp.MustCompile(`^[0-9.]+$`)

// Account is a chart-of-accounts entry. Codes use dotted notation: "511.1" is a child of "511".
type Account struct {
	Code      string
	Name      string
	Level     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates an account after checking code shape, name and level bounds
func NewAccount(code, name string, level int) (*Account, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewInvalidInput("account code cannot be empty")
	}
	if utf8.RuneCountInString(code) > 10 {
		return nil, shared.NewInvalidInput("account code cannot exceed 10 characters")
	}
	if !accountCodePattern.MatchString(code) || strings.HasPrefix(code, ".") || strings.HasSuffix(code, ".") {
		return nil, shared.NewInvalidInput("account code must contain digits separated by dots")
	}
	a := &Account{Code: code}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	if err := a.ChangeLevel(level); err != nil {
		return nil, err
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// Rename changes the display name
func (a *Account) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewInvalidInput("account name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewInvalidInput("account name cannot exceed 100 characters")
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	return nil
}

// ChangeLevel sets the hierarchy level. Callers must refuse the change while children exist.
func (a *Account) ChangeLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return shared.NewInvalidInput("account level must be between %d and %d", MinLevel, MaxLevel)
	}
	a.Level = level
	a.UpdatedAt = time.Now()
	return nil
}

// ParentCode returns the code up to the last dot, or "" for a top-level code
func (a *Account) ParentCode() string {
	return ParentCode(a.Code)
}

// RequiresParent reports whether the parent account must exist before this one
func (a *Account) RequiresParent() bool {
	return a.Level > MinLevel && a.ParentCode() != ""
}

// NameKey returns the case-insensitive key used for name uniqueness
func (a *Account) NameKey() string {
	return shared.FoldName(a.Name)
}

// ParentCode returns the code up to the last dot, or "" when code has no dot
func ParentCode(code string) string {
	i := strings.LastIndex(code, ".")
	if i <= 0 {
		return ""
	}
	return code[:i]
}

// ChildPattern returns the LIKE pattern matching every descendant of code
func ChildPattern(code string) string {
	return code + ".%"
}
