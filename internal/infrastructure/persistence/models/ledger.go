package models

import (
	"github.com/erp/accounting/internal/domain/ledger"
)

// AccountModel is the persistence model for a chart-of-accounts entry.
type AccountModel struct {
	Code    string `gorm:"type:varchar(10);primaryKey"`
	Name    string `gorm:"type:varchar(100);not null"`
	NameKey string `gorm:"type:varchar(100);not null;uniqueIndex:uq_accounts_name_key"`
	Level   int    `gorm:"not null;index"`
	Timestamps
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account.
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		Code:      m.Code,
		Name:      m.Name,
		Level:     m.Level,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AccountModelFromDomain creates a persistence model from a domain Account.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	return &AccountModel{
		Code:    a.Code,
		Name:    a.Name,
		NameKey: a.NameKey(),
		Level:   a.Level,
		Timestamps: Timestamps{
			CreatedAt: a.CreatedAt,
			UpdatedAt: a.UpdatedAt,
		},
	}
}
