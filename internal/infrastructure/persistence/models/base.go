package models

import (
	"time"
)

// Timestamps provides the audit columns shared by every table
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// All lists every model in dependency order
func All() []any {
	return []any{
		&CustomerModel{},
		&ProductModel{},
		&PriceEntryModel{},
		&DiscountNormModel{},
		&AccountModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
		&CreditNoteModel{},
		&CreditNoteLineModel{},
		&UserModel{},
	}
}

// nullable maps an empty string to NULL so optional references do not break foreign keys
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
