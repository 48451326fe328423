package models

import (
	"github.com/erp/accounting/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	Code     string  `gorm:"type:varchar(10);primaryKey"`
	Name     string  `gorm:"type:varchar(100);not null;index"`
	Address  string  `gorm:"type:varchar(150);not null"`
	Phone    string  `gorm:"type:varchar(10)"`
	Email    string  `gorm:"type:varchar(100)"`
	TaxID    *string `gorm:"type:varchar(13);uniqueIndex:uq_customers_tax_id"`
	Category string  `gorm:"type:varchar(50)"`
	Timestamps
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		Code:      m.Code,
		Name:      m.Name,
		Address:   m.Address,
		Phone:     m.Phone,
		Email:     m.Email,
		TaxID:     deref(m.TaxID),
		Category:  m.Category,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CustomerModelFromDomain creates a persistence model from a domain Customer entity.
// An empty tax id is stored as NULL so the unique index only covers recorded ids.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	return &CustomerModel{
		Code:     c.Code,
		Name:     c.Name,
		Address:  c.Address,
		Phone:    c.Phone,
		Email:    c.Email,
		TaxID:    nullable(c.TaxID),
		Category: c.Category,
		Timestamps: Timestamps{
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
	}
}
