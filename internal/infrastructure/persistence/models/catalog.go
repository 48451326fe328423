package models

import (
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	Code        string          `gorm:"type:varchar(10);primaryKey"`
	Name        string          `gorm:"type:varchar(100);not null"`
	NameKey     string          `gorm:"type:varchar(100);not null;uniqueIndex:uq_products_name_key"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Unit        string          `gorm:"type:varchar(10)"`
	Description string          `gorm:"type:varchar(200)"`
	Timestamps
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		Code:        m.Code,
		Name:        m.Name,
		Price:       m.Price,
		Unit:        m.Unit,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	return &ProductModel{
		Code:        p.Code,
		Name:        p.Name,
		NameKey:     p.NameKey(),
		Price:       p.Price,
		Unit:        p.Unit,
		Description: p.Description,
		Timestamps: Timestamps{
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
	}
}

// PriceEntryModel is one row of a product's price history, keyed by (product, effective date)
type PriceEntryModel struct {
	ProductCode   string          `gorm:"type:varchar(10);primaryKey"`
	EffectiveFrom time.Time       `gorm:"primaryKey"`
	Price         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PriceEntryModel) TableName() string {
	return "price_lists"
}

// ToDomain converts the persistence model to a domain PriceEntry.
func (m *PriceEntryModel) ToDomain() catalog.PriceEntry {
	return catalog.PriceEntry{
		ProductCode:   m.ProductCode,
		EffectiveFrom: m.EffectiveFrom,
		Price:         m.Price,
	}
}

// PriceEntryModelFromDomain creates a persistence model from a domain PriceEntry.
func PriceEntryModelFromDomain(e *catalog.PriceEntry) *PriceEntryModel {
	return &PriceEntryModel{
		ProductCode:   e.ProductCode,
		EffectiveFrom: e.EffectiveFrom,
		Price:         e.Price,
	}
}

// DiscountNormModel is keyed by (product, effective date, amount threshold)
type DiscountNormModel struct {
	ProductCode   string          `gorm:"type:varchar(10);primaryKey"`
	EffectiveFrom time.Time       `gorm:"primaryKey"`
	Threshold     decimal.Decimal `gorm:"type:decimal(18,2);primaryKey"`
	Rate          decimal.Decimal `gorm:"type:decimal(5,2);not null"`
}

// TableName returns the table name for GORM
func (DiscountNormModel) TableName() string {
	return "discount_norms"
}

// ToDomain converts the persistence model to a domain DiscountNorm.
func (m *DiscountNormModel) ToDomain() catalog.DiscountNorm {
	return catalog.DiscountNorm{
		ProductCode:   m.ProductCode,
		EffectiveFrom: m.EffectiveFrom,
		Threshold:     m.Threshold,
		Rate:          m.Rate,
	}
}

// DiscountNormModelFromDomain creates a persistence model from a domain DiscountNorm.
func DiscountNormModelFromDomain(n *catalog.DiscountNorm) *DiscountNormModel {
	return &DiscountNormModel{
		ProductCode:   n.ProductCode,
		EffectiveFrom: n.EffectiveFrom,
		Threshold:     n.Threshold,
		Rate:          n.Rate,
	}
}
