package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductCodes is the numbering scheme for generated product codes
var ProductCodes = shared.Sequence{Prefix: "SP", Width: 4}

// Product is a good or service that can be invoiced
type Product struct {
	Code        string
	Name        string
	Price       decimal.Decimal // base price, used when no price-list entry applies
	Unit        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductDetails holds the mutable attributes of a product
type ProductDetails struct {
	Name        string
	Price       decimal.Decimal
	Unit        string
	Description string
}

// NewProduct creates a product. An empty code is assigned at persistence time.
func NewProduct(code string, details ProductDetails) (*Product, error) {
	code = strings.TrimSpace(code)
	if utf8.RuneCountInString(code) > 10 {
		return nil, shared.NewInvalidInput("product code cannot exceed 10 characters")
	}
	p := &Product{Code: code}
	if err := p.apply(details); err != nil {
		return nil, err
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p, nil
}

// Update replaces the mutable attributes
func (p *Product) Update(details ProductDetails) error {
	if err := p.apply(details); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return nil
}

// NameKey returns the case-insensitive key used for name uniqueness
func (p *Product) NameKey() string {
	return shared.FoldName(p.Name)
}

func (p *Product) apply(d ProductDetails) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Unit = strings.TrimSpace(d.Unit)
	d.Description = strings.TrimSpace(d.Description)

	if d.Name == "" {
		return shared.NewInvalidInput("product name cannot be empty")
	}
	if utf8.RuneCountInString(d.Name) > 100 {
		return shared.NewInvalidInput("product name cannot exceed 100 characters")
	}
	if d.Price.IsNegative() {
		return shared.NewInvalidInput("product price cannot be negative")
	}
	if utf8.RuneCountInString(d.Unit) > 10 {
		return shared.NewInvalidInput("unit of measure cannot exceed 10 characters")
	}
	if utf8.RuneCountInString(d.Description) > 200 {
		return shared.NewInvalidInput("product description cannot exceed 200 characters")
	}

	p.Name = d.Name
	p.Price = d.Price
	p.Unit = d.Unit
	p.Description = d.Description
	return nil
}
