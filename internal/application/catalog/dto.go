package catalog

import (
	"time"

	"github.com/erp/accounting/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a request to create a new product.
// An empty code is generated from the SP sequence.
type CreateProductRequest struct {
	Code        string           `json:"code" binding:"max=10"`
	Name        string           `json:"name" binding:"required,max=100"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Unit        string           `json:"unit" binding:"max=10"`
	Description string           `json:"description" binding:"max=200"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Unit        string           `json:"unit" binding:"max=10"`
	Description string           `json:"description" binding:"max=200"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		Code:        p.Code,
		Name:        p.Name,
		Price:       p.Price,
		Unit:        p.Unit,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// =============================================================================
// Price List DTOs
// =============================================================================

// CreatePriceEntryRequest represents a request to add a price-list entry.
// A missing effective date means now.
type CreatePriceEntryRequest struct {
	ProductCode   string           `json:"product_code" binding:"required,max=10"`
	EffectiveFrom time.Time        `json:"effective_from"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
}

// UpdatePriceEntryRequest changes the price of an existing entry
type UpdatePriceEntryRequest struct {
	Price *decimal.Decimal `json:"price" binding:"required"`
}

// PriceEntryResponse represents a price-list entry in API responses
type PriceEntryResponse struct {
	ProductCode   string          `json:"product_code"`
	EffectiveFrom time.Time       `json:"effective_from"`
	Price         decimal.Decimal `json:"price"`
}

// ResolvedPriceResponse is the outcome of price resolution for a product at a date
type ResolvedPriceResponse struct {
	ProductCode string          `json:"product_code"`
	AsOf        time.Time       `json:"as_of"`
	Price       decimal.Decimal `json:"price"`
	FromList    bool            `json:"from_price_list"`
}

// ToPriceEntryResponse converts a domain PriceEntry to PriceEntryResponse
func ToPriceEntryResponse(e *catalog.PriceEntry) PriceEntryResponse {
	return PriceEntryResponse{
		ProductCode:   e.ProductCode,
		EffectiveFrom: e.EffectiveFrom,
		Price:         e.Price,
	}
}

// ToPriceEntryResponses converts a slice of domain PriceEntries
func ToPriceEntryResponses(entries []catalog.PriceEntry) []PriceEntryResponse {
	responses := make([]PriceEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToPriceEntryResponse(&entries[i])
	}
	return responses
}

// =============================================================================
// Discount Norm DTOs
// =============================================================================

// CreateDiscountNormRequest represents a request to add a discount norm
type CreateDiscountNormRequest struct {
	ProductCode   string           `json:"product_code" binding:"required,max=10"`
	EffectiveFrom time.Time        `json:"effective_from"`
	Threshold     decimal.Decimal  `json:"threshold"`
	Rate          *decimal.Decimal `json:"rate" binding:"required"`
}

// UpdateDiscountNormRequest changes the rate of an existing norm
type UpdateDiscountNormRequest struct {
	Rate *decimal.Decimal `json:"rate" binding:"required"`
}

// DiscountNormResponse represents a discount norm in API responses
type DiscountNormResponse struct {
	ProductCode   string          `json:"product_code"`
	EffectiveFrom time.Time       `json:"effective_from"`
	Threshold     decimal.Decimal `json:"threshold"`
	Rate          decimal.Decimal `json:"rate"`
}

// ToDiscountNormResponse converts a domain DiscountNorm to DiscountNormResponse
func ToDiscountNormResponse(n *catalog.DiscountNorm) DiscountNormResponse {
	return DiscountNormResponse{
		ProductCode:   n.ProductCode,
		EffectiveFrom: n.EffectiveFrom,
		Threshold:     n.Threshold,
		Rate:          n.Rate,
	}
}

// ToDiscountNormResponses converts a slice of domain DiscountNorms
func ToDiscountNormResponses(norms []catalog.DiscountNorm) []DiscountNormResponse {
	responses := make([]DiscountNormResponse, len(norms))
	for i := range norms {
		responses[i] = ToDiscountNormResponse(&norms[i])
	}
	return responses
}
