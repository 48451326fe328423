package persistence

import (
	"strings"

	"github.com/erp/accounting/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"code":       true,
	"name":       true,
	"address":    true,
	"tax_id":     true,
	"category":   true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"code":       true,
	"name":       true,
	"price":      true,
	"unit":       true,
	"created_at": true,
	"updated_at": true,
}

// PriceListSortFields contains allowed sort fields for price-list entries
var PriceListSortFields = map[string]bool{
	"product_code":   true,
	"effective_from": true,
	"price":          true,
}

// DiscountNormSortFields contains allowed sort fields for discount norms
var DiscountNormSortFields = map[string]bool{
	"product_code":   true,
	"effective_from": true,
	"threshold":      true,
	"rate":           true,
}

// AccountSortFields contains allowed sort fields for accounts
var AccountSortFields = map[string]bool{
	"code":       true,
	"name":       true,
	"level":      true,
	"created_at": true,
	"updated_at": true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"number":         true,
	"issue_date":     true,
	"customer_code":  true,
	"customer_name":  true,
	"payment_method": true,
	"net_amount":     true,
	"total_amount":   true,
	"created_at":     true,
}

// CreditNoteSortFields contains allowed sort fields for credit notes
var CreditNoteSortFields = map[string]bool{
	"number":         true,
	"issue_date":     true,
	"customer_code":  true,
	"invoice_number": true,
	"net_amount":     true,
	"total_amount":   true,
	"created_at":     true,
}

// applyOrder orders by the whitelisted filter field, or by fallback when none is requested.
// The natural key is appended so pages are stable.
func applyOrder(query *gorm.DB, filter shared.Filter, allowed map[string]bool, fallback, key string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "")
	if field == "" {
		return query.Order(fallback)
	}
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if field != key {
		query = query.Order(key + " ASC")
	}
	return query
}

// paginate applies the offset and limit of a normalized filter
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// likePattern wraps keyword for a substring LIKE match
func likePattern(keyword string) string {
	return "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
}
