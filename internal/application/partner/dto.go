package partner

import (
	"time"

	"github.com/erp/accounting/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer.
// An empty code is generated from the KH sequence.
type CreateCustomerRequest struct {
	Code     string `json:"code" binding:"max=10"`
	Name     string `json:"name" binding:"required,max=100"`
	Address  string `json:"address" binding:"required,max=150"`
	Phone    string `json:"phone" binding:"omitempty,digits10"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	TaxID    string `json:"tax_id" binding:"omitempty,taxid"`
	Category string `json:"category" binding:"max=50"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Address  string `json:"address" binding:"required,max=150"`
	Phone    string `json:"phone" binding:"omitempty,digits10"`
	Email    string `json:"email" binding:"omitempty,email,max=100"`
	TaxID    string `json:"tax_id" binding:"omitempty,taxid"`
	Category string `json:"category" binding:"max=50"`
}

func (r UpdateCustomerRequest) details() partner.CustomerDetails {
	return partner.CustomerDetails{
		Name:     r.Name,
		Address:  r.Address,
		Phone:    r.Phone,
		Email:    r.Email,
		TaxID:    r.TaxID,
		Category: r.Category,
	}
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		Code:      c.Code,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		TaxID:     c.TaxID,
		Category:  c.Category,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain Customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
