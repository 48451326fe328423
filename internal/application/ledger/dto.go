package ledger

import (
	"time"

	"github.com/erp/accounting/internal/domain/ledger"
)

// CreateAccountRequest represents a request to open an account
type CreateAccountRequest struct {
	Code  string `json:"code" binding:"required,max=10"`
	Name  string `json:"name" binding:"required,max=100"`
	Level int    `json:"level" binding:"required,min=1,max=5"`
}

// UpdateAccountRequest represents a request to rename or re-level an account
type UpdateAccountRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Level int    `json:"level" binding:"required,min=1,max=5"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	ParentCode string    `json:"parent_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		Code:       a.Code,
		Name:       a.Name,
		Level:      a.Level,
		ParentCode: a.ParentCode(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain Accounts
func ToAccountResponses(accounts []ledger.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
