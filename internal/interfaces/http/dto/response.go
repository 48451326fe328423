package dto

import "github.com/erp/accounting/internal/domain/shared"

// Response is the envelope of every API response
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string, data any) Response {
	return Response{
		Success: false,
		Message: message,
		Data:    data,
	}
}

// ListRequest represents common list/pagination request parameters
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Filter converts the request into a normalized repository filter
func (r ListRequest) Filter() shared.Filter {
	return shared.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
		OrderBy:  r.OrderBy,
		OrderDir: r.OrderDir,
	}.Normalize()
}

// SearchRequest is a keyword search over a paginated listing
type SearchRequest struct {
	ListRequest
	Keyword string `form:"keyword"`
}

// ExistsData is the payload of the boolean check endpoints
type ExistsData struct {
	Exists bool `json:"exists"`
}

// CodeData is the payload of the next-code and next-number endpoints
type CodeData struct {
	Code string `json:"code"`
}
