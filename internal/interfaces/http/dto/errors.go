package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// Fixed envelope messages
const (
	MessageValidationFailed  = "validation failed"
	MessageUnauthorized      = "authentication required"
	MessageRateLimited       = "too many requests, please try again later"
	MessageBodyTooLarge      = "request body exceeds maximum allowed size"
	MessageDuplicateRequest  = "request with this idempotency key was already processed"
	MessageSystemErrorPrefix = "system error: "
)

// StatusFor returns the HTTP status of a business error.
// Only a missing addressed resource is a 404; every other business error,
// including a reference to an unknown entity, is a 400.
func StatusFor(err *shared.DomainError) int {
	if err.Kind == shared.KindNotFound && !err.Reference {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// FromError maps err to an HTTP status and envelope.
// Business errors carry their kind in data. Anything else is a system error
// whose data names the Go type of the root cause.
func FromError(err error) (int, Response) {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return StatusFor(de), NewErrorResponse(de.Message, de.Kind)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, NewErrorResponse(MessageValidationFailed, ValidationMessages(verrs))
	}

	return http.StatusInternalServerError, SystemError(err)
}

// SystemError builds the envelope of an unexpected failure
func SystemError(err error) Response {
	cause := RootCause(err)
	return NewErrorResponse(MessageSystemErrorPrefix+cause.Error(), fmt.Sprintf("%T", cause))
}

// BindingError maps a request binding failure to a field -> message map
func BindingError(err error) Response {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewErrorResponse(MessageValidationFailed, ValidationMessages(verrs))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return NewErrorResponse(MessageValidationFailed, map[string]string{
			typeErr.Field: "Must be a " + typeErr.Type.String(),
		})
	}

	return NewErrorResponse(MessageValidationFailed, map[string]string{"body": err.Error()})
}

// FieldError builds a validation failure for a single path or query parameter
func FieldError(field, message string) Response {
	return NewErrorResponse(MessageValidationFailed, map[string]string{field: message})
}

// RootCause unwraps err down to the first error that wraps nothing
func RootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
