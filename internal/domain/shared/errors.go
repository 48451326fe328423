package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies business failures so callers can react without parsing messages
type ErrorKind string

const (
	KindNotFound             ErrorKind = "NOT_FOUND"
	KindInvalidInput         ErrorKind = "INVALID_INPUT"
	KindConflict             ErrorKind = "CONFLICT"
	KindReferentialIntegrity ErrorKind = "REFERENTIAL_INTEGRITY"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	// Reference is set on NotFound errors about an entity named inside a
	// request rather than the entity the request addresses.
	Reference bool `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError of the same kind.
// A target without a message matches any error of its kind.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind != e.Kind || (t.Reference && !e.Reference) {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// NewNotFound reports a referenced entity that does not exist
func NewNotFound(format string, args ...any) *DomainError {
	return NewDomainError(KindNotFound, fmt.Sprintf(format, args...))
}

// NewMissingReference reports a request that names an entity that does not exist
func NewMissingReference(format string, args ...any) *DomainError {
	err := NewNotFound(format, args...)
	err.Reference = true
	return err
}

// AsMissingReference turns a NotFound in err into a missing reference.
// Any other error is returned unchanged.
func AsMissingReference(err error) error {
	var de *DomainError
	if errors.As(err, &de) && de.Kind == KindNotFound && !de.Reference {
		return NewMissingReference("%s", de.Message)
	}
	return err
}

// NewInvalidInput reports a malformed or out-of-range value
func NewInvalidInput(format string, args ...any) *DomainError {
	return NewDomainError(KindInvalidInput, fmt.Sprintf(format, args...))
}

// NewConflict reports a duplicate key or an attempt to change an immutable field
func NewConflict(format string, args ...any) *DomainError {
	return NewDomainError(KindConflict, fmt.Sprintf(format, args...))
}

// NewReferentialIntegrity reports a broken cross-entity reference
func NewReferentialIntegrity(format string, args ...any) *DomainError {
	return NewDomainError(KindReferentialIntegrity, fmt.Sprintf(format, args...))
}

// KindOf returns the kind of a domain error anywhere in err's chain, or "" otherwise
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// Sentinels for errors.Is checks; they match any message of their kind.
var (
	ErrNotFound             = &DomainError{Kind: KindNotFound}
	ErrMissingReference     = &DomainError{Kind: KindNotFound, Reference: true}
	ErrInvalidInput         = &DomainError{Kind: KindInvalidInput}
	ErrConflict             = &DomainError{Kind: KindConflict}
	ErrReferentialIntegrity = &DomainError{Kind: KindReferentialIntegrity}
)
