// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindStoreUnavailable:
		return "store_unavailable"
	default:
		return "internal"
	}
}

// Error is the classified error returned across service boundaries.
type Error struct {
	Kind    Kind
	Message string
	// Resource names the record kind for not-found errors ("product", "order", "tracking").
	Resource string
	Details  interface{}
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string, details interface{}) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: resource + " not found"}
}

func Conflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func StoreUnavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "store unavailable", Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool       { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool         { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool         { return KindOf(err) == KindConflict }
func IsStoreUnavailable(err error) bool { return KindOf(err) == KindStoreUnavailable }
