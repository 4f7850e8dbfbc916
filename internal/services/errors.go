package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindNotFound
	KindMethodNotAllowed
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a tagged failure. Message is what the caller sees.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrCategoryRequired = &Error{Kind: KindValidation, Message: "category required"}
	ErrCategoryNotFound = &Error{Kind: KindNotFound, Message: "unknown category"}
	ErrConfigNotFound   = &Error{Kind: KindNotFound, Message: "config not found"}
	ErrUnauthorized     = &Error{Kind: KindAuth, Message: "Unauthorized"}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed, Message: "method not allowed"}
)

// Validation returns a validation error with the given message.
func Validation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

// StoreFailure tags err as a backing store failure. The underlying message
// is passed through to the caller.
func StoreFailure(err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return err
	}
	return &Error{Kind: KindStore, Err: err}
}

// KindOf reports the kind of err. Untagged errors count as store failures.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindStore
}

// Message returns the caller-facing message for err.
func Message(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Error()
	}
	return err.Error()
}
