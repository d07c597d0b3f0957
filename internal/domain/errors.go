package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags every failure the request pipeline knows how to answer.
type Kind int

const (
	KindUnclassified Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthenticated
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return "unclassified"
	}
}

type kinded interface {
	error
	Kind() Kind
}

// KindOf returns the tag of the first tagged failure in err's chain.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnclassified
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationError keeps violations in the order they were found.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

// Map merges all violations; the first message for a field wins.
func (e *ValidationError) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}
	return out
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Kind() Kind { return KindValidation }

// NewValidationError is a shortcut for a single-field violation.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: msg}}}
}

// ConflictError is a uniqueness violation reported by a store.
type ConflictError struct {
	Resource string
	Field    string
	Err      error
}

func (e ConflictError) Error() string {
	if e.Field == "" {
		return "Duplicate key error"
	}
	return "Duplicate key error for field: " + e.Field
}

func (e ConflictError) Unwrap() error { return e.Err }
func (e ConflictError) Kind() Kind    { return KindConflict }

type NotFoundError struct {
	Resource string
	Op       string
}

func (e NotFoundError) Error() string {
	resource := e.Resource
	if resource == "" {
		resource = "Resource"
	}
	if e.Op == "" {
		return resource + " not found"
	}
	return fmt.Sprintf("%s not found (%s)", resource, e.Op)
}

func (e NotFoundError) Kind() Kind { return KindNotFound }

type UnauthenticatedError struct {
	Msg string
	Err error
}

func (e UnauthenticatedError) Error() string {
	if e.Msg == "" {
		return "unauthenticated"
	}
	return e.Msg
}

func (e UnauthenticatedError) Unwrap() error { return e.Err }
func (e UnauthenticatedError) Kind() Kind    { return KindUnauthenticated }

type ForbiddenError struct {
	Msg string
	Err error
}

func (e ForbiddenError) Error() string {
	if e.Msg == "" {
		return "forbidden"
	}
	return e.Msg
}

func (e ForbiddenError) Unwrap() error { return e.Err }
func (e ForbiddenError) Kind() Kind    { return KindForbidden }

// Fixed messages of the auth gate.
const (
	MsgTokenMissing = "Authorization token not provided"
	MsgTokenExpired = "Token has expired"
	MsgTokenInvalid = "Invalid token"
	MsgRoleMismatch = "Access forbidden. User does not have the required role."
)

var (
	ErrTokenMissing = UnauthenticatedError{Msg: MsgTokenMissing}
	ErrRoleMismatch = ForbiddenError{Msg: MsgRoleMismatch}
)

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsUnclassified(err error) bool { return KindOf(err) == KindUnclassified }
