// Package failure defines the error kinds shared by the catalog and ordering
// domains, and their stable wire codes.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a value outside a closed enumeration or
	// otherwise structurally invalid input.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrProductAlreadyExists indicates a create that violates name uniqueness.
	ErrProductAlreadyExists = errors.New("product already exists")
	// ErrProductNotFound indicates the referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrNoObjectFound indicates a referenced entity or a filtered result set
	// does not exist.
	ErrNoObjectFound = errors.New("no object found")
)

// Code is the stable wire representation of an error kind.
type Code string

const (
	CodeInvalidParameter     Code = "invalid_parameter"
	CodeProductAlreadyExists Code = "product_already_exists"
	CodeProductNotFound      Code = "product_not_found"
	CodeNoObjectFound        Code = "no_object_found"
	CodeInternal             Code = "internal"
)

var kinds = []struct {
	code Code
	err  error
}{
	{CodeInvalidParameter, ErrInvalidParameter},
	{CodeProductAlreadyExists, ErrProductAlreadyExists},
	{CodeProductNotFound, ErrProductNotFound},
	{CodeNoObjectFound, ErrNoObjectFound},
}

// Wrap annotates kind with a formatted message. The result satisfies
// errors.Is(err, kind).
func Wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// CodeOf returns the wire code for the kind err belongs to.
func CodeOf(err error) Code {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return CodeInternal
}

// FromCode rebuilds an error of the kind named by code. Unknown codes yield a
// plain error carrying message.
func FromCode(code Code, message string) error {
	for _, k := range kinds {
		if k.code == code {
			return &remoteError{kind: k.err, message: message}
		}
	}
	return errors.New(message)
}

type remoteError struct {
	kind    error
	message string
}

func (e *remoteError) Error() string { return e.message }

func (e *remoteError) Unwrap() error { return e.kind }

// Reply carries an error across a request-reply hop.
type Reply struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ToReply converts err to a Reply. A nil error yields nil.
func ToReply(err error) *Reply {
	if err == nil {
		return nil
	}
	return &Reply{Code: CodeOf(err), Message: err.Error()}
}

// Err converts the reply back into an error. A nil reply yields nil.
func (r *Reply) Err() error {
	if r == nil {
		return nil
	}
	return FromCode(r.Code, r.Message)
}
