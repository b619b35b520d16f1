package ir

import (
	"errors"
	"fmt"
)

// Sentinel errors for contract violations. Match with errors.Is.
var (
	// ErrMissingChild means a node declares a child slot that holds nothing.
	ErrMissingChild = errors.New("declared child is missing")

	// ErrNoLocation means location repair reached a node with no span of its
	// own and no inherited span.
	ErrNoLocation = errors.New("no location information")

	// ErrMissingField means a required field was not supplied at construction.
	ErrMissingField = errors.New("required field is missing")
)

// ContractError reports a malformed tree: a defect in whatever produced it.
//
// Contract errors are never recoverable locally. They propagate to abort the
// compilation unit that contains the node.
type ContractError struct {
	// Err is one of the sentinel errors above.
	Err error

	// Kind is the kind of the offending node.
	Kind Kind

	// Field is the child slot or field name involved, if any.
	Field string

	// Message is additional detail.
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Kind, e.Err)
	if e.Field != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Field)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns the sentinel error.
func (e *ContractError) Unwrap() error {
	return e.Err
}

func missingChild(k Kind, field string) *ContractError {
	return &ContractError{Err: ErrMissingChild, Kind: k, Field: field}
}

func missingField(k Kind, field string) *ContractError {
	return &ContractError{Err: ErrMissingField, Kind: k, Field: field}
}

func noLocation(k Kind) *ContractError {
	return &ContractError{
		Err:     ErrNoLocation,
		Kind:    k,
		Message: "repair was started without a span at the root",
	}
}
