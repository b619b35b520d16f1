package loader

import "fmt"

// DecodeError reports a tree file that does not describe a well-formed tree.
type DecodeError struct {
	// Path locates the offending value, e.g. "$.body.ret.val", or a
	// file:line:col position for syntax errors.
	Path string

	// Message describes the problem.
	Message string

	// Err is the underlying error, if any. Contract violations found while
	// constructing nodes are *ir.ContractError.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
