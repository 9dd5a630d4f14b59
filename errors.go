package pixelwin

import (
	"errors"
	"fmt"
)

var (
	ErrWindowCreate = errors.New("failed to create window")
	ErrMenuExists   = errors.New("menu already exists")
	ErrUpdateFailed = errors.New("failed to update window")
)

// Error carries one of the sentinel kinds plus the underlying cause, so
// both errors.Is(err, ErrUpdateFailed) and errors.Is(err, cause) hold.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pixelwin: %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("pixelwin: %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
