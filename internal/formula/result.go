package formula

import (
	"fmt"
	"math/big"
)

// Evaluation error messages. These strings are shown to users and matched by
// callers, so they are part of the package contract.
const (
	MsgDivisionByZero    = "Division by zero"
	MsgModuloByZero      = "Modulo by zero"
	MsgIntegerDivByZero  = "Integer div by zero"
	MsgInvalidReference  = "Invalid cell reference"
	MsgInvalidExpression = "Invalid expression"
)

// EvalError is a runtime evaluation failure. It carries only a message.
type EvalError struct {
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Message
}

// Result is either an integer value or an evaluation error, never both.
// The zero Result is an error with MsgInvalidExpression.
type Result struct {
	value *big.Int
	err   *EvalError
}

// OK wraps a value. The Result takes ownership of v.
func OK(v *big.Int) Result {
	return Result{value: v}
}

// OKInt64 wraps a small value.
func OKInt64(v int64) Result {
	return Result{value: big.NewInt(v)}
}

// Fail builds an error Result with a formatted message.
func Fail(format string, args ...any) Result {
	return Result{err: &EvalError{Message: fmt.Sprintf(format, args...)}}
}

// IsError reports whether r holds an error.
func (r Result) IsError() bool {
	return r.value == nil
}

// Int returns the value, or nil when r is an error.
func (r Result) Int() *big.Int {
	return r.value
}

// Err returns the error, or nil when r holds a value.
func (r Result) Err() *EvalError {
	if r.value != nil {
		return nil
	}
	if r.err == nil {
		return &EvalError{Message: MsgInvalidExpression}
	}
	return r.err
}

// String returns the decimal value or the error message, which is exactly
// what a cell displays.
func (r Result) String() string {
	if r.IsError() {
		return r.Err().Message
	}
	return r.value.String()
}
