package service

import "fmt"

// ValidationError is a client mistake caught before any storage write. The
// message is safe to show verbatim.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a referenced entity that does not exist.
type NotFoundError struct{ msg string }

func (e *NotFoundError) Error() string { return e.msg }

func notFoundf(format string, args ...interface{}) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// ShortfallError aggregates every product that could not be fully satisfied
// from batch stock. It is only returned after ALL requested items have been
// examined, and always after the surrounding transaction has rolled back —
// the caller sees the complete list and no partial state.
type ShortfallError struct {
	Shortfalls []string
}

func (e *ShortfallError) Error() string {
	return "Not enough stock for one or more products."
}
