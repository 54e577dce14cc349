package errors

import (
	"fmt"
	"reflect"
)

// Codes 2, 3, 12 and 13 are part of the client contract of the swap
// program and must not be renumbered.
var (
	// ErrUnauthorized is returned when a required signature is missing
	// or when the signer is not the one allowed to act.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound is returned when a referenced account, token or escrow
	// does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg is returned when a transaction does not carry a
	// usable message.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel is returned when an entity cannot be persisted in
	// its current state.
	ErrInvalidModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a key or a unique index value is
	// already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman is returned when the code is used against its contract.
	ErrHuman = Register(7, "coding error")

	// ErrEmpty is returned when a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	// ErrInvalidState is returned when the stored state contradicts
	// itself.
	ErrInvalidState = Register(10, "invalid state")

	// ErrInvalidType is returned when a value is not of the expected type
	// or cannot be serialized.
	ErrInvalidType = Register(11, "invalid type")

	// ErrInsufficientAmount is returned when a balance does not cover the
	// requested amount.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrInvalidAmount is returned for amounts that can never be moved,
	// for example zero.
	ErrInvalidAmount = Register(13, "invalid amount")

	// ErrInvalidInput is returned for malformed or inconsistent input.
	ErrInvalidInput = Register(14, "invalid input")

	// ErrIteratorDone is returned by an iterator that reached the end of
	// its range. It is never sent to a client.
	ErrIteratorDone = Register(15, "iterator done")

	// ErrOverflow is returned when a balance or a counter would exceed its
	// type.
	ErrOverflow = Register(16, "value overflow")

	// ErrPanic marks a recovered panic. Its details are never sent to a
	// client.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 is taken by
// errors that carry no code at all.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a root error with a code unique in the application.
// Extensions call it from package level variables. A code that is already
// taken causes a panic.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		if prev == nil {
			panic(fmt.Sprintf("error code %d is reserved", code))
		}
		panic(fmt.Sprintf("error code %d is already used by %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. It is never returned alone at runtime, callers
// wrap it with the details of the failure.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code sent to the client.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Newf is a shortcut for Wrapf(e, format, args...).
func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is returns true if err was created from this root error. Wrapped errors
// are unwrapped and a multi error matches if any of its members does.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNil(err)
	}
	return walk(err, func(cur error) bool {
		root, ok := cur.(*Error)
		return ok && root == e
	})
}

// isNil returns true for a nil error and for a typed nil pointer hidden
// in the error interface.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
