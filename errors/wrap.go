package errors

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Wrap adds description to err. A nil err stays nil so the call can close
// a function:
//
//	return errors.Wrap(bucket.Delete(db, id), "cannot delete escrow")
//
// Errors without an ABCI code are reported to clients as internal errors.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackOf(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

// Recover turns a panic into an ErrPanic assigned to err. It must be
// called with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

// Cause allows github.com/pkg/errors to find the root of the chain.
func (e *wrappedError) Cause() error {
	return e.parent
}

// Format prints the stack trace recorded by the innermost wrap when the
// %+v verb is used.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	switch {
	case verb == 'v' && s.Flag('+'):
		io.WriteString(s, e.Error())
		if st := stackOf(e); st != nil {
			fmt.Fprintf(s, "%+v", st)
		}
	case verb == 'q':
		fmt.Fprintf(s, "%q", e.Error())
	default:
		io.WriteString(s, e.Error())
	}
}

type causer interface {
	Cause() error
}

type unpacker interface {
	Unpack() []error
}

// walk calls fn for err and every error it wraps until fn returns true.
// Members of a multi error are visited depth first.
func walk(err error, fn func(error) bool) bool {
	for err != nil {
		if fn(err) {
			return true
		}
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				if walk(member, fn) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// stackOf returns the first stack trace found in the chain of err.
func stackOf(err error) errors.StackTrace {
	type tracer interface {
		StackTrace() errors.StackTrace
	}
	var st errors.StackTrace
	walk(err, func(cur error) bool {
		if t, ok := cur.(tracer); ok {
			st = t.StackTrace()
			return true
		}
		return false
	})
	return st
}
