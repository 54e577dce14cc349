package errors

import (
	"fmt"
	"strings"
)

// Field wraps err as the failure of a single message or model field. Name
// fields the Go way, for example Metadata or InitializerXAccount. A nil err
// returns nil, which lets Validate methods check all fields in a row:
//
//	errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
func Field(name string, err error, description string, args ...interface{}) error {
	if isNil(err) {
		return nil
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	if description != "" {
		err = Wrap(err, description)
	} else if stackOf(err) == nil {
		err = Wrap(err, "invalid")
	}
	return &fieldError{field: name, parent: err}
}

// AppendField adds the failure of a field to errs. Nothing is added for a
// nil fieldErr.
func AppendField(errs error, name string, fieldErr error) error {
	return Append(errs, Field(name, fieldErr, ""))
}

type fieldError struct {
	field  string
	parent error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.field, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

// Append collects all non nil errors. It returns nil when there are none
// and the error itself when there is one.
func Append(errs ...error) error {
	var all []error
	for _, e := range errs {
		switch {
		case isNil(e):
		case isMulti(e):
			all = append(all, e.(*multiError).errs...)
		default:
			all = append(all, e)
		}
	}
	switch len(all) {
	case 0:
		return nil
	case 1:
		return all[0]
	}
	return &multiError{errs: all}
}

func isMulti(err error) bool {
	_, ok := err.(*multiError)
	return ok
}

// multiError reports the code of its first member to the client.
type multiError struct {
	errs []error
}

func (e *multiError) Error() string {
	lines := make([]string, len(e.errs))
	for i, err := range e.errs {
		lines[i] = "* " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n", len(e.errs), strings.Join(lines, "\n\t"))
}

func (e *multiError) Unpack() []error {
	return e.errs
}

func (e *multiError) ABCICode() uint32 {
	return abciCode(e.errs[0])
}
