package errors

import "fmt"

const (
	// SuccessABCICode is the code of a processed request.
	SuccessABCICode = 0

	// Errors that do not carry a code are reported with code 1 and a
	// message that does not leak their details.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

type coder interface {
	ABCICode() uint32
}

// ABCIInfo returns the code and log of an ABCI response reporting err.
// Outside of debug mode the message of an uncoded error is replaced with
// a generic text and a panic reports no details. In debug mode the stack trace is included.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case ErrPanic.Is(err):
		return code, ErrPanic.desc
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// abciCode returns the code of the outermost error in the chain that
// declares one.
func abciCode(err error) uint32 {
	if isNil(err) {
		return SuccessABCICode
	}
	code := internalABCICode
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		cause, ok := err.(causer)
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return code
}
