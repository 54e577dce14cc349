/*
Package errors carries the coded errors of the swap ledger.

Every failure a handler reports wraps one of the root errors declared here
or registered by an extension with Register. The root error decides the
ABCI code a client receives, the wrapping layers only add context:

	if deposit.Balance < msg.XAmount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "deposit holds %d", deposit.Balance)
	}

Callers test the kind of a failure with Is, never by comparing messages.
The innermost Wrap records a stack trace, printed with %+v.
*/
package errors
