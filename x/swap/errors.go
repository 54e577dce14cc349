package swap

import "github.com/iov-one/weave-escrow/errors"

var (
	// ErrOwnershipMismatch is returned when an account is not owned by
	// the identity that claims it.
	ErrOwnershipMismatch = errors.Register(1050, "account ownership mismatch")

	// ErrRecordMismatch is returned when the accounts or identities
	// referenced by a message do not match the stored escrow.
	ErrRecordMismatch = errors.Register(1051, "escrow record mismatch")
)
