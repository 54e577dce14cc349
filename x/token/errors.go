package token

import "github.com/iov-one/weave-escrow/errors"

// ErrCurrencyMismatch is returned when two accounts of different tokens
// are used in a single transfer.
var ErrCurrencyMismatch = errors.Register(1030, "currency mismatch")
