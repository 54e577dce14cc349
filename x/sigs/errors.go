package sigs

import "github.com/iov-one/weave-escrow/errors"

// ErrInvalidSequence means a signature does not carry the next nonce of
// its key.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
