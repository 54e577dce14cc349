package orm

import "github.com/iov-one/weave-escrow/errors"

// ErrInvalidIndex is returned for an index a bucket does not have.
var ErrInvalidIndex = errors.Register(100, "invalid index")
