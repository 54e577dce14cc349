package crypto

import (
	"github.com/iov-one/weave-escrow/errors"
	"github.com/stellar/go/exp/crypto/derivation"
)

// HDPath is the SLIP-0010 path of the n-th development account. Ed25519
// derivation supports hardened segments only.
const HDPath = "m/44'/234'/%d'"

// DeriveKey returns the key found under path in the tree of a master seed.
func DeriveKey(seed []byte, path string) (*PrivateKey, error) {
	node, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "derivation path %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(node.Key), nil
}
