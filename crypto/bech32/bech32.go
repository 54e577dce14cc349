// Package bech32 prints addresses in the human readable bech32 format and
// reads them back.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/weave-escrow/errors"
)

// Encode returns payload as a bech32 string with the hrp prefix.
func Encode(hrp string, payload []byte) (string, error) {
	groups, err := bech32.ConvertBits(payload, 8, 5, true)
	if err == nil {
		var s string
		if s, err = bech32.Encode(hrp, groups); err == nil {
			return s, nil
		}
	}
	return "", errors.Wrapf(errors.ErrInvalidInput, "bech32 %q: %s", hrp, err)
}

// Decode returns the prefix and the payload of a bech32 string.
func Decode(s string) (hrp string, payload []byte, err error) {
	hrp, groups, err := bech32.Decode(s)
	if err == nil {
		if payload, err = bech32.ConvertBits(groups, 5, 8, false); err == nil {
			return hrp, payload, nil
		}
	}
	return "", nil, errors.Wrapf(errors.ErrInvalidInput, "bech32 %q: %s", s, err)
}
