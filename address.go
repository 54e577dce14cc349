package weave

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/weave-escrow/crypto/bech32"
	"github.com/iov-one/weave-escrow/errors"
)

// AddressLength is the size of every address. It may only be changed
// before any state is written.
var AddressLength = 20

// Address identifies a token account owner. It is the truncated sha256
// digest of the condition that controls it.
type Address []byte

// NewAddress derives an address from a condition. Nil data gives a nil
// address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(other Address) bool {
	return bytes.Equal(a, other)
}

// Clone returns a copy that does not share memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// Validate fails unless the address has AddressLength bytes.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInvalidInput, "address of %d bytes", len(a))
	}
	return nil
}

func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with the given human readable prefix.
func (a Address) Bech32(hrp string) (string, error) {
	return bech32.Encode(hrp, a)
}

// MarshalJSON writes the address as upper case hex.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts plain hex and the prefixed forms "hex:<hex>",
// "cond:<ext/type/data>" and "bech32:<encoded>".
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "address json: %s", err)
	}
	format, value := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		*a = nil
		return nil
	}

	decode, ok := addressDecoders[format]
	if !ok {
		return errors.Wrapf(errors.ErrInvalidType, "unknown address format %q", format)
	}
	addr, err := decode(value)
	if err != nil {
		return err
	}
	if err := addr.Validate(); err != nil {
		return err
	}
	*a = addr
	return nil
}

var addressDecoders = map[string]func(string) (Address, error){
	"hex": func(s string) (Address, error) {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "address hex: %s", err)
		}
		return Address(raw), nil
	},
	"cond": func(s string) (Address, error) {
		c, err := parseCondition(s)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	},
	"bech32": func(s string) (Address, error) {
		_, payload, err := bech32.Decode(s)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "address bech32: %s", err)
		}
		return Address(payload), nil
	},
}
