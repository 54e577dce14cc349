package swap

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
)

const (
	// CustodySeed is the seed of the address that holds every escrowed
	// account. Changing it orphans all active escrows.
	CustodySeed = "escrow_pda_seed"

	// ProgramName is the condition extension of all addresses derived by
	// this package.
	ProgramName = "swap"

	custodyType = "custody"
)

// Authority is an identity derived from a seed. It has no private key and
// cannot sign transactions. Condition is the proof that Address belongs to
// a program and not to a key holder.
type Authority struct {
	Condition weave.Condition
	Address   weave.Address
}

// DeriveAuthority returns the authority owned by given program for given
// seed. The same input always produces the same authority.
func DeriveAuthority(seed, program string) Authority {
	c := weave.NewCondition(program, custodyType, []byte(seed))
	return Authority{
		Condition: c,
		Address:   c.Address(),
	}
}

// CustodyAuthority returns the authority that owns the deposit account of
// every active escrow.
func CustodyAuthority() Authority {
	return DeriveAuthority(CustodySeed, ProgramName)
}

// Owns returns true if given address is the address of this authority.
func (a Authority) Owns(addr weave.Address) bool {
	return a.Address.Equals(addr)
}

// IsProgramCondition returns nil if given condition was derived by
// DeriveAuthority for the program. Signature conditions or conditions of
// other extensions are rejected.
func IsProgramCondition(c weave.Condition, program string) error {
	ext, typ, _, err := c.Parse()
	if err != nil {
		return err
	}
	if ext != program || typ != custodyType {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not a %s custody condition", c, program)
	}
	return nil
}

// verify rejects an authority that was not derived by this program or
// whose address does not match its condition. Funds are only ever moved in
// the name of a verified authority.
func (a Authority) verify() error {
	if err := IsProgramCondition(a.Condition, ProgramName); err != nil {
		return errors.Wrap(err, "custody")
	}
	if !a.Condition.Address().Equals(a.Address) {
		return errors.Wrap(errors.ErrUnauthorized, "custody address does not match its condition")
	}
	return nil
}
