package app

import (
	weave "github.com/iov-one/weave-escrow"
	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/x/sigs"
	"github.com/iov-one/weave-escrow/x/swap"
	"github.com/iov-one/weave-escrow/x/token"
	amino "github.com/tendermint/go-amino"
)

// txCodec knows every message this application accepts.
var txCodec = amino.NewCodec()

func init() {
	txCodec.RegisterInterface((*weave.Msg)(nil), nil)
	txCodec.RegisterConcrete(&token.CreateTokenMsg{}, "token/create_token", nil)
	txCodec.RegisterConcrete(&token.CreateAccountMsg{}, "token/create_account", nil)
	txCodec.RegisterConcrete(&token.MintMsg{}, "token/mint", nil)
	txCodec.RegisterConcrete(&token.TransferMsg{}, "token/transfer", nil)
	txCodec.RegisterConcrete(&token.SetOwnerMsg{}, "token/set_owner", nil)
	txCodec.RegisterConcrete(&swap.InitializeMsg{}, "swap/initialize", nil)
	txCodec.RegisterConcrete(&swap.ExchangeMsg{}, "swap/exchange", nil)
	txCodec.RegisterConcrete(&swap.CancelMsg{}, "swap/cancel", nil)
}

// Tx is the transaction format of the swap daemon. It carries a single
// message and the signatures of everyone authorizing it.
type Tx struct {
	Msg        weave.Msg            `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := txCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidType, "cannot marshal tx: %s", err)
	}
	return bz, nil
}

func (tx *Tx) Unmarshal(raw []byte) error {
	if err := txCodec.UnmarshalBinaryBare(raw, tx); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot unmarshal tx: %s", err)
	}
	return nil
}

// GetMsg returns the single message of this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return tx.Msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}
