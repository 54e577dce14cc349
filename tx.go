package weave

import (
	"reflect"

	"github.com/iov-one/weave-escrow/errors"
)

// Marshaller serializes a value.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be serialized and loaded back. Unmarshal needs a pointer
// receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is the request of a transaction, for example an escrow exchange.
// It holds no authentication data, signatures travel in the Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler, for example
	// "swap/exchange". It matches [0-9A-Za-z_\-/]+.
	Path() string

	// Validate checks the message without looking at the state.
	Validate() error
}

// Tx is a transaction as submitted by a client: one message plus what the
// decorators need to authorize it.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses the raw bytes of a transaction.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the route of the transaction message, "(missing)" if it
// cannot be read.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the transaction message into dest and validates it. Dest
// must be a pointer to the concrete message type:
//
//	var msg ExchangeMsg
//	if err := weave.LoadMsg(tx, &msg); err != nil {
//		return nil, errors.Wrap(err, "load msg")
//	}
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "read message")
	case msg == nil:
		return errors.Wrap(errors.ErrInvalidMsg, "no message")
	}

	target := reflect.ValueOf(dest)
	if target.Kind() != reflect.Ptr || target.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "cannot load message into %T", dest)
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if !src.IsValid() || src.Type() != target.Elem().Type() {
		return errors.Wrapf(errors.ErrInvalidType, "%T is not %T", msg, dest)
	}
	target.Elem().Set(src)

	return errors.Wrap(msg.Validate(), "invalid message")
}
