package utils

import (
	weave "github.com/iov-one/weave-escrow"
)

// ActionKey is the tag key ActionTagger sets to the message path.
const ActionKey = "action"

// ActionTagger tags every successful delivery with the path of its
// message, so clients can search for a kind of operation, for example
// all swap/cancel transactions.
type ActionTagger struct{}

var _ weave.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, weave.Tag(ActionKey, []byte(msg.Path())))
	return res, nil
}
