/*
Package weave holds the interfaces shared by the packages of the swap
ledger: stores, transactions, handlers and decorators, together with the
small types every extension needs, such as Address, Condition and
Metadata.

Block data reaches handlers through the Context. The app sets it once per
block with the With functions and handlers read it back with the Get
functions:

	height, ok := weave.GetHeight(ctx)

Setting the same value twice in one context panics.
*/
package weave
