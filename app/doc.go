/*
Package app turns a weave.Handler into a tendermint ABCI application.

StoreApp owns the state: a commit store with one cache for delivered and
one for checked transactions, the chain id and the block context.
BaseApp adds transaction decoding and dispatch on top of it. A handler is
usually a Router behind a decorator stack built with ChainDecorators.
*/
package app
