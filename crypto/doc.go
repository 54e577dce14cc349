/*
Package crypto holds the ed25519 keys that sign swap ledger transactions.
A public key maps to a "sigs/ed25519/<key>" condition and the address of
that condition owns token accounts.
*/
package crypto
