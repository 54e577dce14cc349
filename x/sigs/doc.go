/*
Package sigs authenticates transactions by their ed25519 signatures.

Each signature commits to the chain id and to a per key sequence number,
the nonce. The nonce of every key is kept in the "sigs" bucket and grows
by one with each accepted signature, so a signed transaction can be
executed only once and only on the chain it was signed for.
*/
package sigs
