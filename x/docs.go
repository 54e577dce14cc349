/*
Package x holds what the swap ledger extensions share. Handlers get an
Authenticator when they are built, so the signature scheme of x/sigs can
be replaced by weavetest.Auth in tests.
*/
package x
