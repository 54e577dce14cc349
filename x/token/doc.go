/*
Package token implements the token ledger: tokens identified by a ticker
and token accounts that hold a balance of exactly one token.

Every account has a single owner. Only the owner can move its balance or
hand the account to another owner. Owners are plain addresses, so an
account can be owned by a key holder or by an address derived for another
extension. Public messages are authorized by transaction signatures only,
which is why an account owned by a derived address can only be touched by
the extension that calls the controller on its behalf.
*/
package token
