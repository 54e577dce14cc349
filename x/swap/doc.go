/*
Package swap implements a trustless two-party token swap.

The initializer locks an amount of token X by handing the ownership of
their X account to a custody address derived from a fixed seed. Nobody
holds a key for that address. While the escrow is active the X account can
be touched only by this extension, which moves it on behalf of the custody
address in exactly two situations. Exchange sends the X balance to a taker
who pays the requested amount of token Y to the initializer in the same
transaction. Cancel returns the account to the initializer.

Both terminating operations delete the escrow record, so at most one of
them can ever succeed.
*/
package swap
