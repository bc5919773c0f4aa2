/*
Package cash is the token ledger collaborator of the fund engine.

It keeps per-address wallets of coins in a bucket and exposes a
Controller that can mint coins into a wallet and move coins between
wallets. The fund engine consumes only this surface; the ledger itself
knows nothing about governance.
*/
package cash
