/*
Package fund implements a governed custodial fund: deposits are pooled
in a treasury, emergency withdrawals require an N-of-M governor quorum
and are bounded by per-withdrawal and cumulative limits, payouts are
split among beneficiaries by fixed basis-point shares, and the owner
may move treasury funds in and out of an external investment
capability.

All mutating operations are atomic: they run on a cache-wrapped store
that is written on success and discarded on any error, and they are
covered by a reentrancy guard and an owner-controlled pause switch.
*/
package fund
