/*
Package fundmgr provides the shared primitives of the fund governance
engine: identities (Address, Condition), POSIX time handling, and the
key-value store interfaces every extension builds upon.

The actual business logic lives in the extensions under x/, most
importantly x/fund which implements the governed custodial fund, and
x/cash which keeps the token ledger the fund moves value through.
*/
package fundmgr
