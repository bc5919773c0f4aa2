/*
Package orm provides a thin layer for persisting protobuf models in a
key-value store: a Bucket isolates models of one type under a common
prefix, and a Sequence produces monotonically increasing ids.
*/
package orm
