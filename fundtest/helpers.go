// Package fundtest provides deterministic test fixtures for packages that
// operate on addresses and sequence generated identifiers.
package fundtest

import (
	"encoding/binary"
	"fmt"

	"github.com/causefund/fundmgr"
)

// NewAddress returns a deterministic address. Two calls with the same seed
// always produce the same address, calls with different seeds never collide.
func NewAddress(seed string) fundmgr.Address {
	return fundmgr.NewCondition("test", "seed", []byte(seed)).Address()
}

// SequenceID returns an ID encoded the same way the orm sequence encodes its
// counter state. Use it in tests to reference entities created with a
// sequence generated key.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// Addresses returns n distinct deterministic addresses.
func Addresses(n int) []fundmgr.Address {
	addrs := make([]fundmgr.Address, n)
	for i := range addrs {
		addrs[i] = NewAddress(fmt.Sprint(i))
	}
	return addrs
}
