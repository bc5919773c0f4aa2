package orm

import (
	"encoding/binary"
	"fmt"

	"github.com/causefund/fundmgr"
)

// Sequence maintains a counter in the kv store, returning
// a new unique value on every call. Ids are encoded as
// 8 byte big-endian numbers so they sort properly as keys.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter scoped to the
// given bucket and name.
func NewSequence(bucket, name string) Sequence {
	id := fmt.Sprintf("_s.%s:%s", bucket, name)
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes
func (s Sequence) NextVal(db fundmgr.KVStore) []byte {
	_, bz := s.increment(db)
	return bz
}

// NextInt increments the sequence and returns its state as int64
func (s Sequence) NextInt(db fundmgr.KVStore) int64 {
	val, _ := s.increment(db)
	return val
}

// Latest returns the current value of the sequence without
// modifying it. Zero if the sequence was never incremented.
func (s Sequence) Latest(db fundmgr.KVStore) int64 {
	return DecodeSequence(db.Get(s.id))
}

func (s Sequence) increment(db fundmgr.KVStore) (int64, []byte) {
	val := DecodeSequence(db.Get(s.id)) + 1
	bz := EncodeSequence(val)
	db.Set(s.id, bz)
	return val, bz
}

// DecodeSequence converts the 8 byte big-endian representation
// into an int64. Nil decodes to zero.
func DecodeSequence(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	val := binary.BigEndian.Uint64(bz)
	return int64(val)
}

// EncodeSequence converts an int64 into its 8 byte big-endian
// representation
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}
