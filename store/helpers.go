package store

import (
	"github.com/causefund/fundmgr"
)

//////////////////////////////////////////////////////////
// Empty KVStore

// EmptyKVStore never holds any data and accepts writes
// into the void. It is the bottom layer for a MemStore.
type EmptyKVStore struct{}

var _ fundmgr.KVStore = EmptyKVStore{}

// Get always returns nil
func (e EmptyKVStore) Get(key []byte) []byte { return nil }

// Has always returns false
func (e EmptyKVStore) Has(key []byte) bool { return false }

// Set is a noop
func (e EmptyKVStore) Set(key, value []byte) {}

// Delete is a noop
func (e EmptyKVStore) Delete(key []byte) {}

// NewBatch returns a batch that can write to this (the void)
func (e EmptyKVStore) NewBatch() fundmgr.Batch { return NewNonAtomicBatch(e) }

////////////////////////////////////////////////
// Non-atomic batch (dummy implementation)

type op struct {
	isSet bool
	key   []byte
	value []byte
}

func (o op) apply(out fundmgr.SetDeleter) {
	if o.isSet {
		out.Set(o.key, o.value)
	} else {
		out.Delete(o.key)
	}
}

// NonAtomicBatch just piles up ops and executes them later
// on the underlying store. Only useful for cachewrapping
// another in-memory store, where the writes cannot fail.
type NonAtomicBatch struct {
	out fundmgr.SetDeleter
	ops []op
}

var _ fundmgr.Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch to be later written
// to the KVStore
func NewNonAtomicBatch(out fundmgr.SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch
func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, op{isSet: true, key: key, value: value})
}

// Delete adds a delete operation to the batch
func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, op{key: key})
}

// Write performs all operations in this batch and resets it
func (b *NonAtomicBatch) Write() {
	for _, o := range b.ops {
		o.apply(b.out)
	}
	b.ops = nil
}
