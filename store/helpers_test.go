package store

import (
	"testing"

	"github.com/causefund/fundmgr/fundtest/assert"
)

func TestNonAtomicBatch(t *testing.T) {
	out := MemStore()
	batch := NewNonAtomicBatch(out)

	batch.Set([]byte("a"), []byte("1"))
	batch.Set([]byte("b"), []byte("2"))
	batch.Delete([]byte("a"))

	// nothing applied before Write
	assert.Equal(t, false, out.Has([]byte("b")))

	batch.Write()
	assert.Equal(t, false, out.Has([]byte("a")))
	assert.Equal(t, []byte("2"), out.Get([]byte("b")))

	// batch is reset after Write
	batch.Write()
	assert.Equal(t, false, out.Has([]byte("a")))
}

func TestEmptyKVStore(t *testing.T) {
	e := EmptyKVStore{}
	e.Set([]byte("k"), []byte("v"))
	assert.Equal(t, false, e.Has([]byte("k")))
	if e.Get([]byte("k")) != nil {
		t.Fatal("empty store must never return data")
	}
}
