package orm

import (
	"regexp"

	"github.com/gogo/protobuf/proto"

	"github.com/causefund/fundmgr"
	"github.com/causefund/fundmgr/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z]{3,10}$`).MatchString

// Model is implemented by all entities persisted in a Bucket.
// Validate is called before every Save, so invalid state never
// reaches the store.
type Model interface {
	proto.Message
	Validate() error
}

// Bucket stores all models of one type under a common prefix,
// so different types never collide in the kv store.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket with the given name. The name
// must be 3 to 10 lowercase letters and is used as the key
// prefix. Panics on invalid name, as this is a setup issue.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the bucket name
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the prefix
func (b Bucket) DBKey(key []byte) []byte {
	return append(b.prefix, key...)
}

// Sequence returns a named sequence scoped to this bucket
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Save validates the model and writes it under the given key.
func (b Bucket) Save(db fundmgr.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s model", b.name)
	}
	bz, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(err, "marshal %s model", b.name)
	}
	db.Set(b.DBKey(key), bz)
	return nil
}

// Load reads the model stored under the given key into dst.
// Returns ErrNotFound if nothing is stored there.
func (b Bucket) Load(db fundmgr.KVStore, key []byte, dst Model) error {
	bz := db.Get(b.DBKey(key))
	if bz == nil {
		return errors.Wrapf(errors.ErrNotFound, "bucket %s key %X", b.name, key)
	}
	if err := proto.Unmarshal(bz, dst); err != nil {
		return errors.Wrapf(err, "unmarshal %s model", b.name)
	}
	return nil
}

// Has checks if a model is stored under the given key
func (b Bucket) Has(db fundmgr.KVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Delete removes the model stored under the given key, if any
func (b Bucket) Delete(db fundmgr.KVStore, key []byte) {
	db.Delete(b.DBKey(key))
}
