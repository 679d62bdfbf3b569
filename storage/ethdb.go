package storage

import (
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// keyValueStore adapts a goleveldb handle to go-ethereum's ethdb.KeyValueStore
// so the trie database can run over the same file as the flat records.
type keyValueStore struct {
	db *leveldb.DB
}

func (s *keyValueStore) Has(key []byte) (bool, error) {
	return s.db.Has(key, nil)
}

func (s *keyValueStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key, nil)
}

func (s *keyValueStore) Put(key []byte, value []byte) error {
	return s.db.Put(key, value, nil)
}

func (s *keyValueStore) Delete(key []byte) error {
	return s.db.Delete(key, nil)
}

// DeleteRange removes all keys in [start, end). goleveldb has no native range
// tombstones, so the range is swept with an iterator.
func (s *keyValueStore) DeleteRange(start, end []byte) error {
	iter := s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	defer iter.Release()
	batch := new(leveldb.Batch)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	if err := iter.Error(); err != nil {
		return err
	}
	return s.db.Write(batch, nil)
}

func (s *keyValueStore) NewBatch() ethdb.Batch {
	return &kvBatch{db: s.db, b: new(leveldb.Batch)}
}

func (s *keyValueStore) NewBatchWithSize(size int) ethdb.Batch {
	return &kvBatch{db: s.db, b: leveldb.MakeBatch(size)}
}

func (s *keyValueStore) NewIterator(prefix []byte, start []byte) ethdb.Iterator {
	return s.db.NewIterator(bytesPrefixRange(prefix, start), nil)
}

func (s *keyValueStore) Stat() (string, error) {
	return s.db.GetProperty("leveldb.stats")
}

func (s *keyValueStore) Compact(start []byte, limit []byte) error {
	return s.db.CompactRange(util.Range{Start: start, Limit: limit})
}

// SyncKeyValue flushes buffered writes. goleveldb commits each write to the
// journal before returning, so there is nothing extra to flush here.
func (s *keyValueStore) SyncKeyValue() error {
	return nil
}

func (s *keyValueStore) Close() error {
	// The owning LevelDB closes the shared handle.
	return nil
}

// bytesPrefixRange returns the key range that satisfies the given prefix and
// seek position.
func bytesPrefixRange(prefix, start []byte) *util.Range {
	r := util.BytesPrefix(prefix)
	r.Start = append(r.Start, start...)
	return r
}

// kvBatch collects writes and flushes them to the underlying store on Write.
type kvBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (b *kvBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(key) + len(value)
	return nil
}

func (b *kvBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size += len(key)
	return nil
}

func (b *kvBatch) DeleteRange(start, end []byte) error {
	iter := b.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	defer iter.Release()
	for iter.Next() {
		key := append([]byte(nil), iter.Key()...)
		b.b.Delete(key)
		b.size += len(key)
	}
	return iter.Error()
}

func (b *kvBatch) ValueSize() int {
	return b.size
}

func (b *kvBatch) Write() error {
	return b.db.Write(b.b, nil)
}

func (b *kvBatch) Reset() {
	b.b.Reset()
	b.size = 0
}

func (b *kvBatch) Replay(w ethdb.KeyValueWriter) error {
	r := &batchReplayer{writer: w}
	if err := b.b.Replay(r); err != nil {
		return err
	}
	return r.failure
}

// batchReplayer feeds the batch contents back through an ethdb writer.
type batchReplayer struct {
	writer  ethdb.KeyValueWriter
	failure error
}

func (r *batchReplayer) Put(key, value []byte) {
	if r.failure != nil {
		return
	}
	r.failure = r.writer.Put(key, value)
}

func (r *batchReplayer) Delete(key []byte) {
	if r.failure != nil {
		return
	}
	r.failure = r.writer.Delete(key)
}
