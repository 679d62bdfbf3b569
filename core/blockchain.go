package core

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"veilchain/core/types"
	"veilchain/observability"
	"veilchain/storage"
)

var (
	headerPrefix = []byte("header:")
	heightPrefix = []byte("height:")
	headTipKey   = []byte("head-tip")
)

func headerKey(hash common.Hash) []byte {
	return append(append([]byte(nil), headerPrefix...), hash.Bytes()...)
}

func heightKey(height uint64) []byte {
	buf := make([]byte, len(heightPrefix)+8)
	copy(buf, heightPrefix)
	binary.BigEndian.PutUint64(buf[len(heightPrefix):], height)
	return buf
}

// Blockchain stores block headers by hash with a height index and a tip
// marker. Header bodies and transaction processing live elsewhere; the
// simulator only ever needs a header to anchor on.
type Blockchain struct {
	db  storage.Database
	mu  sync.RWMutex
	tip common.Hash
}

// NewBlockchain opens the header chain over the provided database.
func NewBlockchain(db storage.Database) (*Blockchain, error) {
	bc := &Blockchain{db: db}
	tip, err := db.Get(headTipKey)
	if err == nil {
		bc.tip = common.BytesToHash(tip)
	} else if err != storage.ErrNotFound {
		return nil, fmt.Errorf("core: load chain tip: %w", err)
	}
	return bc, nil
}

// AddHeader appends a header, indexes it by height and advances the tip.
func (bc *Blockchain) AddHeader(header *types.BlockHeader) (common.Hash, error) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	hash, err := header.Hash()
	if err != nil {
		return common.Hash{}, err
	}
	encoded, err := rlp.EncodeToBytes(header)
	if err != nil {
		return common.Hash{}, err
	}
	if err := bc.db.Put(headerKey(hash), encoded); err != nil {
		return common.Hash{}, fmt.Errorf("core: store header: %w", err)
	}
	if err := bc.db.Put(heightKey(header.Height), hash.Bytes()); err != nil {
		return common.Hash{}, fmt.Errorf("core: index header height: %w", err)
	}
	if err := bc.db.Put(headTipKey, hash.Bytes()); err != nil {
		return common.Hash{}, fmt.Errorf("core: advance tip: %w", err)
	}
	bc.tip = hash
	observability.Chain().RecordHead(header.Height)
	return hash, nil
}

// HeaderByHash returns the header with the given hash, reporting false when
// the chain does not contain it.
func (bc *Blockchain) HeaderByHash(hash common.Hash) (*types.BlockHeader, bool) {
	encoded, err := bc.db.Get(headerKey(hash))
	if err != nil {
		return nil, false
	}
	header := new(types.BlockHeader)
	if err := rlp.DecodeBytes(encoded, header); err != nil {
		return nil, false
	}
	return header, true
}

// HeaderByNumber returns the canonical header at the given height, reporting
// false when none exists.
func (bc *Blockchain) HeaderByNumber(height uint64) (*types.BlockHeader, bool) {
	hashBytes, err := bc.db.Get(heightKey(height))
	if err != nil {
		return nil, false
	}
	return bc.HeaderByHash(common.BytesToHash(hashBytes))
}

// Tip returns the hash of the most recently added header.
func (bc *Blockchain) Tip() common.Hash {
	bc.mu.RLock()
	defer bc.mu.RUnlock()
	return bc.tip
}
