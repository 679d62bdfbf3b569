package trie

import (
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	gethtrie "github.com/ethereum/go-ethereum/trie"
	"github.com/ethereum/go-ethereum/trie/trienode"
	"github.com/ethereum/go-ethereum/triedb"

	"veilchain/storage"
)

// Trie wraps go-ethereum's Merkle Patricia trie behind the small API the
// world-state layers need. Each world state (public or private) is one trie
// keyed by hashed account addresses; the root hash is the state root recorded
// in headers and in the private state root ledger.
//
// The wrapper tracks the last committed root and recreates the underlying
// trie after each commit/reset so an instance can be reused across blocks.
// Keys passed into Get/Update are expected to be keccak256-hashed already.
//
// Trie is not safe for concurrent use; every simulation opens its own.
type Trie struct {
	store  storage.Database
	trieDB *triedb.Database
	trie   *gethtrie.Trie
	root   common.Hash
}

// NewTrie opens the trie at the given root on top of the provided storage. A
// zero root denotes the empty trie.
func NewTrie(store storage.Database, root common.Hash) (*Trie, error) {
	trieDB := store.TrieDB()
	rootHash := gethtypes.EmptyRootHash
	if root != (common.Hash{}) {
		rootHash = root
	}
	underlying, err := gethtrie.New(gethtrie.TrieID(rootHash), trieDB)
	if err != nil {
		return nil, err
	}
	return &Trie{
		store:  store,
		trieDB: trieDB,
		trie:   underlying,
		root:   rootHash,
	}, nil
}

// Get retrieves the value stored for the provided (hashed) key.
func (t *Trie) Get(key []byte) ([]byte, error) {
	return t.trie.Get(key)
}

// Update inserts or replaces the value for the provided (hashed) key.
func (t *Trie) Update(key, value []byte) error {
	return t.trie.Update(key, value)
}

// Hash returns the root hash reflecting all in-memory mutations.
func (t *Trie) Hash() common.Hash {
	return t.trie.Hash()
}

// Root returns the last committed root hash.
func (t *Trie) Root() common.Hash {
	return t.root
}

// Reset discards any in-memory changes and reloads the trie at the provided
// root. Used to roll back speculative mutations.
func (t *Trie) Reset(root common.Hash) error {
	underlying, err := gethtrie.New(gethtrie.TrieID(root), t.trieDB)
	if err != nil {
		return err
	}
	t.trie = underlying
	t.root = root
	return nil
}

// Copy creates an independently mutable clone sharing the same backing
// database. Disposable state views are built on copies so their writes can
// never reach the durable trie.
func (t *Trie) Copy() *Trie {
	return &Trie{
		store:  t.store,
		trieDB: t.trieDB,
		trie:   t.trie.Copy(),
		root:   t.root,
	}
}

// Commit persists the trie changes to the backing database and returns the
// new root hash. The wrapper then reopens the trie at that root so it can be
// reused for subsequent updates.
func (t *Trie) Commit(parent common.Hash, blockNumber uint64) (common.Hash, error) {
	newRoot, nodes := t.trie.Commit(false)
	if nodes != nil {
		merged := trienode.NewMergedNodeSet()
		if err := merged.Merge(nodes); err != nil {
			return common.Hash{}, err
		}
		if err := t.trieDB.Update(newRoot, parent, blockNumber, merged, nil); err != nil {
			return common.Hash{}, err
		}
		if err := t.trieDB.Commit(newRoot, false); err != nil {
			return common.Hash{}, err
		}
	}
	underlying, err := gethtrie.New(gethtrie.TrieID(newRoot), t.trieDB)
	if err != nil {
		return common.Hash{}, err
	}
	t.trie = underlying
	t.root = newRoot
	return newRoot, nil
}

// Store exposes the backing storage for callers that keep flat records next
// to the trie.
func (t *Trie) Store() storage.Database {
	return t.store
}

// TrieDB exposes the underlying trie database so other state layers operate
// on the same backing storage.
func (t *Trie) TrieDB() *triedb.Database {
	return t.trieDB
}
