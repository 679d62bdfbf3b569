package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"veilchain/core/types"
	"veilchain/storage"
	"veilchain/storage/trie"
)

var codePrefix = []byte("code:")

func accountKey(addr common.Address) []byte {
	return ethcrypto.Keccak256(addr.Bytes())
}

func slotKey(slot common.Hash) []byte {
	return ethcrypto.Keccak256(slot.Bytes())
}

func codeKey(codeHash []byte) []byte {
	return append(append([]byte(nil), codePrefix...), codeHash...)
}

// WorldState is a read view of one account trie snapshot. Accounts are
// RLP-encoded records keyed by the keccak256 of their address; contract
// storage hangs off each account's storage root as its own trie.
type WorldState struct {
	db   storage.Database
	trie *trie.Trie
	root common.Hash
}

// Root returns the state root this snapshot was opened at.
func (ws *WorldState) Root() common.Hash {
	return ws.root
}

// Account returns the account stored for addr, or nil when the address has no
// record in this state.
func (ws *WorldState) Account(addr common.Address) (*types.Account, error) {
	data, err := ws.trie.Get(accountKey(addr))
	if err != nil {
		return nil, fmt.Errorf("state: account lookup %s: %w", addr, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	account := new(types.Account)
	if err := rlp.DecodeBytes(data, account); err != nil {
		return nil, fmt.Errorf("state: decode account %s: %w", addr, err)
	}
	return account, nil
}

// Code returns the contract code stored under the given code hash.
func (ws *WorldState) Code(codeHash []byte) ([]byte, error) {
	code, err := ws.db.Get(codeKey(codeHash))
	if err == storage.ErrNotFound {
		return nil, nil
	}
	return code, err
}

// StorageValue reads one storage slot of the given account. Missing accounts
// and unset slots both read as zero.
func (ws *WorldState) StorageValue(addr common.Address, slot common.Hash) (*uint256.Int, error) {
	account, err := ws.Account(addr)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return uint256.NewInt(0), nil
	}
	storageTrie, err := trie.NewTrie(ws.db, account.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("state: open storage trie for %s: %w", addr, err)
	}
	data, err := storageTrie.Get(slotKey(slot))
	if err != nil {
		return nil, fmt.Errorf("state: storage lookup %s[%s]: %w", addr, slot, err)
	}
	if len(data) == 0 {
		return uint256.NewInt(0), nil
	}
	var raw []byte
	if err := rlp.DecodeBytes(data, &raw); err != nil {
		return nil, fmt.Errorf("state: decode storage value %s[%s]: %w", addr, slot, err)
	}
	return new(uint256.Int).SetBytes(raw), nil
}

// Updater returns a fresh disposable overlay over this snapshot.
func (ws *WorldState) Updater() *Updater {
	return NewUpdater(ws)
}

// Archive resolves world states by root hash. Public and private states use
// separate Archive instances over their own backing stores; both support
// concurrent readers since every StateAt opens an independent trie.
type Archive struct {
	db storage.Database
}

// NewArchive creates an archive over the given storage.
func NewArchive(db storage.Database) *Archive {
	return &Archive{db: db}
}

// StateAt opens the world state at the given root. A zero root opens the
// canonical empty state. The second return is false when no state exists at
// that root (for example because it was pruned).
func (a *Archive) StateAt(root common.Hash) (*WorldState, bool) {
	tr, err := trie.NewTrie(a.db, root)
	if err != nil {
		return nil, false
	}
	return &WorldState{db: a.db, trie: tr, root: tr.Root()}, true
}

// DB exposes the archive's backing storage.
func (a *Archive) DB() storage.Database {
	return a.db
}
