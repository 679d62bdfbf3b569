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

// Manager writes world states into an archive's backing store. It exists for
// genesis initialisation and for recording committed private states; the
// simulation path never touches it, which is what keeps simulated execution
// free of durable side effects.
type Manager struct {
	db       storage.Database
	trie     *trie.Trie
	storage  map[common.Address]map[common.Hash]*uint256.Int
	accounts map[common.Address]*types.Account
}

// NewManager starts a state build on top of the world state at root (zero
// root for an empty state).
func NewManager(db storage.Database, root common.Hash) (*Manager, error) {
	tr, err := trie.NewTrie(db, root)
	if err != nil {
		return nil, fmt.Errorf("state: open trie at %s: %w", root, err)
	}
	return &Manager{
		db:       db,
		trie:     tr,
		storage:  make(map[common.Address]map[common.Hash]*uint256.Int),
		accounts: make(map[common.Address]*types.Account),
	}, nil
}

// SetAccount stages an account record for addr.
func (m *Manager) SetAccount(addr common.Address, account *types.Account) {
	m.accounts[addr] = account.Copy()
}

// SetStorage stages a storage slot write for addr.
func (m *Manager) SetStorage(addr common.Address, slot common.Hash, value *uint256.Int) {
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(map[common.Hash]*uint256.Int)
		m.storage[addr] = slots
	}
	slots[slot] = value.Clone()
}

// SetCode stages contract code for addr and points the staged account at its
// hash.
func (m *Manager) SetCode(addr common.Address, code []byte) error {
	account, ok := m.accounts[addr]
	if !ok {
		account = types.NewAccount()
		m.accounts[addr] = account
	}
	codeHash := ethcrypto.Keccak256(code)
	if err := m.db.Put(codeKey(codeHash), code); err != nil {
		return fmt.Errorf("state: store code for %s: %w", addr, err)
	}
	account.CodeHash = codeHash
	return nil
}

// Commit flushes the staged accounts and storage into the trie database and
// returns the resulting state root.
func (m *Manager) Commit(blockNumber uint64) (common.Hash, error) {
	// Storage tries first so each account record carries its final root.
	for addr, slots := range m.storage {
		account, ok := m.accounts[addr]
		if !ok {
			account = types.NewAccount()
			m.accounts[addr] = account
		}
		storageTrie, err := trie.NewTrie(m.db, account.StorageRoot)
		if err != nil {
			return common.Hash{}, fmt.Errorf("state: open storage trie for %s: %w", addr, err)
		}
		for slot, value := range slots {
			encoded, err := rlp.EncodeToBytes(value.Bytes())
			if err != nil {
				return common.Hash{}, err
			}
			if err := storageTrie.Update(slotKey(slot), encoded); err != nil {
				return common.Hash{}, err
			}
		}
		storageRoot, err := storageTrie.Commit(account.StorageRoot, blockNumber)
		if err != nil {
			return common.Hash{}, fmt.Errorf("state: commit storage trie for %s: %w", addr, err)
		}
		account.StorageRoot = storageRoot
	}

	parent := m.trie.Root()
	for addr, account := range m.accounts {
		encoded, err := rlp.EncodeToBytes(account)
		if err != nil {
			return common.Hash{}, err
		}
		if err := m.trie.Update(accountKey(addr), encoded); err != nil {
			return common.Hash{}, err
		}
	}
	root, err := m.trie.Commit(parent, blockNumber)
	if err != nil {
		return common.Hash{}, fmt.Errorf("state: commit: %w", err)
	}

	m.accounts = make(map[common.Address]*types.Account)
	m.storage = make(map[common.Address]map[common.Hash]*uint256.Int)
	return root, nil
}
