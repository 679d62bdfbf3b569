package state

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"veilchain/core/gas"
	"veilchain/core/types"
)

// Updater is a disposable copy-on-write overlay over a WorldState snapshot.
// Reads fall through to the snapshot; every mutation lands in the overlay
// maps and nowhere else. The type deliberately has no commit operation: a
// dropped Updater leaves the durable state bit-identical to before, which is
// the isolation guarantee simulated execution relies on.
//
// An Updater belongs to a single execution and is not safe for concurrent
// use. Concurrent simulations each construct their own.
type Updater struct {
	base     *WorldState
	accounts map[common.Address]*types.Account
	storage  map[common.Address]map[common.Hash]*uint256.Int
	code     map[common.Address][]byte
	deleted  map[common.Address]bool
}

// NewUpdater wraps a snapshot in a fresh overlay.
func NewUpdater(base *WorldState) *Updater {
	return &Updater{
		base:     base,
		accounts: make(map[common.Address]*types.Account),
		storage:  make(map[common.Address]map[common.Hash]*uint256.Int),
		code:     make(map[common.Address][]byte),
		deleted:  make(map[common.Address]bool),
	}
}

// Base returns the snapshot this overlay reads through to.
func (u *Updater) Base() *WorldState {
	return u.base
}

// Account returns the overlay's view of addr, or nil when the account does
// not exist. The returned record is the overlay's own copy; callers mutate it
// through the setters below.
func (u *Updater) Account(addr common.Address) (*types.Account, error) {
	if u.deleted[addr] {
		return nil, nil
	}
	if account, ok := u.accounts[addr]; ok {
		return account, nil
	}
	account, err := u.base.Account(addr)
	if err != nil || account == nil {
		return nil, err
	}
	copied := account.Copy()
	u.accounts[addr] = copied
	return copied, nil
}

// Exists reports whether addr has an account in the overlay's view.
func (u *Updater) Exists(addr common.Address) (bool, error) {
	account, err := u.Account(addr)
	return account != nil, err
}

// Nonce returns the account's nonce, zero when the account does not exist.
func (u *Updater) Nonce(addr common.Address) (uint64, error) {
	account, err := u.Account(addr)
	if err != nil || account == nil {
		return 0, err
	}
	return account.Nonce, nil
}

// CreateAccount materialises an empty account for addr in the overlay.
func (u *Updater) CreateAccount(addr common.Address) *types.Account {
	account := types.NewAccount()
	u.accounts[addr] = account
	delete(u.deleted, addr)
	return account
}

// SetNonce records a nonce change in the overlay, creating the account if
// needed.
func (u *Updater) SetNonce(addr common.Address, nonce uint64) error {
	account, err := u.Account(addr)
	if err != nil {
		return err
	}
	if account == nil {
		account = u.CreateAccount(addr)
	}
	account.Nonce = nonce
	return nil
}

// SetBalance records a balance change in the overlay, creating the account if
// needed.
func (u *Updater) SetBalance(addr common.Address, balance *big.Int) error {
	account, err := u.Account(addr)
	if err != nil {
		return err
	}
	if account == nil {
		account = u.CreateAccount(addr)
	}
	account.Balance = new(big.Int).Set(balance)
	return nil
}

// SetCode records deployed code in the overlay.
func (u *Updater) SetCode(addr common.Address, code []byte) {
	u.code[addr] = append([]byte(nil), code...)
}

// Code returns the overlay's view of the account's code.
func (u *Updater) Code(addr common.Address) ([]byte, error) {
	if code, ok := u.code[addr]; ok {
		return code, nil
	}
	account, err := u.Account(addr)
	if err != nil || account == nil {
		return nil, err
	}
	return u.base.Code(account.CodeHash)
}

// DeleteAccount marks addr as self-destructed in the overlay.
func (u *Updater) DeleteAccount(addr common.Address) {
	u.deleted[addr] = true
	delete(u.accounts, addr)
	delete(u.storage, addr)
	delete(u.code, addr)
}

// StorageValue returns the current value of a slot: the overlay's if written
// this execution, the snapshot's otherwise.
func (u *Updater) StorageValue(addr common.Address, slot common.Hash) (*uint256.Int, error) {
	if slots, ok := u.storage[addr]; ok {
		if value, ok := slots[slot]; ok {
			return value.Clone(), nil
		}
	}
	if u.deleted[addr] {
		return uint256.NewInt(0), nil
	}
	return u.base.StorageValue(addr, slot)
}

// SetStorageValue records a slot write in the overlay.
func (u *Updater) SetStorageValue(addr common.Address, slot common.Hash, value *uint256.Int) {
	slots, ok := u.storage[addr]
	if !ok {
		slots = make(map[common.Hash]*uint256.Int)
		u.storage[addr] = slots
	}
	slots[slot] = value.Clone()
}

// OriginalStorageValue returns the lazy supplier of the slot's value from
// before the enclosing transaction, i.e. the snapshot value underneath every
// overlay write. The trie read runs at most once, and only if the metering
// decision consults it.
func (u *Updater) OriginalStorageValue(addr common.Address, slot common.Hash) gas.OriginalValue {
	return gas.MemoizedOriginal(func() *uint256.Int {
		value, err := u.base.StorageValue(addr, slot)
		if err != nil {
			// Fail toward the expensive path; the metering rule
			// treats an unknown original as a fresh write.
			return uint256.NewInt(0)
		}
		return value
	})
}
