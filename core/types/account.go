package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
)

// Account is the state record stored per address: the EVM quartet of nonce,
// balance, storage root and code hash.
type Account struct {
	Nonce       uint64      `json:"nonce"`
	Balance     *big.Int    `json:"balance"`
	StorageRoot common.Hash `json:"storageRoot"`
	CodeHash    []byte      `json:"codeHash"`
}

// NewAccount returns a fresh account with a zero balance, the empty storage
// root and the hash of empty code.
func NewAccount() *Account {
	return &Account{
		Balance:     new(big.Int),
		StorageRoot: gethtypes.EmptyRootHash,
		CodeHash:    gethtypes.EmptyCodeHash.Bytes(),
	}
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cp := &Account{
		Nonce:       a.Nonce,
		Balance:     new(big.Int),
		StorageRoot: a.StorageRoot,
		CodeHash:    append([]byte(nil), a.CodeHash...),
	}
	if a.Balance != nil {
		cp.Balance.Set(a.Balance)
	}
	return cp
}
