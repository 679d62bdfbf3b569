package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// BlockHeader carries the metadata a simulation anchors on: the state root the
// public world state is resolved from, the gas limit used as the default call
// budget, and the height the protocol rule set is selected at.
//
// Headers are immutable once fetched from the chain.
type BlockHeader struct {
	Height     uint64         `json:"height"`
	Timestamp  uint64         `json:"timestamp"`
	ParentHash common.Hash    `json:"parentHash"`
	StateRoot  common.Hash    `json:"stateRoot"`
	TxRoot     common.Hash    `json:"txRoot"`
	Coinbase   common.Address `json:"coinbase"`
	GasLimit   uint64         `json:"gasLimit"`
	GasUsed    uint64         `json:"gasUsed"`
}

// Hash returns the keccak256 hash of the RLP-encoded header. This hash is the
// block's identifier on the chain.
func (h *BlockHeader) Hash() (common.Hash, error) {
	encoded, err := rlp.EncodeToBytes(h)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(crypto.Keccak256(encoded)), nil
}
