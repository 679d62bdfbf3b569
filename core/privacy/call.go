package privacy

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// CallParameter describes a simulated call. Every field is optional; absent
// fields take the documented defaults when the call is turned into a
// transaction:
//
//	From      zero address
//	To        nil, meaning contract creation
//	GasLimit  the anchor block's gas limit
//	GasPrice  zero
//	Value     zero
//	Payload   empty
type CallParameter struct {
	From     *common.Address
	To       *common.Address
	GasLimit *uint64
	GasPrice *big.Int
	Value    *big.Int
	Payload  []byte
}

func (c CallParameter) sender() common.Address {
	if c.From != nil {
		return *c.From
	}
	return common.Address{}
}

func (c CallParameter) gasLimit(header uint64) uint64 {
	if c.GasLimit != nil {
		return *c.GasLimit
	}
	return header
}

func (c CallParameter) gasPrice() *big.Int {
	if c.GasPrice != nil {
		return new(big.Int).Set(c.GasPrice)
	}
	return new(big.Int)
}

func (c CallParameter) value() *big.Int {
	if c.Value != nil {
		return new(big.Int).Set(c.Value)
	}
	return new(big.Int)
}
