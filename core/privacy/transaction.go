package privacy

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// halfCurveOrder is secp256k1's group order divided by two, the largest s
// value accepted by the low-s rule.
var halfCurveOrder = new(big.Int).Rsh(ethcrypto.S256().Params().N, 1)

// PrivateTransaction is a transaction executed inside one privacy group. The
// simulator synthesizes these; committed private blocks carry real ones.
type PrivateTransaction struct {
	Sender   common.Address
	Nonce    uint64
	GasLimit uint64
	GasPrice *big.Int
	To       *common.Address
	Value    *big.Int
	Payload  []byte

	PrivacyGroupID []byte
	Restricted     bool

	R, S *big.Int
	V    byte
}

// IsContractCreation reports whether the transaction has no destination and
// therefore deploys a contract.
func (tx *PrivateTransaction) IsContractCreation() bool {
	return tx.To == nil
}

// applyPlaceholderSignature stamps the transaction with the well-known fake
// signature (r = s = half the curve order, recovery id 0). Simulated
// transactions never go through signature recovery; the sender field is
// authoritative.
func (tx *PrivateTransaction) applyPlaceholderSignature() {
	tx.R = new(big.Int).Set(halfCurveOrder)
	tx.S = new(big.Int).Set(halfCurveOrder)
	tx.V = 0
}
