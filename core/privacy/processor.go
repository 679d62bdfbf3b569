// Package privacy implements read-only simulation of private transactions
// against committed private world states. Simulated calls never alter public
// or private state; every execution runs on disposable overlays that are
// dropped when the call returns.
package privacy

import (
	"github.com/ethereum/go-ethereum/common"

	"veilchain/core/gas"
	"veilchain/core/state"
	"veilchain/core/types"
)

// Blockchain is the header view the simulator anchors on.
type Blockchain interface {
	HeaderByHash(hash common.Hash) (*types.BlockHeader, bool)
	HeaderByNumber(height uint64) (*types.BlockHeader, bool)
	Tip() common.Hash
}

// WorldStateArchive resolves world states by root hash.
type WorldStateArchive interface {
	StateAt(root common.Hash) (*state.WorldState, bool)
}

// Processor executes one private transaction against a pair of mutable world
// state views. Implementations write only through the supplied updaters, so a
// caller that discards them observes no state change.
type Processor interface {
	Execute(
		chain Blockchain,
		publicState *state.Updater,
		privateState *state.Updater,
		header *types.BlockHeader,
		tx *PrivateTransaction,
		miningBeneficiary common.Address,
		tracer Tracer,
		blockHashes BlockHashFunc,
		privacyGroupID []byte,
	) Result
}

// RuleSet bundles the protocol behaviours that vary by fork.
type RuleSet interface {
	Name() string
	GasCalculator() gas.Calculator
	PrivateTransactionProcessor() Processor
	Beneficiary(header *types.BlockHeader) common.Address
}

// Schedule selects the rule set governing a given block height.
type Schedule interface {
	RuleSetAt(height uint64) RuleSet
}
