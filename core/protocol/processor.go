package protocol

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"veilchain/core/gas"
	"veilchain/core/privacy"
	"veilchain/core/state"
	"veilchain/core/types"
)

// transferProcessor executes value-transferring private transactions: it
// validates the nonce, meters the intrinsic gas through the fork's calculator
// and moves the value inside the private state view. Contract bytecode is not
// interpreted; calls to code-bearing accounts return with the intrinsic
// charge only.
type transferProcessor struct {
	calculator gas.Calculator
}

// NewTransferProcessor builds the default processor for a fork's calculator.
func NewTransferProcessor(calculator gas.Calculator) privacy.Processor {
	return &transferProcessor{calculator: calculator}
}

func (p *transferProcessor) Execute(
	chain privacy.Blockchain,
	publicState, privateState *state.Updater,
	header *types.BlockHeader,
	tx *privacy.PrivateTransaction,
	miningBeneficiary common.Address,
	tracer privacy.Tracer,
	blockHashes privacy.BlockHashFunc,
	privacyGroupID []byte,
) privacy.Result {
	nonce, err := privateState.Nonce(tx.Sender)
	if err != nil || nonce != tx.Nonce {
		return privacy.InvalidResult(privacy.ReasonIncorrectNonce)
	}

	intrinsic := p.calculator.TransactionIntrinsicGasCost(tx.Payload, tx.IsContractCreation())
	if intrinsic == gas.Max || uint64(intrinsic) > tx.GasLimit {
		return privacy.InvalidResult(privacy.ReasonIntrinsicGasExceedsLimit)
	}

	balance := new(big.Int)
	if account, err := privateState.Account(tx.Sender); err != nil {
		return privacy.InvalidResult(privacy.ReasonInsufficientBalance)
	} else if account != nil {
		balance.Set(account.Balance)
	}
	if tx.Value.Sign() > 0 && balance.Cmp(tx.Value) < 0 {
		return privacy.InvalidResult(privacy.ReasonInsufficientBalance)
	}

	if err := privateState.SetNonce(tx.Sender, nonce+1); err != nil {
		return privacy.Result{Status: privacy.StatusFailed}
	}
	if tx.Value.Sign() > 0 && tx.To != nil {
		if err := privateState.SetBalance(tx.Sender, new(big.Int).Sub(balance, tx.Value)); err != nil {
			return privacy.Result{Status: privacy.StatusFailed}
		}
		recipient := new(big.Int)
		if account, err := privateState.Account(*tx.To); err != nil {
			return privacy.Result{Status: privacy.StatusFailed}
		} else if account != nil {
			recipient.Set(account.Balance)
		}
		if err := privateState.SetBalance(*tx.To, recipient.Add(recipient, tx.Value)); err != nil {
			return privacy.Result{Status: privacy.StatusFailed}
		}
	}

	tracer.TraceOperation(privacy.OperationTrace{
		Opcode:       "STOP",
		Depth:        0,
		GasRemaining: gas.Of(tx.GasLimit) - intrinsic,
		GasCost:      intrinsic,
	})

	return privacy.Result{
		Status:  privacy.StatusSuccessful,
		GasUsed: uint64(intrinsic),
	}
}
