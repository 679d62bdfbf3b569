package privacy

import gethtypes "github.com/ethereum/go-ethereum/core/types"

// Status is the terminal state of one private transaction execution.
type Status int

const (
	// StatusInvalid marks a transaction rejected before execution started.
	StatusInvalid Status = iota
	// StatusFailed marks an execution that reverted or ran out of gas.
	StatusFailed
	// StatusSuccessful marks a completed execution.
	StatusSuccessful
)

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusFailed:
		return "failed"
	case StatusSuccessful:
		return "successful"
	default:
		return "unknown"
	}
}

// ValidationReason explains why a transaction was rejected without executing.
type ValidationReason string

const (
	// ReasonPrivacyGroupDoesNotExist covers both a genuinely unknown group
	// and a group the requester is not a member of. The two cases are
	// deliberately indistinguishable so a response never leaks whether a
	// group exists.
	ReasonPrivacyGroupDoesNotExist ValidationReason = "PRIVACY_GROUP_DOES_NOT_EXIST"
	// ReasonIncorrectNonce marks a transaction whose nonce does not match
	// the sender's account in the group's private state.
	ReasonIncorrectNonce ValidationReason = "INCORRECT_NONCE"
	// ReasonIntrinsicGasExceedsLimit marks a transaction whose gas limit
	// cannot even cover its intrinsic cost.
	ReasonIntrinsicGasExceedsLimit ValidationReason = "INTRINSIC_GAS_EXCEEDS_GAS_LIMIT"
	// ReasonInsufficientBalance marks a transaction whose sender cannot
	// cover the transferred value.
	ReasonInsufficientBalance ValidationReason = "UPFRONT_COST_EXCEEDS_BALANCE"
)

// Result is the outcome of one simulated private transaction.
type Result struct {
	Status           Status
	GasUsed          uint64
	Output           []byte
	Logs             []*gethtypes.Log
	Revert           []byte
	ValidationReason ValidationReason
}

// Successful reports whether the execution completed.
func (r Result) Successful() bool {
	return r.Status == StatusSuccessful
}

// InvalidResult builds the canonical rejected result: zero gas, no output,
// carrying only the reason.
func InvalidResult(reason ValidationReason) Result {
	return Result{Status: StatusInvalid, ValidationReason: reason}
}
