package gas

import "github.com/holiman/uint256"

// Frame is the view of the executing message frame the cost rules need. The
// interpreter owns the real frame; the calculator only ever reads from it.
type Frame interface {
	// MemoryWordCount reports the number of 32-byte words currently
	// allocated in the frame's memory.
	MemoryWordCount() uint64
	// RemainingGas reports the gas left in the frame before the current
	// operation is charged.
	RemainingGas() Gas
}

// OriginalValue supplies the value a storage slot held before the enclosing
// transaction began. It is deferred because the net-metering rule only needs
// the original value when current and new differ, and fetching it eagerly
// would cost a trie read on the common no-op path. Implementations must be
// memoized; the calculator may invoke the supplier more than once per
// decision.
type OriginalValue func() *uint256.Int

// MemoizedOriginal wraps a fetch function so the underlying lookup runs at
// most once no matter how often the supplier is consulted.
func MemoizedOriginal(fetch func() *uint256.Int) OriginalValue {
	var cached *uint256.Int
	return func() *uint256.Int {
		if cached == nil {
			cached = fetch()
		}
		return cached
	}
}

// Calculator provides every gas cost lookup and calculation used during block
// processing. Implementations are pure functions of their explicit inputs:
// the same arguments produce the same cost on every node and on every replay.
// One implementation exists per protocol fork; the protocol schedule selects
// the active one by block height.
type Calculator interface {
	// TransactionIntrinsicGasCost returns the gas a transaction consumes
	// before a single opcode runs: a base charge, a per-byte charge over
	// the payload that distinguishes zero from non-zero bytes, and a
	// surcharge when the transaction creates a contract.
	TransactionIntrinsicGasCost(payload []byte, isContractCreation bool) Gas

	// CodeDepositGasCost returns the cost of storing codeSize bytes of
	// contract code after a successful creation.
	CodeDepositGasCost(codeSize int) Gas

	// IDPrecompiledContractGasCost prices the identity precompile over its
	// input.
	IDPrecompiledContractGasCost(input []byte) Gas
	// ECRECPrecompiledContractGasCost prices the signature-recovery
	// precompile.
	ECRECPrecompiledContractGasCost() Gas
	// SHA256PrecompiledContractGasCost prices the SHA-256 precompile over
	// its input.
	SHA256PrecompiledContractGasCost(input []byte) Gas
	// RIPEMD160PrecompiledContractGasCost prices the RIPEMD-160 precompile
	// over its input.
	RIPEMD160PrecompiledContractGasCost(input []byte) Gas

	// Flat cost tiers used by the bulk of arithmetic, stack and control
	// opcodes.
	ZeroTierGasCost() Gas
	VeryLowTierGasCost() Gas
	LowTierGasCost() Gas
	BaseTierGasCost() Gas
	MidTierGasCost() Gas
	HighTierGasCost() Gas

	// CallOperationGasCost composes the base call cost, the value-transfer
	// surcharge, the new-account surcharge when the recipient does not yet
	// exist, and memory expansion for both the input and output regions.
	CallOperationGasCost(frame Frame, inputOffset, inputLength, outputOffset, outputLength uint64, transferValue *uint256.Int, recipientExists bool) Gas

	// GasAvailableForChildCall returns the gas forwarded to a child call:
	// the requested amount capped by the 63/64 retention rule, plus the
	// fixed stipend when value is transferred.
	GasAvailableForChildCall(frame Frame, requested Gas, transfersValue bool) Gas

	// CreateOperationGasCost returns the cost of a CREATE operation.
	CreateOperationGasCost(frame Frame) Gas
	// Create2OperationGasCost returns the cost of a CREATE2 operation,
	// including the per-word hashing charge over the init code that covers
	// the salted address derivation.
	Create2OperationGasCost(frame Frame, initCodeOffset, initCodeLength uint64) Gas
	// GasAvailableForChildCreate applies the 63/64 retention rule to a
	// child creation. No value stipend is added.
	GasAvailableForChildCreate(available Gas) Gas

	// DataCopyOperationGasCost prices copying a variable-length byte range
	// into memory. Shared by CODECOPY, CALLDATACOPY and RETURNDATACOPY.
	DataCopyOperationGasCost(frame Frame, offset, length uint64) Gas

	// MemoryExpansionGasCost returns the cost of growing frame memory to
	// cover the access at offset of the given length. Zero-length accesses
	// never expand memory; repeating an access the memory already covers
	// costs nothing.
	MemoryExpansionGasCost(frame Frame, offset, length uint64) Gas

	BalanceOperationGasCost() Gas
	BlockHashOperationGasCost() Gas
	// ExpOperationGasCost prices EXP over the minimal byte length of the
	// exponent.
	ExpOperationGasCost(exponentBytes int) Gas
	ExtCodeCopyOperationGasCost(frame Frame, offset, length uint64) Gas
	ExtCodeHashOperationGasCost() Gas
	ExtCodeSizeOperationGasCost() Gas
	JumpDestOperationGasCost() Gas
	// LogOperationGasCost prices LOG0..LOG4: base, per-topic and per-byte
	// charges plus memory expansion over the data region.
	LogOperationGasCost(frame Frame, dataOffset, dataLength uint64, numTopics int) Gas
	MLoadOperationGasCost(frame Frame, offset uint64) Gas
	MStoreOperationGasCost(frame Frame, offset uint64) Gas
	MStore8OperationGasCost(frame Frame, offset uint64) Gas
	// SelfDestructOperationGasCost adds the new-account surcharge when the
	// beneficiary does not exist and the inheritance is non-zero.
	SelfDestructOperationGasCost(beneficiaryExists bool, inheritance *uint256.Int) Gas
	Sha3OperationGasCost(frame Frame, offset, length uint64) Gas
	SloadOperationGasCost() Gas

	// CalculateStorageCost prices an SSTORE from the slot's original value
	// (before the transaction), current value (before this write) and the
	// value being written.
	CalculateStorageCost(original OriginalValue, current, newValue *uint256.Int) Gas
	// CalculateStorageRefund returns the signed refund delta for an SSTORE:
	// positive grants a refund, negative reverses one granted earlier in
	// the transaction.
	CalculateStorageRefund(original OriginalValue, current, newValue *uint256.Int) int64

	// SelfDestructRefundAmount is the flat refund for deleting an account.
	// The cap on total refunds is enforced by the transaction processor.
	SelfDestructRefundAmount() Gas
}

// ForFork returns the calculator implementing the named fork's cost rules.
func ForFork(fork Fork) Calculator {
	switch fork {
	case Constantinople:
		return constantinople
	default:
		return byzantium
	}
}

// Fork names a protocol rule-set version with its own cost constants.
type Fork int

const (
	Byzantium Fork = iota
	Constantinople
)

func (f Fork) String() string {
	switch f {
	case Byzantium:
		return "byzantium"
	case Constantinople:
		return "constantinople"
	default:
		return "unknown"
	}
}

var (
	byzantium      Calculator = &byzantiumCalculator{}
	constantinople Calculator = &constantinopleCalculator{}
)
