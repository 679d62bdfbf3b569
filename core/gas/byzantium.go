package gas

import "github.com/holiman/uint256"

// Cost constants shared by the fork calculators. Values are the canonical
// mainnet schedule; forks that reprice an operation carry their own constant.
const (
	txBaseCost           = Gas(21_000)
	txCreateCost         = Gas(32_000)
	txDataZeroCost       = Gas(4)
	txDataNonZeroCost    = Gas(68)
	codeDepositByteCost  = Gas(200)
	idBaseCost           = Gas(15)
	idWordCost           = Gas(3)
	ecrecCost            = Gas(3_000)
	sha256BaseCost       = Gas(60)
	sha256WordCost       = Gas(12)
	ripemd160BaseCost    = Gas(600)
	ripemd160WordCost    = Gas(120)
	zeroTierCost         = Gas(0)
	veryLowTierCost      = Gas(3)
	lowTierCost          = Gas(5)
	baseTierCost         = Gas(2)
	midTierCost          = Gas(8)
	highTierCost         = Gas(10)
	callBaseCost         = Gas(700)
	callValueCost        = Gas(9_000)
	newAccountCost       = Gas(25_000)
	callStipend          = Gas(2_300)
	createBaseCost       = Gas(32_000)
	copyWordCost         = Gas(3)
	memoryWordCost       = Gas(3)
	expBaseCost          = Gas(10)
	expByteCost          = Gas(50)
	sha3BaseCost         = Gas(30)
	sha3WordCost         = Gas(6)
	logBaseCost          = Gas(375)
	logTopicCost         = Gas(375)
	logDataByteCost      = Gas(8)
	balanceCost          = Gas(400)
	blockHashCost        = Gas(20)
	extCodeSizeCost      = Gas(700)
	extCodeHashCost      = Gas(400)
	extCodeCopyBaseCost  = Gas(700)
	jumpDestCost         = Gas(1)
	sloadCost            = Gas(200)
	selfDestructCost     = Gas(5_000)
	selfDestructRefund   = Gas(24_000)
	sstoreSetCost        = Gas(20_000)
	sstoreResetCost      = Gas(5_000)
	sstoreClearRefund    = Gas(15_000)
)

// byzantiumCalculator implements the pre-net-metering cost schedule: SSTORE is
// priced from the current and new value alone, ignoring the pre-transaction
// original.
type byzantiumCalculator struct{}

func (c *byzantiumCalculator) TransactionIntrinsicGasCost(payload []byte, isContractCreation bool) Gas {
	cost := txBaseCost
	for _, b := range payload {
		if b == 0 {
			cost = cost.Add(txDataZeroCost)
		} else {
			cost = cost.Add(txDataNonZeroCost)
		}
	}
	if isContractCreation {
		cost = cost.Add(txCreateCost)
	}
	return cost
}

func (c *byzantiumCalculator) CodeDepositGasCost(codeSize int) Gas {
	return codeDepositByteCost.Mul(Gas(codeSize))
}

func (c *byzantiumCalculator) IDPrecompiledContractGasCost(input []byte) Gas {
	return idWordCost.Mul(wordsFor(uint64(len(input)))).Add(idBaseCost)
}

func (c *byzantiumCalculator) ECRECPrecompiledContractGasCost() Gas {
	return ecrecCost
}

func (c *byzantiumCalculator) SHA256PrecompiledContractGasCost(input []byte) Gas {
	return sha256WordCost.Mul(wordsFor(uint64(len(input)))).Add(sha256BaseCost)
}

func (c *byzantiumCalculator) RIPEMD160PrecompiledContractGasCost(input []byte) Gas {
	return ripemd160WordCost.Mul(wordsFor(uint64(len(input)))).Add(ripemd160BaseCost)
}

func (c *byzantiumCalculator) ZeroTierGasCost() Gas    { return zeroTierCost }
func (c *byzantiumCalculator) VeryLowTierGasCost() Gas { return veryLowTierCost }
func (c *byzantiumCalculator) LowTierGasCost() Gas     { return lowTierCost }
func (c *byzantiumCalculator) BaseTierGasCost() Gas    { return baseTierCost }
func (c *byzantiumCalculator) MidTierGasCost() Gas     { return midTierCost }
func (c *byzantiumCalculator) HighTierGasCost() Gas    { return highTierCost }

func (c *byzantiumCalculator) CallOperationGasCost(frame Frame, inputOffset, inputLength, outputOffset, outputLength uint64, transferValue *uint256.Int, recipientExists bool) Gas {
	inputMemory := c.MemoryExpansionGasCost(frame, inputOffset, inputLength)
	outputMemory := c.MemoryExpansionGasCost(frame, outputOffset, outputLength)
	memory := inputMemory
	if outputMemory > memory {
		memory = outputMemory
	}
	cost := callBaseCost.Add(memory)
	if transferValue != nil && !transferValue.IsZero() {
		cost = cost.Add(callValueCost)
	}
	if !recipientExists {
		cost = cost.Add(newAccountCost)
	}
	return cost
}

func (c *byzantiumCalculator) GasAvailableForChildCall(frame Frame, requested Gas, transfersValue bool) Gas {
	available := retainedFraction(frame.RemainingGas())
	forwarded := requested
	if available < forwarded {
		forwarded = available
	}
	if transfersValue {
		// The stipend guarantees the callee can at least log or return.
		forwarded = forwarded.Add(callStipend)
	}
	return forwarded
}

func (c *byzantiumCalculator) CreateOperationGasCost(frame Frame) Gas {
	return createBaseCost
}

func (c *byzantiumCalculator) Create2OperationGasCost(frame Frame, initCodeOffset, initCodeLength uint64) Gas {
	memory := c.MemoryExpansionGasCost(frame, initCodeOffset, initCodeLength)
	hashing := sha3WordCost.Mul(wordsFor(initCodeLength))
	return createBaseCost.Add(hashing).Add(memory)
}

func (c *byzantiumCalculator) GasAvailableForChildCreate(available Gas) Gas {
	return retainedFraction(available)
}

func (c *byzantiumCalculator) DataCopyOperationGasCost(frame Frame, offset, length uint64) Gas {
	copyCost := copyWordCost.Mul(wordsFor(length)).Add(veryLowTierCost)
	return copyCost.Add(c.MemoryExpansionGasCost(frame, offset, length))
}

func (c *byzantiumCalculator) MemoryExpansionGasCost(frame Frame, offset, length uint64) Gas {
	// A zero-length access never expands memory regardless of offset.
	if length == 0 {
		return 0
	}
	required := wordsForRange(offset, length)
	current := Gas(frame.MemoryWordCount())
	if required <= current {
		return 0
	}
	requiredCost := memoryCost(required)
	currentCost := memoryCost(current)
	if requiredCost == Max {
		return Max
	}
	return requiredCost - currentCost
}

func (c *byzantiumCalculator) BalanceOperationGasCost() Gas   { return balanceCost }
func (c *byzantiumCalculator) BlockHashOperationGasCost() Gas { return blockHashCost }

func (c *byzantiumCalculator) ExpOperationGasCost(exponentBytes int) Gas {
	return expByteCost.Mul(Gas(exponentBytes)).Add(expBaseCost)
}

func (c *byzantiumCalculator) ExtCodeCopyOperationGasCost(frame Frame, offset, length uint64) Gas {
	copyCost := copyWordCost.Mul(wordsFor(length)).Add(extCodeCopyBaseCost)
	return copyCost.Add(c.MemoryExpansionGasCost(frame, offset, length))
}

func (c *byzantiumCalculator) ExtCodeHashOperationGasCost() Gas { return extCodeHashCost }
func (c *byzantiumCalculator) ExtCodeSizeOperationGasCost() Gas { return extCodeSizeCost }
func (c *byzantiumCalculator) JumpDestOperationGasCost() Gas    { return jumpDestCost }

func (c *byzantiumCalculator) LogOperationGasCost(frame Frame, dataOffset, dataLength uint64, numTopics int) Gas {
	cost := logBaseCost.
		Add(logTopicCost.Mul(Gas(numTopics))).
		Add(logDataByteCost.Mul(Gas(dataLength)))
	return cost.Add(c.MemoryExpansionGasCost(frame, dataOffset, dataLength))
}

func (c *byzantiumCalculator) MLoadOperationGasCost(frame Frame, offset uint64) Gas {
	return veryLowTierCost.Add(c.MemoryExpansionGasCost(frame, offset, 32))
}

func (c *byzantiumCalculator) MStoreOperationGasCost(frame Frame, offset uint64) Gas {
	return veryLowTierCost.Add(c.MemoryExpansionGasCost(frame, offset, 32))
}

func (c *byzantiumCalculator) MStore8OperationGasCost(frame Frame, offset uint64) Gas {
	return veryLowTierCost.Add(c.MemoryExpansionGasCost(frame, offset, 1))
}

func (c *byzantiumCalculator) SelfDestructOperationGasCost(beneficiaryExists bool, inheritance *uint256.Int) Gas {
	if !beneficiaryExists && inheritance != nil && !inheritance.IsZero() {
		return selfDestructCost.Add(newAccountCost)
	}
	return selfDestructCost
}

func (c *byzantiumCalculator) Sha3OperationGasCost(frame Frame, offset, length uint64) Gas {
	hashing := sha3WordCost.Mul(wordsFor(length)).Add(sha3BaseCost)
	return hashing.Add(c.MemoryExpansionGasCost(frame, offset, length))
}

func (c *byzantiumCalculator) SloadOperationGasCost() Gas { return sloadCost }

// CalculateStorageCost implements the classic two-value rule: setting a zero
// slot to non-zero pays the full set cost, everything else pays the reset
// cost. The original value is never consulted.
func (c *byzantiumCalculator) CalculateStorageCost(original OriginalValue, current, newValue *uint256.Int) Gas {
	if !newValue.IsZero() && current.IsZero() {
		return sstoreSetCost
	}
	return sstoreResetCost
}

func (c *byzantiumCalculator) CalculateStorageRefund(original OriginalValue, current, newValue *uint256.Int) int64 {
	if newValue.IsZero() && !current.IsZero() {
		return int64(sstoreClearRefund)
	}
	return 0
}

func (c *byzantiumCalculator) SelfDestructRefundAmount() Gas { return selfDestructRefund }

// retainedFraction caps the gas handed to a child frame, keeping 1/64th for
// the caller's own continued execution.
func retainedFraction(remaining Gas) Gas {
	return remaining - remaining/64
}

// memoryCost prices an absolute memory size of words: linear plus a quadratic
// term. Computing from absolute word counts keeps expansion idempotent.
func memoryCost(words Gas) Gas {
	square := words.Mul(words)
	if square == Max {
		return Max
	}
	return memoryWordCost.Mul(words).Add(square / 512)
}
