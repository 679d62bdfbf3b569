package gas

import "github.com/holiman/uint256"

// Net-metering SSTORE constants. A slot already written this transaction
// ("dirty") is cheap to write again; the full set/reset cost is only paid the
// first time a clean slot changes.
const (
	sstoreNoopCost       = Gas(200)
	sstoreDirtyCost      = Gas(200)
	sstoreInitCost       = Gas(20_000)
	sstoreCleanResetCost = Gas(5_000)
	sstoreInitRefund     = int64(19_800) // init cost minus the no-op cost
	sstoreCleanRefund    = int64(4_800)  // clean reset cost minus the no-op cost
	sstoreClearRefundNet = int64(15_000)
)

// constantinopleCalculator layers the net-gas storage metering rule over the
// byzantium schedule. Every other cost is inherited unchanged.
type constantinopleCalculator struct {
	byzantiumCalculator
}

// CalculateStorageCost implements the three-value decision table. The original
// value is only consulted once current and new are known to differ, which is
// what keeps the supplier's trie read off the no-op path.
func (c *constantinopleCalculator) CalculateStorageCost(original OriginalValue, current, newValue *uint256.Int) Gas {
	if current.Eq(newValue) {
		return sstoreNoopCost
	}
	originalValue := original()
	if !originalValue.Eq(current) {
		// Slot already dirtied earlier in this transaction.
		return sstoreDirtyCost
	}
	if originalValue.IsZero() {
		return sstoreInitCost
	}
	return sstoreCleanResetCost
}

// CalculateStorageRefund returns the signed refund delta for the write. A
// negative delta reverses a clear refund granted earlier in the transaction
// when the slot is being re-set.
func (c *constantinopleCalculator) CalculateStorageRefund(original OriginalValue, current, newValue *uint256.Int) int64 {
	if current.Eq(newValue) {
		return 0
	}
	originalValue := original()
	if originalValue.Eq(current) {
		// Clean slot: only clearing a non-zero slot earns a refund.
		if !originalValue.IsZero() && newValue.IsZero() {
			return sstoreClearRefundNet
		}
		return 0
	}

	// Dirty slot.
	var refund int64
	if !originalValue.IsZero() {
		if current.IsZero() {
			// The slot was cleared earlier this transaction and is
			// now re-set: take back the clear refund.
			refund -= sstoreClearRefundNet
		}
		if newValue.IsZero() {
			refund += sstoreClearRefundNet
		}
	}
	if originalValue.Eq(newValue) {
		// Restored to its pre-transaction value: the transaction's
		// net effect on this slot approximates a no-op.
		if originalValue.IsZero() {
			refund += sstoreInitRefund
		} else {
			refund += sstoreCleanRefund
		}
	}
	return refund
}
