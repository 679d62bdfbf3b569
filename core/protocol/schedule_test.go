package protocol

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"veilchain/config"
	"veilchain/core/gas"
	"veilchain/core/privacy"
	"veilchain/core/state"
	"veilchain/core/types"
)

type stubProcessor struct {
	calculator gas.Calculator
}

func (p *stubProcessor) Execute(
	chain privacy.Blockchain,
	publicState, privateState *state.Updater,
	header *types.BlockHeader,
	tx *privacy.PrivateTransaction,
	beneficiary common.Address,
	tracer privacy.Tracer,
	blockHashes privacy.BlockHashFunc,
	groupID []byte,
) privacy.Result {
	return privacy.Result{Status: privacy.StatusSuccessful}
}

func newStub(calculator gas.Calculator) privacy.Processor {
	return &stubProcessor{calculator: calculator}
}

func zero() *uint256.Int {
	return uint256.NewInt(0)
}

func TestRuleSetSelectionByHeight(t *testing.T) {
	cfg := &config.Config{}
	cfg.Forks.ConstantinopleBlock = 100

	schedule := NewSchedule(cfg, newStub)

	require.Equal(t, "byzantium", schedule.RuleSetAt(0).Name())
	require.Equal(t, "byzantium", schedule.RuleSetAt(99).Name())
	require.Equal(t, "constantinople", schedule.RuleSetAt(100).Name())
	require.Equal(t, "constantinople", schedule.RuleSetAt(1_000_000).Name())
}

func TestRuleSetCarriesForkCalculator(t *testing.T) {
	cfg := &config.Config{}
	cfg.Forks.ConstantinopleBlock = 10

	schedule := NewSchedule(cfg, newStub)

	// The classic rule charges a fresh zero-to-zero write at the reset
	// cost; net metering charges the no-op cost. Telling the two apart
	// pins each height to the right calculator.
	classic := gas.ForFork(gas.Byzantium)
	require.Equal(t, classic.CalculateStorageCost(nil, zero(), zero()),
		schedule.RuleSetAt(9).GasCalculator().CalculateStorageCost(nil, zero(), zero()))
	require.NotEqual(t,
		schedule.RuleSetAt(9).GasCalculator().CalculateStorageCost(nil, zero(), zero()),
		schedule.RuleSetAt(10).GasCalculator().CalculateStorageCost(nil, zero(), zero()))
}

func TestBeneficiaryIsCoinbase(t *testing.T) {
	cfg := &config.Config{}
	schedule := NewSchedule(cfg, newStub)

	header := &types.BlockHeader{Coinbase: common.HexToAddress("0xbe")}
	require.Equal(t, header.Coinbase, schedule.RuleSetAt(0).Beneficiary(header))
}
