package protocol

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"veilchain/core/gas"
	"veilchain/core/privacy"
	"veilchain/core/state"
	"veilchain/core/types"
	"veilchain/storage"
)

func transferFixture(t *testing.T) (*state.Updater, common.Address) {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(db.Close)

	manager, err := state.NewManager(db, common.Hash{})
	require.NoError(t, err)
	sender := types.NewAccount()
	sender.Nonce = 3
	sender.Balance = big.NewInt(100_000)
	addr := common.HexToAddress("0xaa")
	manager.SetAccount(addr, sender)
	root, err := manager.Commit(0)
	require.NoError(t, err)

	ws, ok := state.NewArchive(db).StateAt(root)
	require.True(t, ok)
	return ws.Updater(), addr
}

func execute(view *state.Updater, tx *privacy.PrivateTransaction) privacy.Result {
	processor := NewTransferProcessor(gas.ForFork(gas.Byzantium))
	header := &types.BlockHeader{Height: 1, GasLimit: 8_000_000}
	return processor.Execute(nil, nil, view, header, tx,
		common.Address{}, privacy.NewDebugTracer(privacy.FullTraceOptions), nil, []byte("g"))
}

func TestTransferProcessorMovesValue(t *testing.T) {
	view, sender := transferFixture(t)
	to := common.HexToAddress("0xbb")

	result := execute(view, &privacy.PrivateTransaction{
		Sender:   sender,
		Nonce:    3,
		GasLimit: 50_000,
		GasPrice: new(big.Int),
		To:       &to,
		Value:    big.NewInt(40_000),
	})
	require.Equal(t, privacy.StatusSuccessful, result.Status)
	require.Equal(t, uint64(21_000), result.GasUsed)

	nonce, err := view.Nonce(sender)
	require.NoError(t, err)
	require.Equal(t, uint64(4), nonce)

	senderAccount, err := view.Account(sender)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(60_000), senderAccount.Balance)
	recipient, err := view.Account(to)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(40_000), recipient.Balance)
}

func TestTransferProcessorChargesPayloadBytes(t *testing.T) {
	view, sender := transferFixture(t)
	to := common.HexToAddress("0xbb")

	result := execute(view, &privacy.PrivateTransaction{
		Sender:   sender,
		Nonce:    3,
		GasLimit: 50_000,
		To:       &to,
		Value:    new(big.Int),
		Payload:  []byte{0x00, 0x01, 0x02},
	})
	require.Equal(t, privacy.StatusSuccessful, result.Status)
	require.Equal(t, uint64(21_000+4+68+68), result.GasUsed)
}

func TestTransferProcessorRejections(t *testing.T) {
	to := common.HexToAddress("0xbb")

	t.Run("wrong nonce", func(t *testing.T) {
		view, sender := transferFixture(t)
		result := execute(view, &privacy.PrivateTransaction{
			Sender: sender, Nonce: 9, GasLimit: 50_000, To: &to, Value: new(big.Int),
		})
		require.Equal(t, privacy.StatusInvalid, result.Status)
		require.Equal(t, privacy.ReasonIncorrectNonce, result.ValidationReason)
		require.Equal(t, uint64(0), result.GasUsed)
	})

	t.Run("gas limit below intrinsic", func(t *testing.T) {
		view, sender := transferFixture(t)
		result := execute(view, &privacy.PrivateTransaction{
			Sender: sender, Nonce: 3, GasLimit: 20_999, To: &to, Value: new(big.Int),
		})
		require.Equal(t, privacy.ReasonIntrinsicGasExceedsLimit, result.ValidationReason)
	})

	t.Run("value exceeds balance", func(t *testing.T) {
		view, sender := transferFixture(t)
		result := execute(view, &privacy.PrivateTransaction{
			Sender: sender, Nonce: 3, GasLimit: 50_000, To: &to, Value: big.NewInt(200_000),
		})
		require.Equal(t, privacy.ReasonInsufficientBalance, result.ValidationReason)

		// A rejected transaction leaves the view untouched.
		nonce, err := view.Nonce(sender)
		require.NoError(t, err)
		require.Equal(t, uint64(3), nonce)
	})
}

func TestTransferProcessorCreationSurcharge(t *testing.T) {
	view, sender := transferFixture(t)

	result := execute(view, &privacy.PrivateTransaction{
		Sender: sender, Nonce: 3, GasLimit: 60_000, Value: new(big.Int),
	})
	require.Equal(t, privacy.StatusSuccessful, result.Status)
	require.Equal(t, uint64(53_000), result.GasUsed)
}
