package privacy

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"veilchain/storage"
)

func TestLedgerRoundTrip(t *testing.T) {
	db := storage.NewMemDB()
	defer db.Close()
	ledger := NewLedger(db)

	groupID := []byte("ledger-group")
	_, ok := ledger.LatestRoot(groupID)
	require.False(t, ok)

	first := common.HexToHash("0x01")
	require.NoError(t, ledger.Record(groupID, first))
	root, ok := ledger.LatestRoot(groupID)
	require.True(t, ok)
	require.Equal(t, first, root)

	// A later record supersedes the first.
	second := common.HexToHash("0x02")
	require.NoError(t, ledger.Record(groupID, second))
	root, ok = ledger.LatestRoot(groupID)
	require.True(t, ok)
	require.Equal(t, second, root)
}

func TestLedgerKeysAreGroupScoped(t *testing.T) {
	db := storage.NewMemDB()
	defer db.Close()
	ledger := NewLedger(db)

	require.NoError(t, ledger.Record([]byte("group-a"), common.HexToHash("0xaa")))
	require.NoError(t, ledger.Record([]byte("group-b"), common.HexToHash("0xbb")))

	rootA, ok := ledger.LatestRoot([]byte("group-a"))
	require.True(t, ok)
	rootB, ok := ledger.LatestRoot([]byte("group-b"))
	require.True(t, ok)
	require.NotEqual(t, rootA, rootB)
}
