package core

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"veilchain/core/types"
	"veilchain/storage"
)

func TestBlockchainAddAndLookup(t *testing.T) {
	db := storage.NewMemDB()
	defer db.Close()

	chain, err := NewBlockchain(db)
	require.NoError(t, err)
	require.Equal(t, common.Hash{}, chain.Tip())

	genesis := &types.BlockHeader{Height: 0, GasLimit: 8_000_000}
	genesisHash, err := chain.AddHeader(genesis)
	require.NoError(t, err)

	child := &types.BlockHeader{Height: 1, ParentHash: genesisHash, GasLimit: 8_000_000}
	childHash, err := chain.AddHeader(child)
	require.NoError(t, err)
	require.Equal(t, childHash, chain.Tip())

	byHash, ok := chain.HeaderByHash(genesisHash)
	require.True(t, ok)
	require.Equal(t, genesis, byHash)

	byHeight, ok := chain.HeaderByNumber(1)
	require.True(t, ok)
	require.Equal(t, child, byHeight)

	_, ok = chain.HeaderByHash(common.HexToHash("0xdead"))
	require.False(t, ok)
	_, ok = chain.HeaderByNumber(7)
	require.False(t, ok)
}

func TestBlockchainTipSurvivesReopen(t *testing.T) {
	db := storage.NewMemDB()
	defer db.Close()

	chain, err := NewBlockchain(db)
	require.NoError(t, err)
	hash, err := chain.AddHeader(&types.BlockHeader{Height: 0})
	require.NoError(t, err)

	reopened, err := NewBlockchain(db)
	require.NoError(t, err)
	require.Equal(t, hash, reopened.Tip())

	header, ok := reopened.HeaderByHash(hash)
	require.True(t, ok)
	require.Equal(t, uint64(0), header.Height)
}
