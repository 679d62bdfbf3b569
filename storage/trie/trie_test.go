package trie

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"veilchain/storage"
)

func TestTrieCommitFlushPersistsData(t *testing.T) {
	dir := t.TempDir()

	db1, err := storage.NewLevelDB(dir)
	require.NoError(t, err)

	tr, err := NewTrie(db1, common.Hash{})
	require.NoError(t, err)

	key := crypto.Keccak256Hash([]byte("key"))
	value := []byte("value")

	require.NoError(t, tr.Update(key.Bytes(), value))
	root, err := tr.Commit(common.Hash{}, 0)
	require.NoError(t, err)

	db1.Close()

	db2, err := storage.NewLevelDB(dir)
	require.NoError(t, err)
	defer db2.Close()

	restored, err := NewTrie(db2, root)
	require.NoError(t, err)

	got, err := restored.Get(key.Bytes())
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestTrieCopyIsolatesWrites(t *testing.T) {
	db := storage.NewMemDB()
	defer db.Close()

	tr, err := NewTrie(db, common.Hash{})
	require.NoError(t, err)

	key := crypto.Keccak256Hash([]byte("slot"))
	require.NoError(t, tr.Update(key.Bytes(), []byte("one")))

	clone := tr.Copy()
	require.NoError(t, clone.Update(key.Bytes(), []byte("two")))

	got, err := tr.Get(key.Bytes())
	require.NoError(t, err)
	require.Equal(t, []byte("one"), got)
	require.NotEqual(t, tr.Hash(), clone.Hash())
}

func TestTrieResetDiscardsPending(t *testing.T) {
	db := storage.NewMemDB()
	defer db.Close()

	tr, err := NewTrie(db, common.Hash{})
	require.NoError(t, err)
	empty := tr.Hash()

	key := crypto.Keccak256Hash([]byte("slot"))
	require.NoError(t, tr.Update(key.Bytes(), []byte("pending")))
	require.NotEqual(t, empty, tr.Hash())

	require.NoError(t, tr.Reset(empty))
	require.Equal(t, empty, tr.Hash())
}
