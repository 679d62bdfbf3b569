package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemDBRoundTrip(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	_, err := db.Get([]byte("missing"))
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	value, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), value)

	ok, err := db.Has([]byte("k"))
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, db.Delete([]byte("k")))
	_, err = db.Get([]byte("k"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemDBCopiesValues(t *testing.T) {
	db := NewMemDB()
	defer db.Close()

	value := []byte{1, 2, 3}
	require.NoError(t, db.Put([]byte("k"), value))
	value[0] = 9

	stored, err := db.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, stored)
}

func TestLevelDBPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db")

	db, err := NewLevelDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Put([]byte("tip"), []byte{0xab}))
	db.Close()

	reopened, err := NewLevelDB(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get([]byte("tip"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xab}, value)

	_, err = reopened.Get([]byte("absent"))
	require.ErrorIs(t, err, ErrNotFound)
}
