package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "veil-local", cfg.NetworkName)
	require.Equal(t, "./veil-data", cfg.DataDir)
	require.Equal(t, filepath.Join("./veil-data", "private"), cfg.PrivateDataDir)
	require.Equal(t, uint64(0), cfg.Forks.ConstantinopleBlock)

	// The default file is written so the next load reads it back.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestLoadForkSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
DataDir = "/var/lib/veilchain"
NetworkName = "veil-test"

[Forks]
ConstantinopleBlock = 4230000
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "veil-test", cfg.NetworkName)
	require.Equal(t, uint64(4230000), cfg.Forks.ConstantinopleBlock)
	require.Equal(t, filepath.Join("/var/lib/veilchain", "private"), cfg.PrivateDataDir)
}

func TestLoadRejectsRemovedField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("HomesteadBlock = 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "HomesteadBlock")
}
