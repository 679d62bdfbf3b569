package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config carries the node-level settings together with the fork schedule the
// protocol rule sets are built from.
type Config struct {
	DataDir        string `toml:"DataDir"`
	PrivateDataDir string `toml:"PrivateDataDir"`
	NetworkName    string `toml:"NetworkName"`
	Environment    string `toml:"Environment"`

	Forks ForkConfig `toml:"Forks"`

	// PrivacyGroups lists the groups this node participates in. Production
	// deployments sync these from the enclave; static configuration covers
	// development networks.
	PrivacyGroups []PrivacyGroupConfig `toml:"PrivacyGroups"`
}

// PrivacyGroupConfig declares one privacy group and its members.
type PrivacyGroupConfig struct {
	ID      string   `toml:"ID"`
	Name    string   `toml:"Name"`
	Members []string `toml:"Members"`
}

// ForkConfig names the heights at which protocol milestones activate. The
// base rule set is always live from genesis; each later milestone takes over
// at its configured height.
type ForkConfig struct {
	ConstantinopleBlock uint64 `toml:"ConstantinopleBlock"`
}

// Load loads the configuration from the given path, writing a default file
// when none exists yet.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	for _, undecoded := range meta.Undecoded() {
		if len(undecoded) == 1 && undecoded[0] == "HomesteadBlock" {
			return nil, fmt.Errorf("config file %s uses removed HomesteadBlock field; the base rule set is live from genesis", path)
		}
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./veil-data"
	}
	if strings.TrimSpace(cfg.PrivateDataDir) == "" {
		cfg.PrivateDataDir = filepath.Join(cfg.DataDir, "private")
	}
	if strings.TrimSpace(cfg.NetworkName) == "" {
		cfg.NetworkName = "veil-local"
	}
	if strings.TrimSpace(cfg.Environment) == "" {
		cfg.Environment = "local"
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg)

	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
