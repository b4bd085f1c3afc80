// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config defines the node configuration, stored as TOML.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

const FileName = "tokenmesh.toml"

// Mode selects the adapter's custody strategy.
const (
	ModeHub   = "hub"   // lock-and-release
	ModeSpoke = "spoke" // burn-and-mint
)

type Config struct {
	// ChainID is this ledger's endpoint identifier.
	ChainID uint64 `toml:"chain-id" mapstructure:"chain-id"`

	// Mode is "hub" or "spoke".
	Mode string `toml:"mode" mapstructure:"mode"`

	// TokenName names the ledger in logs, metrics, and the query API.
	TokenName string `toml:"token-name" mapstructure:"token-name"`

	// Owner is the hex-encoded owner account. The ledger is initialized with
	// this owner on first run.
	Owner string `toml:"owner" mapstructure:"owner"`

	// AdapterSeed derives the adapter's account identity.
	AdapterSeed string `toml:"adapter-seed" mapstructure:"adapter-seed"`

	// DataDir is the Badger database directory. If empty, state is kept in
	// memory and lost on shutdown.
	DataDir string `toml:"data-dir" mapstructure:"data-dir"`

	// ListenAddress is the address of the query API and metrics server.
	ListenAddress string `toml:"listen-address" mapstructure:"listen-address"`

	LogFormat string `toml:"log-format" mapstructure:"log-format"`
	LogLevel  string `toml:"log-level" mapstructure:"log-level"`
}

// Default returns a spoke configuration with sensible defaults.
func Default() *Config {
	return &Config{
		ChainID:       1,
		Mode:          ModeSpoke,
		TokenName:     "tokenmesh",
		AdapterSeed:   "tokenmesh/adapter",
		ListenAddress: "127.0.0.1:26780",
		LogFormat:     "plain",
		LogLevel:      "info",
	}
}

// Validate checks structural constraints.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeHub, ModeSpoke:
		// Ok
	default:
		return errors.BadRequest.WithFormat("mode must be %q or %q, got %q", ModeHub, ModeSpoke, c.Mode)
	}
	if c.Owner == "" {
		return errors.BadRequest.With("owner is required")
	}
	if c.ListenAddress == "" {
		return errors.BadRequest.With("listen-address is required")
	}
	return nil
}

// Load reads the configuration from dir.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, FileName))
	err := v.ReadInConfig()
	if err != nil {
		return nil, errors.UnknownError.WithFormat("read config: %w", err)
	}

	c := Default()
	err = v.Unmarshal(c)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("unmarshal config: %w", err)
	}
	return c, nil
}

// Store writes the configuration to dir.
func (c *Config) Store(dir string) error {
	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	defer f.Close()

	return errors.UnknownError.Wrap(toml.NewEncoder(f).Encode(c))
}
