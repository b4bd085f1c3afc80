// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gitlab.com/tokenmesh/tokenmesh/config"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

var cmdInit = &cobra.Command{
	Use:   "init",
	Short: "Write a fresh node configuration to the working directory",
	Run:   initNode,
}

var flagInit struct {
	ChainID   uint64
	Mode      string
	TokenName string
	Owner     string
	OwnerSeed string
	Listen    string
	InMemory  bool
}

func init() {
	cmdMain.AddCommand(cmdInit)

	cmdInit.Flags().Uint64Var(&flagInit.ChainID, "chain-id", 1, "Endpoint identifier of this ledger")
	cmdInit.Flags().StringVar(&flagInit.Mode, "mode", config.ModeSpoke, "Adapter mode, \"hub\" or \"spoke\"")
	cmdInit.Flags().StringVar(&flagInit.TokenName, "token-name", "tokenmesh", "Ledger name used in logs and the query API")
	cmdInit.Flags().StringVar(&flagInit.Owner, "owner", "", "Hex-encoded owner account")
	cmdInit.Flags().StringVar(&flagInit.OwnerSeed, "owner-seed", "", "Derive the owner account from a seed string")
	cmdInit.Flags().StringVar(&flagInit.Listen, "listen", "127.0.0.1:26780", "Query API and metrics listen address")
	cmdInit.Flags().BoolVar(&flagInit.InMemory, "in-memory", false, "Keep state in memory instead of on disk")
}

func initNode(*cobra.Command, []string) {
	c := config.Default()
	c.ChainID = flagInit.ChainID
	c.Mode = flagInit.Mode
	c.TokenName = flagInit.TokenName
	c.ListenAddress = flagInit.Listen

	switch {
	case flagInit.Owner != "":
		id, err := protocol.ParseAccountID(flagInit.Owner)
		checkf(err, "--owner")
		c.Owner = id.String()
	case flagInit.OwnerSeed != "":
		c.Owner = protocol.AccountIDFromSeed(flagInit.OwnerSeed).String()
	default:
		fatalf("either --owner or --owner-seed is required")
	}

	if !flagInit.InMemory {
		c.DataDir = filepath.Join(flagMain.WorkDir, "data")
	}

	check(c.Validate())
	check(c.Store(flagMain.WorkDir))

	color.New(color.FgGreen).Printf("Wrote %s\n", filepath.Join(flagMain.WorkDir, config.FileName))
	color.New(color.FgHiBlack).Printf("  chain-id=%d mode=%s owner=%s\n", c.ChainID, c.Mode, c.Owner)
}
