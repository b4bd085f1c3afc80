// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/tokenmesh/tokenmesh/config"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

func TestStoreLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	c := config.Default()
	c.ChainID = 10
	c.Mode = config.ModeHub
	c.Owner = protocol.AccountIDFromSeed("owner").String()
	require.NoError(t, c.Store(dir))

	got, err := config.Load(dir)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestValidate(t *testing.T) {
	c := config.Default()
	c.Owner = protocol.AccountIDFromSeed("owner").String()
	require.NoError(t, c.Validate())

	c.Mode = "sidecar"
	require.Error(t, c.Validate())

	c = config.Default()
	require.Error(t, c.Validate(), "owner is required")
}
