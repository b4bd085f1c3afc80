// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package api_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/tokenmesh/tokenmesh/internal/api"
	"gitlab.com/tokenmesh/tokenmesh/internal/bridge"
	"gitlab.com/tokenmesh/tokenmesh/internal/events"
	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue/memory"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

var (
	owner  = protocol.AccountIDFromSeed("owner")
	admin  = protocol.AccountIDFromSeed("admin")
	minter = protocol.AccountIDFromSeed("minter")
	alice  = protocol.AccountIDFromSeed("alice")
)

func setup(t *testing.T) *api.Handler {
	t.Helper()
	nop := zerolog.Nop()
	bus := events.NewBus(nop)
	store := memory.New()

	l := ledger.New("test", store, bus, nop)
	require.NoError(t, l.Initialize(owner))
	require.NoError(t, l.Access().Grant(owner, protocol.RoleAdmin, admin))
	require.NoError(t, l.Access().Grant(admin, protocol.RoleMinter, minter))
	require.NoError(t, l.Mint(minter, alice, big.NewInt(1000)))

	loop := bridge.NewLoopback(big.NewInt(1), nop)
	a := bridge.NewBurnMint(l, loop.Endpoint(1), store, bus, nop, protocol.AccountIDFromSeed("adapter"))
	require.NoError(t, a.SetPeer(owner, 10, protocol.AccountIDFromSeed("remote")))

	return api.NewHandler(l, a, nop)
}

func get(t *testing.T, h *api.Handler, path string, v interface{}) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if v != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
	}
	return rec.Code
}

func TestStatus(t *testing.T) {
	h := setup(t)
	var resp api.StatusResponse
	require.Equal(t, http.StatusOK, get(t, h, "/v1/status", &resp))
	require.Equal(t, "test", resp.Ledger)
	require.Equal(t, "burnMint", resp.Mode)
	require.False(t, resp.Paused)
}

func TestSupply(t *testing.T) {
	h := setup(t)
	var resp api.SupplyResponse
	require.Equal(t, http.StatusOK, get(t, h, "/v1/supply", &resp))
	require.Equal(t, "1000", resp.TotalSupply)
}

func TestAccount(t *testing.T) {
	h := setup(t)
	var resp api.AccountResponse
	require.Equal(t, http.StatusOK, get(t, h, "/v1/account/"+alice.String(), &resp))
	require.Equal(t, "1000", resp.Balance)
	require.False(t, resp.Frozen)

	// Bad hex is a client error
	require.Equal(t, http.StatusBadRequest, get(t, h, "/v1/account/xyz", nil))
}

func TestRoleMembers(t *testing.T) {
	h := setup(t)
	var resp api.RoleMembersResponse
	require.Equal(t, http.StatusOK, get(t, h, "/v1/roles/minter", &resp))
	require.Equal(t, []string{minter.String()}, resp.Members)

	require.Equal(t, http.StatusBadRequest, get(t, h, "/v1/roles/sudo", nil))
}

func TestPeers(t *testing.T) {
	h := setup(t)
	var resp map[string]string
	require.Equal(t, http.StatusOK, get(t, h, "/v1/peers", &resp))
	require.Equal(t, protocol.AccountIDFromSeed("remote").String(), resp["10"])
}
