// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/tokenmesh/tokenmesh/internal/bridge"
	"gitlab.com/tokenmesh/tokenmesh/internal/events"
	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue/memory"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

const (
	hubChain   = 1
	spokeChain = 10
)

var (
	owner  = protocol.AccountIDFromSeed("owner")
	admin  = protocol.AccountIDFromSeed("admin")
	minter = protocol.AccountIDFromSeed("minter")
	alice  = protocol.AccountIDFromSeed("alice")
	bob    = protocol.AccountIDFromSeed("bob")
	carol  = protocol.AccountIDFromSeed("carol")
)

func amt(v int64) *big.Int { return big.NewInt(v) }

type testNet struct {
	hub, spoke               *ledger.Ledger
	hubAdapter, spokeAdapter *bridge.Adapter
}

// setup builds a hub (lock-and-release) and a spoke (burn-and-mint) joined by
// a loopback endpoint, with peers configured in both directions and 1000
// units minted to alice on the hub.
func setup(t *testing.T) *testNet {
	t.Helper()
	nop := zerolog.Nop()
	bus := events.NewBus(nop)
	loop := bridge.NewLoopback(amt(1), nop)

	n := new(testNet)

	hubStore := memory.New()
	n.hub = ledger.New("hub", hubStore, bus, nop)
	require.NoError(t, n.hub.Initialize(owner))
	require.NoError(t, n.hub.Access().Grant(owner, protocol.RoleAdmin, admin))
	require.NoError(t, n.hub.Access().Grant(admin, protocol.RoleMinter, minter))
	n.hubAdapter = bridge.NewLockRelease(n.hub, loop.Endpoint(hubChain), hubStore, bus, nop, protocol.AccountIDFromSeed("hub-adapter"))

	spokeStore := memory.New()
	n.spoke = ledger.New("spoke", spokeStore, bus, nop)
	require.NoError(t, n.spoke.Initialize(owner))
	require.NoError(t, n.spoke.Access().Grant(owner, protocol.RoleAdmin, admin))
	n.spokeAdapter = bridge.NewBurnMint(n.spoke, loop.Endpoint(spokeChain), spokeStore, bus, nop, protocol.AccountIDFromSeed("spoke-adapter"))
	require.NoError(t, n.spoke.Access().Grant(admin, protocol.RoleMinter, n.spokeAdapter.Account()))

	loop.Attach(hubChain, n.hubAdapter)
	loop.Attach(spokeChain, n.spokeAdapter)

	require.NoError(t, n.hubAdapter.SetPeer(owner, spokeChain, n.spokeAdapter.Account()))
	require.NoError(t, n.spokeAdapter.SetPeer(owner, hubChain, n.hubAdapter.Account()))

	require.NoError(t, n.hub.Mint(minter, alice, amt(1000)))
	return n
}

func balance(t *testing.T, l *ledger.Ledger, a protocol.AccountID) int64 {
	t.Helper()
	b, err := l.BalanceOf(a)
	require.NoError(t, err)
	return b.Int64()
}

func supply(t *testing.T, l *ledger.Ledger) int64 {
	t.Helper()
	s, err := l.TotalSupply()
	require.NoError(t, err)
	return s.Int64()
}

// requireConserved asserts the cross-chain conservation invariant for a
// single-spoke topology: the hub's custody balance equals the spoke's supply.
func requireConserved(t *testing.T, n *testNet) {
	t.Helper()
	locked := balance(t, n.hub, n.hubAdapter.Account())
	require.Equal(t, locked, supply(t, n.spoke), "hub custody must equal spoke supply")
}

func intent(amount, min int64, recipient protocol.AccountID, chain uint64) *protocol.TransferIntent {
	return &protocol.TransferIntent{
		DestinationChain: chain,
		Recipient:        recipient,
		Amount:           amt(amount),
		MinAmount:        amt(min),
	}
}

func TestHubToSpoke(t *testing.T) {
	n := setup(t)
	ctx := context.Background()

	require.True(t, n.hubAdapter.ApprovalRequired())
	require.NoError(t, n.hub.Approve(alice, n.hubAdapter.Account(), amt(500)))

	receipt, err := n.hubAdapter.Send(ctx, alice, intent(500, 500, bob, spokeChain), amt(1), alice)
	require.NoError(t, err)
	require.NotZero(t, receipt.MessageID)

	// Hub: 500 locked, supply unchanged
	require.Equal(t, int64(500), balance(t, n.hub, alice))
	require.Equal(t, int64(500), balance(t, n.hub, n.hubAdapter.Account()))
	require.Equal(t, int64(1000), supply(t, n.hub))

	// Spoke: 500 minted to bob
	require.Equal(t, int64(500), balance(t, n.spoke, bob))
	require.Equal(t, int64(500), supply(t, n.spoke))
	requireConserved(t, n)
}

func TestRoundTrip(t *testing.T) {
	n := setup(t)
	ctx := context.Background()

	require.NoError(t, n.hub.Approve(alice, n.hubAdapter.Account(), amt(500)))
	_, err := n.hubAdapter.Send(ctx, alice, intent(500, 0, bob, spokeChain), amt(1), alice)
	require.NoError(t, err)

	// Spokes burn without approval
	require.False(t, n.spokeAdapter.ApprovalRequired())
	_, err = n.spokeAdapter.Send(ctx, bob, intent(200, 0, carol, hubChain), amt(1), bob)
	require.NoError(t, err)

	require.Equal(t, int64(300), balance(t, n.spoke, bob))
	require.Equal(t, int64(300), supply(t, n.spoke))
	require.Equal(t, int64(300), balance(t, n.hub, n.hubAdapter.Account()))
	require.Equal(t, int64(200), balance(t, n.hub, carol))
	require.Equal(t, int64(1000), supply(t, n.hub))
	requireConserved(t, n)
}

func TestSendWithoutPeer(t *testing.T) {
	n := setup(t)

	_, err := n.hubAdapter.Send(context.Background(), alice, intent(10, 0, bob, 99), amt(1), alice)
	require.Equal(t, errors.UntrustedPeer, errors.Code(err))
	require.Equal(t, int64(1000), balance(t, n.hub, alice))
}

func TestSlippage(t *testing.T) {
	n := setup(t)

	_, err := n.hubAdapter.Send(context.Background(), alice, intent(10, 20, bob, spokeChain), amt(1), alice)
	require.Equal(t, errors.SlippageExceeded, errors.Code(err))
	require.Equal(t, int64(1000), balance(t, n.hub, alice))
}

func TestSendWithoutApproval(t *testing.T) {
	n := setup(t)

	_, err := n.hubAdapter.Send(context.Background(), alice, intent(10, 0, bob, spokeChain), amt(1), alice)
	require.Equal(t, errors.InsufficientAllowance, errors.Code(err))
	require.Equal(t, int64(1000), balance(t, n.hub, alice))
}

func TestDeliverFromUnsetChain(t *testing.T) {
	n := setup(t)
	payload := &protocol.TransferPayload{Recipient: bob, Amount: amt(10)}
	data, err := payload.Marshal()
	require.NoError(t, err)

	err = n.spokeAdapter.Deliver(bridge.Origin{Chain: 99, Sender: n.hubAdapter.Account()}, data)
	require.Equal(t, errors.UntrustedPeer, errors.Code(err))
	require.Zero(t, supply(t, n.spoke))
}

func TestDeliverFromWrongSender(t *testing.T) {
	n := setup(t)
	payload := &protocol.TransferPayload{Recipient: bob, Amount: amt(10)}
	data, err := payload.Marshal()
	require.NoError(t, err)

	err = n.spokeAdapter.Deliver(bridge.Origin{Chain: hubChain, Sender: protocol.AccountIDFromSeed("impostor")}, data)
	require.Equal(t, errors.UntrustedPeer, errors.Code(err))
	require.Zero(t, supply(t, n.spoke))
}

func TestNullRecipientRedirectsToSink(t *testing.T) {
	n := setup(t)
	payload := &protocol.TransferPayload{Recipient: protocol.ZeroAccount, Amount: amt(10)}
	data, err := payload.Marshal()
	require.NoError(t, err)

	err = n.spokeAdapter.Deliver(bridge.Origin{Chain: hubChain, Sender: n.hubAdapter.Account()}, data)
	require.NoError(t, err)
	require.Equal(t, int64(10), balance(t, n.spoke, protocol.SinkAccount))
}

func TestInsufficientLockedBalance(t *testing.T) {
	n := setup(t)

	// Custody is empty, so a release must fail as a consistency violation
	payload := &protocol.TransferPayload{Recipient: carol, Amount: amt(10)}
	data, err := payload.Marshal()
	require.NoError(t, err)

	err = n.hubAdapter.Deliver(bridge.Origin{Chain: spokeChain, Sender: n.spokeAdapter.Account()}, data)
	require.Equal(t, errors.InsufficientLockedBalance, errors.Code(err))
	require.Zero(t, balance(t, n.hub, carol))
	require.Equal(t, int64(1000), supply(t, n.hub))
}

func TestQuoteAndFee(t *testing.T) {
	n := setup(t)
	ctx := context.Background()

	fee, err := n.hubAdapter.Quote(ctx, intent(10, 0, bob, spokeChain))
	require.NoError(t, err)
	require.Equal(t, int64(1), fee.Int64())

	// Insufficient fee is rejected before the debit
	require.NoError(t, n.hub.Approve(alice, n.hubAdapter.Account(), amt(10)))
	_, err = n.hubAdapter.Send(ctx, alice, intent(10, 0, bob, spokeChain), amt(0), alice)
	require.Equal(t, errors.BadRequest, errors.Code(err))
	require.Equal(t, int64(1000), balance(t, n.hub, alice))
}

func TestSetPeerIsOwnerOnly(t *testing.T) {
	n := setup(t)

	err := n.hubAdapter.SetPeer(alice, 2, protocol.AccountIDFromSeed("x"))
	require.Equal(t, errors.Unauthorized, errors.Code(err))

	require.NoError(t, n.hubAdapter.SetPeer(owner, 2, protocol.AccountIDFromSeed("x")))
	peers, err := n.hubAdapter.Peers()
	require.NoError(t, err)
	require.Len(t, peers, 2)

	// Clearing the peer makes the chain untrusted again
	require.NoError(t, n.hubAdapter.SetPeer(owner, 2, [32]byte{}))
	_, ok, err := n.hubAdapter.Peer(2)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDebitStandsWhenRemoteCreditFails(t *testing.T) {
	n := setup(t)
	ctx := context.Background()

	// Pause the spoke so the remote credit fails; the protocol is
	// fire-and-forget, so the send succeeds and the hub debit stands.
	require.NoError(t, n.spoke.Access().Grant(admin, protocol.RoleEmergencyAdmin, admin))
	require.NoError(t, n.spoke.SetPaused(admin, true))

	require.NoError(t, n.hub.Approve(alice, n.hubAdapter.Account(), amt(100)))
	_, err := n.hubAdapter.Send(ctx, alice, intent(100, 0, bob, spokeChain), amt(1), alice)
	require.NoError(t, err)

	require.Equal(t, int64(900), balance(t, n.hub, alice))
	require.Equal(t, int64(100), balance(t, n.hub, n.hubAdapter.Account()))
	require.Zero(t, supply(t, n.spoke))
}
