// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"context"
	"math/big"
	"strconv"

	"github.com/rs/zerolog"
	"gitlab.com/tokenmesh/tokenmesh/internal/events"
	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// Adapter is a transfer protocol adapter. It owns no persistent token state -
// only its peer table - and holds an immutable reference to its ledger. The
// custody strategy (lock-and-release or burn-and-mint) is selected at
// construction.
type Adapter struct {
	ledger   *ledger.Ledger
	endpoint Endpoint
	store    keyvalue.Beginner
	bus      *events.Bus
	logger   zerolog.Logger
	account  protocol.AccountID
	variant  custodian
}

// NewLockRelease creates a hub adapter. Debits pull tokens from the caller
// into the adapter's custody account through the allowance path; credits
// release from custody.
func NewLockRelease(l *ledger.Ledger, endpoint Endpoint, store keyvalue.Beginner, bus *events.Bus, logger zerolog.Logger, account protocol.AccountID) *Adapter {
	a := newAdapter(l, endpoint, store, bus, logger, account)
	a.variant = &lockRelease{ledger: l, custody: account}
	return a
}

// NewBurnMint creates a spoke adapter. Debits burn from the caller; credits
// mint to the recipient. The adapter's account must hold the Minter role on
// its ledger.
func NewBurnMint(l *ledger.Ledger, endpoint Endpoint, store keyvalue.Beginner, bus *events.Bus, logger zerolog.Logger, account protocol.AccountID) *Adapter {
	a := newAdapter(l, endpoint, store, bus, logger, account)
	a.variant = &burnMint{ledger: l, adapter: account}
	return a
}

func newAdapter(l *ledger.Ledger, endpoint Endpoint, store keyvalue.Beginner, bus *events.Bus, logger zerolog.Logger, account protocol.AccountID) *Adapter {
	a := new(Adapter)
	a.ledger = l
	a.endpoint = endpoint
	a.store = store
	a.bus = bus
	a.logger = logger.With().Str("module", "bridge").Str("ledger", l.Name()).Logger()
	a.account = account
	return a
}

// Token returns the adapter's ledger.
func (a *Adapter) Token() *ledger.Ledger { return a.ledger }

// Account returns the adapter's identity. Remote peers configure this value
// as their trusted peer for this chain.
func (a *Adapter) Account() protocol.AccountID { return a.account }

// ApprovalRequired returns true if the caller must approve the adapter before
// calling Send.
func (a *Adapter) ApprovalRequired() bool { return a.variant.approvalRequired() }

// Mode returns the custody strategy's name.
func (a *Adapter) Mode() string { return a.variant.name() }

func peerKey(chain uint64) string {
	return "peer/" + strconv.FormatUint(chain, 10)
}

// SetPeer configures the trusted remote adapter for a chain. Only the
// ledger's owner may set peers; the peer table is the sole trust anchor for
// inbound messages. Setting the zero value clears the peer.
func (a *Adapter) SetPeer(caller protocol.AccountID, chain uint64, peer [32]byte) error {
	owner, err := a.ledger.Access().Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return errors.Unauthorized.With("only the owner may set peers")
	}

	batch := a.store.Begin(true)
	defer batch.Discard()

	if peer == [32]byte{} {
		err = batch.Delete(peerKey(chain))
	} else {
		err = batch.Put(peerKey(chain), peer[:])
	}
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}
	err = batch.Commit()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	a.logger.Info().Uint64("chain", chain).Hex("peer", peer[:]).Msg("Peer set")
	a.bus.Publish(protocol.PeerSetEvent{Chain: chain, Peer: peer})
	return nil
}

// Peer returns the trusted remote adapter for a chain, or false if none is
// configured.
func (a *Adapter) Peer(chain uint64) ([32]byte, bool, error) {
	batch := a.store.Begin(false)
	defer batch.Discard()

	var peer [32]byte
	b, err := batch.Get(peerKey(chain))
	switch {
	case err == nil:
		copy(peer[:], b)
		return peer, true, nil
	case errors.Is(err, errors.NotFound):
		return peer, false, nil
	default:
		return peer, false, errors.UnknownError.Wrap(err)
	}
}

// Peers returns the full peer table.
func (a *Adapter) Peers() (map[uint64][32]byte, error) {
	batch := a.store.Begin(false)
	defer batch.Discard()

	peers := map[uint64][32]byte{}
	err := batch.ForEach("peer/", func(key string, value []byte) error {
		chain, err := strconv.ParseUint(key[len("peer/"):], 10, 64)
		if err != nil {
			return errors.InternalError.WithFormat("invalid peer key %q: %w", key, err)
		}
		var peer [32]byte
		copy(peer[:], value)
		peers[chain] = peer
		return nil
	})
	return peers, err
}

func (a *Adapter) checkIntent(intent *protocol.TransferIntent) ([]byte, error) {
	if intent.Amount == nil || intent.Amount.Sign() < 0 {
		return nil, errors.BadRequest.With("amount must be non-negative")
	}
	if intent.MinAmount != nil && intent.Amount.Cmp(intent.MinAmount) < 0 {
		return nil, errors.SlippageExceeded.WithFormat("amount %v is less than the minimum %v", intent.Amount, intent.MinAmount)
	}

	_, ok, err := a.Peer(intent.DestinationChain)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.UntrustedPeer.WithFormat("no peer configured for chain %d", intent.DestinationChain)
	}

	payload := &protocol.TransferPayload{Recipient: intent.Recipient, Amount: intent.Amount}
	return payload.Marshal()
}

// Quote returns the endpoint's fee for delivering the transfer.
func (a *Adapter) Quote(ctx context.Context, intent *protocol.TransferIntent) (*big.Int, error) {
	data, err := a.checkIntent(intent)
	if err != nil {
		return nil, err
	}
	return a.endpoint.Quote(ctx, intent.DestinationChain, data)
}

// Send initiates an outbound transfer: validate, debit, hand off to the
// endpoint. Send returns once the endpoint accepts the message; it does not
// wait for the remote credit. Once the debit has executed the transfer cannot
// be cancelled, and a transport failure after the debit leaves the debit
// standing.
func (a *Adapter) Send(ctx context.Context, caller protocol.AccountID, intent *protocol.TransferIntent, fee *big.Int, refundTo protocol.AccountID) (*Receipt, error) {
	data, err := a.checkIntent(intent)
	if err != nil {
		return nil, err
	}

	// Check the fee before debiting so a foreseeable fee failure does not
	// leave the caller debited with nothing sent
	quote, err := a.endpoint.Quote(ctx, intent.DestinationChain, data)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	if fee == nil || fee.Cmp(quote) < 0 {
		return nil, errors.BadRequest.WithFormat("insufficient fee: want %v, got %v", quote, fee)
	}

	err = a.variant.debit(caller, intent.Amount)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}

	receipt, err := a.endpoint.Send(ctx, intent.DestinationChain, data, fee)
	if err != nil {
		a.logger.Error().Err(err).
			Uint64("chain", intent.DestinationChain).
			Stringer("sender", caller).
			Msg("Message hand-off failed after debit; recovery is an administrative action")
		return nil, errors.UnknownError.Wrap(err)
	}

	mSends.WithLabelValues(a.variant.name()).Inc()
	a.bus.Publish(protocol.OutboundTransferEvent{
		MessageID:        receipt.MessageID,
		DestinationChain: intent.DestinationChain,
		Sender:           caller,
		Recipient:        intent.Recipient,
		AmountDebited:    intent.Amount,
		AmountSent:       intent.Amount,
	})
	return receipt, nil
}

// Deliver finalizes an inbound transfer. It is invoked only by the messaging
// endpoint, never directly by end users. The claimed origin must match the
// configured peer for that chain exactly; otherwise the message is rejected
// before any ledger mutation.
func (a *Adapter) Deliver(origin Origin, data []byte) error {
	peer, ok, err := a.Peer(origin.Chain)
	if err != nil {
		return err
	}
	if !ok {
		return errors.UntrustedPeer.WithFormat("no peer configured for chain %d", origin.Chain)
	}
	if peer != origin.Sender {
		return errors.UntrustedPeer.WithFormat("sender %x does not match the peer configured for chain %d", origin.Sender, origin.Chain)
	}

	payload, err := protocol.UnmarshalTransferPayload(data)
	if err != nil {
		return err
	}

	recipient := payload.Recipient
	if recipient.IsZero() {
		// Do not mint to the null address: redirect to the sink so
		// misdirected funds land in a known account instead of becoming
		// unreachable state.
		a.logger.Warn().Uint64("chain", origin.Chain).Msg("Credit addressed to the null address; redirecting to the sink")
		recipient = protocol.SinkAccount
	}

	err = a.variant.credit(recipient, payload.Amount)
	if err != nil {
		if errors.Is(err, errors.InsufficientLockedBalance) {
			// Custody can only be short if conservation was already broken
			// upstream.
			a.logger.Error().Err(err).Uint64("chain", origin.Chain).Msg("CONSISTENCY VIOLATION: custody is short of the amount to release")
		}
		return err
	}

	mDelivers.WithLabelValues(a.variant.name()).Inc()
	a.bus.Publish(protocol.InboundTransferEvent{
		SourceChain: origin.Chain,
		Recipient:   recipient,
		Amount:      payload.Amount,
	})
	return nil
}
