// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"context"
	"math/big"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

// Loopback is an in-process messaging endpoint that connects adapters
// directly. It authenticates origin by construction: the sender identity it
// reports for a message is the attached source adapter's account.
type Loopback struct {
	mu       sync.Mutex
	logger   zerolog.Logger
	fee      *big.Int
	adapters map[uint64]*Adapter
}

func NewLoopback(fee *big.Int, logger zerolog.Logger) *Loopback {
	n := new(Loopback)
	n.logger = logger.With().Str("module", "loopback").Logger()
	n.fee = fee
	n.adapters = map[uint64]*Adapter{}
	return n
}

// Attach registers the adapter serving a chain.
func (n *Loopback) Attach(chain uint64, a *Adapter) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adapters[chain] = a
}

// Endpoint returns the endpoint for the adapter serving the given chain.
func (n *Loopback) Endpoint(chain uint64) Endpoint {
	return &loopbackEndpoint{n: n, chain: chain}
}

type loopbackEndpoint struct {
	n     *Loopback
	chain uint64
}

var _ Endpoint = (*loopbackEndpoint)(nil)

func (e *loopbackEndpoint) Quote(_ context.Context, _ uint64, _ []byte) (*big.Int, error) {
	return new(big.Int).Set(e.n.fee), nil
}

// Send delivers the payload to the destination adapter synchronously. A
// delivery failure is logged, not returned: the protocol is fire-and-forget
// from the sender's perspective and the origin-side debit stands.
func (e *loopbackEndpoint) Send(_ context.Context, destinationChain uint64, payload []byte, fee *big.Int) (*Receipt, error) {
	if fee == nil || fee.Cmp(e.n.fee) < 0 {
		return nil, errors.BadRequest.WithFormat("insufficient fee: want %v, got %v", e.n.fee, fee)
	}

	e.n.mu.Lock()
	src := e.n.adapters[e.chain]
	dst := e.n.adapters[destinationChain]
	e.n.mu.Unlock()

	if src == nil {
		return nil, errors.InternalError.WithFormat("no adapter attached for chain %d", e.chain)
	}
	if dst == nil {
		return nil, errors.NotFound.WithFormat("no endpoint for chain %d", destinationChain)
	}

	var id [32]byte
	u := uuid.New()
	copy(id[:16], u[:])

	err := dst.Deliver(Origin{Chain: e.chain, Sender: src.Account()}, payload)
	if err != nil {
		e.n.logger.Warn().Err(err).
			Uint64("from", e.chain).
			Uint64("to", destinationChain).
			Msg("Delivery failed; origin-side debit stands")
	}

	return &Receipt{MessageID: id, Fee: fee}, nil
}
