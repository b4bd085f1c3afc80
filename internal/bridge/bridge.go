// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package bridge implements the transfer protocol adapter that connects a
// token ledger to a messaging endpoint. An outbound transfer debits the local
// ledger (burn or lock) and hands an encoded payload to the endpoint; an
// inbound message credits the local ledger (mint or release). Debit and
// credit are not atomic across chains: a dropped message leaves origin-side
// funds debited with no destination-side credit, and recovery is an
// operational action, not a protocol guarantee.
package bridge

import (
	"context"
	"math/big"

	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

// Origin identifies the source of an inbound message, as authenticated by the
// messaging endpoint's infrastructure.
type Origin struct {
	Chain  uint64
	Sender [32]byte
}

// Receipt correlates an outbound transfer with the endpoint's delivery
// identifier.
type Receipt struct {
	MessageID [32]byte
	Fee       *big.Int
}

// Endpoint is the messaging collaborator. The adapter trusts it to
// authenticate the origin of inbound messages and to deliver payloads intact;
// delivery, ordering, and retries are its concern. Send does not block on
// remote confirmation.
type Endpoint interface {
	Send(ctx context.Context, destinationChain uint64, payload []byte, fee *big.Int) (*Receipt, error)
	Quote(ctx context.Context, destinationChain uint64, payload []byte) (*big.Int, error)
}

// custodian is the variant-specific custody step of the debit/credit
// protocol. The shared validation - peer check, slippage check, payload
// codec - lives in the adapter and calls into the custodian only for the
// custody-specific state change.
type custodian interface {
	name() string
	approvalRequired() bool
	debit(caller protocol.AccountID, amount *big.Int) error
	credit(recipient protocol.AccountID, amount *big.Int) error
}
