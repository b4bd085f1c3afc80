// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import "math/big"

// Audit events published by the ledger and the adapter. Cross-chain issuance
// events carry the caller so reconciliation can distinguish cross-chain from
// local issuance.

// TransferEvent records a peer-to-peer transfer.
type TransferEvent struct {
	From   AccountID
	To     AccountID
	Amount *big.Int
}

func (TransferEvent) EventType() string { return "transfer" }

// ApprovalEvent records an allowance change.
type ApprovalEvent struct {
	Owner   AccountID
	Spender AccountID
	Amount  *big.Int
}

func (ApprovalEvent) EventType() string { return "approval" }

// MintEvent records a local mint.
type MintEvent struct {
	Caller AccountID
	To     AccountID
	Amount *big.Int
}

func (MintEvent) EventType() string { return "mint" }

// BurnEvent records a local burn.
type BurnEvent struct {
	Caller AccountID
	From   AccountID
	Amount *big.Int
}

func (BurnEvent) EventType() string { return "burn" }

// CrosschainMintEvent records a mint performed as a cross-chain credit.
type CrosschainMintEvent struct {
	Caller AccountID
	To     AccountID
	Amount *big.Int
}

func (CrosschainMintEvent) EventType() string { return "crosschainMint" }

// CrosschainBurnEvent records a burn performed as a cross-chain debit.
type CrosschainBurnEvent struct {
	Caller AccountID
	From   AccountID
	Amount *big.Int
}

func (CrosschainBurnEvent) EventType() string { return "crosschainBurn" }

// FrozenEvent records a freeze or unfreeze.
type FrozenEvent struct {
	Caller  AccountID
	Account AccountID
	Frozen  bool
}

func (FrozenEvent) EventType() string { return "frozen" }

// PausedEvent records a pause state change.
type PausedEvent struct {
	Caller AccountID
	Paused bool
}

func (PausedEvent) EventType() string { return "paused" }

// RoleEvent records a role grant or revocation.
type RoleEvent struct {
	Caller  AccountID
	Account AccountID
	Role    Role
	Granted bool
}

func (RoleEvent) EventType() string { return "role" }

// PeerSetEvent records a peer table change.
type PeerSetEvent struct {
	Chain uint64
	Peer  [32]byte
}

func (PeerSetEvent) EventType() string { return "peerSet" }

// OutboundTransferEvent records a completed debit and message hand-off.
// AmountDebited and AmountSent are equal; there is no fee-on-transfer model.
type OutboundTransferEvent struct {
	MessageID        [32]byte
	DestinationChain uint64
	Sender           AccountID
	Recipient        AccountID
	AmountDebited    *big.Int
	AmountSent       *big.Int
}

func (OutboundTransferEvent) EventType() string { return "outboundTransfer" }

// InboundTransferEvent records a completed credit.
type InboundTransferEvent struct {
	SourceChain uint64
	Recipient   AccountID
	Amount      *big.Int
}

func (InboundTransferEvent) EventType() string { return "inboundTransfer" }
